// Package config loads the lending configuration from the environment and opens the database
// connections the sqlengine store is built on.
package config
