// Package cli implements the lendingctl command tree.
//
//	lendingctl schema                 create the tables of the configured store
//	lendingctl run [--init] <script>  run a lending script, "-" reads it from stdin
//	lendingctl import <books.csv>     acquire the books of a "title,author" CSV file
//	lendingctl shell                  enter script lines interactively
//
// Connection settings come from the LENDING_* environment variables (see library/shell/config)
// and can be overridden by the persistent flags.
package cli
