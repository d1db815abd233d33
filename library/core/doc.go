// Package core contains the lending rules vocabulary: the changes a successful decision produces,
// the rule violations a failed decision reports, and the DecisionResult tying both together.
//
// Nothing in here touches the store. The Decide functions of the command features take a state
// loaded by their handler plus a command and return a DecisionResult, which makes every rule of
// the library testable without a database.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
