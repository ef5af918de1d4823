// Package domain defines the core entities of the launcher.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SearchResult: One entry of the unified result list
//   - AppInfo: An installed application in the catalog
//   - FileQuery: A disjunctive predicate issued against the file index
//   - Calculation: The outcome of evaluating a compute query
//   - Snapshot: One consolidated, delivered query generation
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
