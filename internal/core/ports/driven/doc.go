// Package driven defines the interfaces that core calls OUT to the platform.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Live Queries
//
// AppCatalogQuery and FileIndex start one-shot live queries. A query returns
// a result channel, closed when the query completes, and an error channel
// that receives at most one error, sent before the result channel is closed.
// Cancelling the context aborts the query; the result channel is still
// closed.
//
// # Required Interfaces
//
//   - AppCatalogQuery: Enumerates installed applications
//   - FileIndex: Filesystem metadata index
//   - CommandRunner: Subprocess invocation
//   - Opener: Opens a path with the platform default handler
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - IconResolver: Without it, shortcut results carry a glyph icon.
//   - Clipboard: Without it, calculator results cannot be copied.
//   - PathProbe: Without it, paths are classified by suffix only.
//   - FileCrawler, FileWatcher: Without them, the file index is not refreshed.
//   - SchedulerStore: Without it, refresh tasks are not persisted.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
