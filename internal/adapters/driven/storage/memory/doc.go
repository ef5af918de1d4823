// Package memory provides in-process implementations of driven ports.
//
// They back tests and the ephemeral index mode (files.index_path = ":memory:").
// Nothing is persisted.
package memory
