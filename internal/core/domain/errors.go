package domain

import "errors"

// Domain errors represent launcher failures.
// None of them is fatal to a search; sources degrade to empty or partial results.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrLoadTimeout indicates a catalog build exceeded its deadline.
	// The catalog keeps whatever was gathered before the deadline.
	ErrLoadTimeout = errors.New("catalog load timed out")

	// ErrQueryFailed indicates a live index query errored.
	// The source contributes an empty result set for that round.
	ErrQueryFailed = errors.New("index query failed")

	// ErrSubprocessFailed indicates a shortcut list or run command failed.
	ErrSubprocessFailed = errors.New("subprocess failed")

	// ErrInvalidShortcutToken indicates a result path is not a "run <name>" token.
	ErrInvalidShortcutToken = errors.New("invalid shortcut token")

	// ErrNoExpression indicates no recognizer accepted the input.
	// This is not a failure: the query simply has no calculator result.
	ErrNoExpression = errors.New("no expression recognized")

	// ErrSourceUnavailable indicates a source is disabled or not wired.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrUnsupportedType indicates a result type has no execution path.
	ErrUnsupportedType = errors.New("unsupported type")
)
