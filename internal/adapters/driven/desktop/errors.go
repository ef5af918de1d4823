package desktop

import "errors"

var (
	// ErrNoClipboard indicates no clipboard utility is installed.
	ErrNoClipboard = errors.New("no clipboard utility found")

	// ErrNoOpener indicates no command can open paths on this platform.
	ErrNoOpener = errors.New("no opener found")
)
