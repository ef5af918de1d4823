package tui

import "errors"

// ErrMissingLauncher is returned when the launcher is not provided.
var ErrMissingLauncher = errors.New("tui: launcher is required")
