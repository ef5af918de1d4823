package fswatch

import "errors"

// ErrRootPath indicates a configured root is missing or not a directory.
var ErrRootPath = errors.New("root path error")
