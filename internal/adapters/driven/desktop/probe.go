package desktop

import (
	"os"

	"github.com/custodia-labs/launchpad/internal/core/ports/driven"
)

// Ensure PathProbe implements the interface.
var _ driven.PathProbe = PathProbe{}

// PathProbe inspects the local filesystem.
type PathProbe struct{}

// IsDir reports whether path exists and is a directory.
func (PathProbe) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
