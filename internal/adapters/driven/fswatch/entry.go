package fswatch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/launchpad/internal/core/domain"
)

// Content types written to the index besides domain.ContentTypeApplication.
const (
	ContentTypeFolder = "folder"
	ContentTypeFile   = "file"
)

// LocalPath converts a root given as a file:// URI or with a leading ~ to a
// clean local path. Bare paths pass through cleaned.
func LocalPath(root string) string {
	root = strings.TrimPrefix(root, "file://")
	if root == "~" || strings.HasPrefix(root, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			root = filepath.Join(home, strings.TrimPrefix(root, "~"))
		}
	}
	return filepath.Clean(root)
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}

// isBundle reports whether a directory is an application bundle that is
// indexed as one entry.
func isBundle(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".app")
}

func contentType(path string, isDir bool) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".app", ".desktop":
		return domain.ContentTypeApplication
	}
	if isDir {
		return ContentTypeFolder
	}
	return ContentTypeFile
}

// entryFor describes path as an index entry. LastUsed is the modification time.
func entryFor(path string, info fs.FileInfo) domain.FileEntry {
	fileName := filepath.Base(path)
	modified := info.ModTime()
	return domain.FileEntry{
		Path:        path,
		Name:        strings.TrimSuffix(fileName, filepath.Ext(fileName)),
		FileName:    fileName,
		ContentType: contentType(path, info.IsDir()),
		LastUsed:    &modified,
	}
}

func checkRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRootPath, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrRootPath, root)
	}
	return nil
}
