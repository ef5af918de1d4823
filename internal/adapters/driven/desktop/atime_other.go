//go:build !linux && !darwin

package desktop

import (
	"io/fs"
	"time"
)

// accessTime is unknown on this platform.
func accessTime(fs.FileInfo) (time.Time, bool) {
	return time.Time{}, false
}
