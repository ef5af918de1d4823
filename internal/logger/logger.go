// Package logger provides verbose logging for launchpad.
// When verbose mode is enabled via the --verbose flag, messages from the
// sources and the orchestrator are printed to stderr so a user can follow
// each query through debounce, fan-out and merge.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// write prints one tagged line when verbose mode is enabled.
func write(tag, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if !verbose {
		return
	}
	fmt.Fprintf(output, "["+tag+"] "+format+"\n", args...)
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	write("DEBUG", format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	write("INFO", format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
// Source failures are reported here rather than returned to the user.
func Warn(format string, args ...any) {
	write("WARN", format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Elapsed returns the time since start rounded to milliseconds.
func Elapsed(start time.Time) time.Duration {
	return time.Since(start).Round(time.Millisecond)
}

// Timed logs how long an operation took when the returned func is called.
//
//	defer logger.Timed("catalog load")()
func Timed(name string) func() {
	start := time.Now()
	return func() {
		Debug("%s took %s", name, Elapsed(start))
	}
}
