package logger

import (
	"bytes"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// capture redirects output to a buffer for the duration of the test.
func capture(t *testing.T, verboseOn bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verboseOn)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestTaggedLines(t *testing.T) {
	tests := []struct {
		name string
		log  func()
		want string
	}{
		{"debug", func() { Debug("generation %d", 3) }, "[DEBUG] generation 3\n"},
		{"info", func() { Info("catalog: %d entries", 42) }, "[INFO] catalog: 42 entries\n"},
		{"warn", func() { Warn("source missed cap") }, "[WARN] source missed cap\n"},
		{"section", func() { Section("Dispatch") }, "\n=== Dispatch ===\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t, true)
			tt.log()
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestSilentWhenNotVerbose(t *testing.T) {
	buf := capture(t, false)

	Debug("hidden")
	Info("hidden")
	Warn("hidden")
	Section("hidden")
	Timed("hidden")()

	assert.Zero(t, buf.Len())
}

func TestElapsed(t *testing.T) {
	d := Elapsed(time.Now().Add(-1500 * time.Microsecond))
	assert.GreaterOrEqual(t, d, time.Millisecond)
	assert.Zero(t, d%time.Millisecond)
}

func TestTimed(t *testing.T) {
	buf := capture(t, true)

	done := Timed("catalog load")
	done()

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "[DEBUG] catalog load took "), out)
}

func TestConcurrentAccess(t *testing.T) {
	capture(t, false)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			SetVerbose(true)
			Debug("concurrent %d", i)
			IsVerbose()
			SetVerbose(false)
		}()
	}
	wg.Wait()
}
