package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResultType_IsValid(t *testing.T) {
	tests := []struct {
		rt   ResultType
		want bool
	}{
		{ResultApplication, true},
		{ResultFile, true},
		{ResultFolder, true},
		{ResultDocument, true},
		{ResultShortcut, true},
		{ResultCalculator, true},
		{ResultSystem, true},
		{ResultSuggestion, true},
		{ResultAI, true},
		{ResultType("widget"), false},
		{ResultType(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.rt), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rt.IsValid())
		})
	}
}

func TestResultType_IsOpenable(t *testing.T) {
	assert.True(t, ResultApplication.IsOpenable())
	assert.True(t, ResultFolder.IsOpenable())
	assert.False(t, ResultShortcut.IsOpenable())
	assert.False(t, ResultCalculator.IsOpenable())
	assert.False(t, ResultAI.IsOpenable())
}

func TestSearchResult_Equal(t *testing.T) {
	a := SearchResult{ID: "abc", Name: "Safari"}
	b := SearchResult{ID: "abc", Name: "Safari (renamed)"}
	c := SearchResult{ID: "def", Name: "Safari"}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestDedupeNames(t *testing.T) {
	got := DedupeNames("Terminal", []string{"Terminal", "终端", "", "终端", "Terminal Emulator"})
	assert.Equal(t, []string{"终端", "Terminal Emulator"}, got)

	app := AppInfo{Name: "Terminal", LocalizedNames: got}
	assert.Equal(t, []string{"Terminal", "终端", "Terminal Emulator"}, app.Names())
}

func TestShortcut_Token(t *testing.T) {
	assert.Equal(t, "run Morning Routine", Shortcut{Name: "Morning Routine"}.Token())
}
