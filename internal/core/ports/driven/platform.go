package driven

import "context"

// CommandRunner invokes subprocesses.
type CommandRunner interface {
	// CombinedOutput runs name with args and returns stdout and stderr combined.
	CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error)

	// Start spawns name with args and returns without waiting for it.
	Start(ctx context.Context, name string, args ...string) error
}

// Opener opens paths with the platform default handler.
type Opener interface {
	// Open launches the application or opens the file or folder at path.
	Open(ctx context.Context, path string) error
}

// Clipboard writes to the system clipboard.
type Clipboard interface {
	// Copy replaces the clipboard content with text.
	Copy(ctx context.Context, text string) error
}
