package editor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Command returns the editor argv from $EDITOR, then $VISUAL, falling back
// to vi. Values like "code --wait" are split on whitespace.
func Command() []string {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if fields := strings.Fields(os.Getenv(env)); len(fields) > 0 {
			return fields
		}
	}
	return []string{"vi"}
}

// Open edits path in the user's editor attached to the current terminal.
func Open(ctx context.Context, path string) error {
	argv := append(Command(), path)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor %q: %w", argv[0], err)
	}
	return nil
}
