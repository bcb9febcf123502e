package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lazydino/lazyblog/internal/content"
	"github.com/lazydino/lazyblog/internal/state"
)

// ColorEnabled reports whether w is an interactive terminal.
func ColorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the width of w, or fallback when w is not a terminal.
func TerminalWidth(w io.Writer, fallback int) int {
	f, ok := w.(*os.File)
	if !ok {
		return fallback
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}

// Snapshot acquires the current content snapshot for a command.
func Snapshot(cmd *cobra.Command, s *state.State) (*content.Snapshot, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}
	return snap, nil
}
