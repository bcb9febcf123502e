package state

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	indexsvc "github.com/lazydino/lazyblog/internal/services/index"
)

// SnapshotStatusMsg carries the one-line description of the current content
// snapshot.
type SnapshotStatusMsg struct {
	Line string
}

// SnapshotStatusCmd describes the snapshot held by the index service, stores
// the line in RootStatus and reports it as a SnapshotStatusMsg.
func (s *State) SnapshotStatusCmd() tea.Cmd {
	if s == nil {
		return nil
	}

	return func() tea.Msg {
		var line string
		if s.Index != nil {
			line = describeSnapshot(s.Index.Stats())
		}
		if s.RootStatus != nil {
			s.RootStatus.Set(line)
		}
		return SnapshotStatusMsg{Line: line}
	}
}

// describeSnapshot renders stats as "12 posts · 1 skipped · 2 changed on disk
// · as of 17:42". Zero counts other than posts are left out.
func describeSnapshot(stats indexsvc.Stats) string {
	parts := []string{plural(stats.Posts, "post")}
	if stats.Skipped > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", stats.Skipped))
	}
	if stats.Pending > 0 {
		parts = append(parts, fmt.Sprintf("%d changed on disk", stats.Pending))
	}
	if !stats.LastRebuild.IsZero() {
		parts = append(parts, "as of "+stats.LastRebuild.Local().Format("15:04"))
	}
	return strings.Join(parts, " · ")
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
