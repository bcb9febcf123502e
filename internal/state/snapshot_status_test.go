package state

import (
	"context"
	"testing"
	"time"

	"github.com/lazydino/lazyblog/internal/content"
	indexsvc "github.com/lazydino/lazyblog/internal/services/index"
)

type stubIndexService struct {
	stats indexsvc.Stats
}

func (s stubIndexService) AcquireSnapshot(context.Context) (*content.Snapshot, error) {
	return nil, nil
}
func (s stubIndexService) MarkStale(string)      {}
func (s stubIndexService) Stats() indexsvc.Stats { return s.stats }
func (s stubIndexService) Close() error          { return nil }

func TestDescribeSnapshot(t *testing.T) {
	loaded := time.Date(2024, time.March, 5, 17, 42, 0, 0, time.Local)
	tests := []struct {
		name  string
		stats indexsvc.Stats
		want  string
	}{
		{name: "empty", stats: indexsvc.Stats{}, want: "0 posts"},
		{name: "single post", stats: indexsvc.Stats{Posts: 1}, want: "1 post"},
		{name: "skipped files", stats: indexsvc.Stats{Posts: 4, Skipped: 1}, want: "4 posts · 1 skipped"},
		{
			name:  "changes and load time",
			stats: indexsvc.Stats{Posts: 12, Pending: 3, LastRebuild: loaded},
			want:  "12 posts · 3 changed on disk · as of 17:42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := describeSnapshot(tt.stats); got != tt.want {
				t.Fatalf("describeSnapshot = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSnapshotStatusClearsWithoutIndex(t *testing.T) {
	st := &State{RootStatus: &RootStatus{}}
	st.RootStatus.Set("stale")

	msg, ok := st.SnapshotStatusCmd()().(SnapshotStatusMsg)
	if !ok {
		t.Fatalf("expected SnapshotStatusMsg")
	}
	if msg.Line != "" || st.RootStatus.Value() != "" {
		t.Fatalf("expected a cleared status, got %q / %q", msg.Line, st.RootStatus.Value())
	}
}

func TestSnapshotStatusUpdatesRootStatus(t *testing.T) {
	st := &State{RootStatus: &RootStatus{}, Index: stubIndexService{stats: indexsvc.Stats{Posts: 7}}}

	msg, ok := st.SnapshotStatusCmd()().(SnapshotStatusMsg)
	if !ok {
		t.Fatalf("expected SnapshotStatusMsg")
	}
	if msg.Line != "7 posts" || st.RootStatus.Value() != "7 posts" {
		t.Fatalf("unexpected status %q / %q", msg.Line, st.RootStatus.Value())
	}
}
