package tags

import (
	"bytes"
	"testing"
)

func TestSortedByCountThenName(t *testing.T) {
	got := Sorted(map[string]int{"web": 1, "react": 2, "go": 1})
	want := []Count{{"react", 2}, {"go", 1}, {"web", 1}}
	if len(got) != len(want) {
		t.Fatalf("expected %d counts, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestWritePlainTable(t *testing.T) {
	var out bytes.Buffer
	if err := write(&out, []Count{{"react", 2}}, false); err != nil {
		t.Fatalf("write returned error: %v", err)
	}
	if out.String() != "TAG\tCOUNT\nreact\t2\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}
