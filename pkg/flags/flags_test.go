package flags

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestHandleSort(t *testing.T) {
	cmd := &cobra.Command{Use: "list"}
	AddSort(cmd)

	got, err := HandleSort(cmd)
	if err != nil || got != "path" {
		t.Fatalf("expected default path sort, got %q (%v)", got, err)
	}

	if err := cmd.Flags().Set("sort", "Created"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, err := HandleSort(cmd); err != nil || got != "created" {
		t.Fatalf("expected created, got %q (%v)", got, err)
	}

	if err := cmd.Flags().Set("sort", "size"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := HandleSort(cmd); err == nil {
		t.Fatalf("expected error for unknown sort")
	}
}

func TestHandleTagStripsHash(t *testing.T) {
	cmd := &cobra.Command{Use: "list"}
	AddTag(cmd)
	if err := cmd.Flags().Set("tag", " #react "); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := HandleTag(cmd)
	if err != nil || got != "react" {
		t.Fatalf("expected react, got %q (%v)", got, err)
	}
}
