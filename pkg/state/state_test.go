package state

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNew_CopiesInitial(t *testing.T) {
	initial := map[string]any{
		"username": "ada",
		"groups":   []any{1, 2},
	}
	c := New(initial)
	initial["groups"].([]any)[0] = 99

	got, _ := c.Get("groups")
	if diff := cmp.Diff([]any{1, 2}, got); diff != "" {
		t.Fatalf("seed was not copied (-want +got):\n%s", diff)
	}
}

func TestSetAndSnapshot(t *testing.T) {
	c := New(nil)
	if err := c.Set("email", "a@b.com"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := c.Set(" ", "x"); err == nil {
		t.Fatalf("expected empty key error")
	}

	snap := c.Snapshot()
	snap["email"] = "changed"
	if got, _ := c.Get("email"); got != "a@b.com" {
		t.Fatalf("snapshot aliased container state: %v", got)
	}

	if err := c.Set("email", "b@c.com"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"email": "b@c.com"}, c.Snapshot()); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestSet_KeepsKeyVerbatim(t *testing.T) {
	c := New(nil)
	if err := c.Set("name ", "x"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok := c.Get("name"); ok {
		t.Fatalf("padded key must not alias the trimmed key")
	}
	if diff := cmp.Diff(map[string]any{"name ": "x"}, c.Snapshot()); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestResetAndDelete(t *testing.T) {
	c := New(map[string]any{"a": "1"})
	_ = c.Set("b", "2")
	c.Delete("a")
	if diff := cmp.Diff([]string{"b"}, c.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}

	c.Reset(map[string]any{"a": "1"})
	if diff := cmp.Diff([]string{"a"}, c.Keys()); diff != "" {
		t.Fatalf("keys after reset mismatch (-want +got):\n%s", diff)
	}
}

func TestNilContainer(t *testing.T) {
	var c *Container
	if _, ok := c.Get("x"); ok {
		t.Fatalf("nil container must be empty")
	}
	if err := c.Set("x", 1); err == nil {
		t.Fatalf("expected error on nil container")
	}
	if got := c.Snapshot(); len(got) != 0 {
		t.Fatalf("expected empty snapshot, got %v", got)
	}
}
