package mcp

import (
	"context"
	"testing"

	"libris/internal/adapters/sqlite"
	"libris/internal/shell"
)

func newTestEnv(t *testing.T) *shell.Env {
	t.Helper()
	store, err := sqlite.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	for _, path := range []string{"SF/Classics", "SF/Anthologies", "Work"} {
		if _, err := store.GetOrCreateTag(ctx, path); err != nil {
			t.Fatal(err)
		}
	}
	return shell.NewEnv(store, AutoConfirmer{}, NopPager{}, nil)
}

func TestListTags(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name string
		path string
		want []string
	}{
		{name: "root tags", path: "", want: []string{"SF", "Work"}},
		{name: "children", path: "SF", want: []string{"SF/Anthologies", "SF/Classics"}},
		{name: "leaf", path: "Work", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := listTags(ctx, env, tt.path)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("listTags(%q) = %v, want %v", tt.path, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("listTags(%q)[%d] = %q, want %q", tt.path, i, got[i], tt.want[i])
				}
			}
		})
	}
}
