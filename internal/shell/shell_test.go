package shell

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"libris/internal/domain"
)

func runShell(t *testing.T, env *Env, input string) string {
	t.Helper()
	var buf bytes.Buffer
	sh := New(env, DefaultRegistry(), strings.NewReader(input), &buf)
	if err := sh.Run(context.Background()); err != nil {
		t.Fatalf("shell run: %v", err)
	}
	return buf.String()
}

func TestShellExits(t *testing.T) {
	env, _, _ := newTestEnv(t)

	for _, input := range []string{"exit\n", "quit\n", ""} {
		runShell(t, env, input)
	}
}

func TestShellKeepsRunningAfterErrors(t *testing.T) {
	env, _, _ := newTestEnv(t)

	output := runShell(t, env, "frobnicate\npwd\nexit\n")
	if !strings.Contains(output, "Error:") {
		t.Errorf("output missing error line:\n%s", output)
	}
	// The line after the failure still ran.
	if !strings.Contains(output, "/") {
		t.Errorf("pwd after an error produced nothing:\n%s", output)
	}
}

func TestShellPromptTracksCwd(t *testing.T) {
	env, _, _ := newTestEnv(t)

	output := runShell(t, env, "cd /tags/SF\nexit\n")
	if !strings.Contains(output, "/tags/SF > ") {
		t.Errorf("prompt should show the new cwd:\n%s", output)
	}
}

func TestHint(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "tag has children", err: domain.ErrTagHasChildren, want: "rm -r"},
		{name: "not writable", err: &domain.WriteError{Path: "/books/1", Reason: "read-only"}, want: "description and color"},
		{name: "invalid destination", err: domain.ErrInvalidDestination, want: "/tags"},
		{name: "wrapped", err: errors.Join(errors.New("rm"), domain.ErrTagHasChildren), want: "rm -r"},
		{name: "no hint", err: errors.New("plain"), want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Hint(tt.err)
			if tt.want == "" {
				if got != "" {
					t.Errorf("Hint = %q, want empty", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("Hint = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}
