// Package shell implements the interactive command pipeline over the VFS:
// a registry of dual-mode commands, a tokenizer, a sequential pipeline
// executor, and the read-eval loop itself.
package shell

import (
	"context"
	"fmt"
	"sort"

	"libris/internal/ports"
	"libris/internal/vfs"
)

// Env is the shared state of one shell session. Cwd is mutated by cd;
// everything else is fixed at startup.
type Env struct {
	Lib     ports.Library
	Tree    *vfs.Tree
	Cwd     vfs.Node
	Confirm ports.Confirmer
	Pager   ports.Pager
	Clip    func(content string) error
}

// NewEnv builds a session rooted at the top of the tree
func NewEnv(lib ports.Library, confirm ports.Confirmer, pager ports.Pager, clip func(string) error) *Env {
	tree := vfs.New(lib)
	return &Env{
		Lib:     lib,
		Tree:    tree,
		Cwd:     tree.Root(),
		Confirm: confirm,
		Pager:   pager,
		Clip:    clip,
	}
}

// Command is the dual-mode contract every built-in implements. With
// stdin present a text command operates on the piped text and ignores
// VFS path arguments; with stdin absent it resolves paths through the
// tree. A nil output means the command is a sink for its stage.
type Command interface {
	Name() string
	Synopsis() string
	Execute(ctx context.Context, env *Env, args []string, stdin *string) (*string, error)
}

// Registry maps command names to implementations
type Registry struct {
	cmds map[string]Command
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]Command)}
}

// Register adds a command, replacing any previous one with the same name
func (r *Registry) Register(cmd Command) {
	r.cmds[cmd.Name()] = cmd
}

// Get looks up a command by name
func (r *Registry) Get(name string) (Command, bool) {
	cmd, ok := r.cmds[name]
	return cmd, ok
}

// Names returns the registered command names in alphabetical order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.cmds))
	for name := range r.cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute runs a single named command outside a pipeline
func (r *Registry) Execute(ctx context.Context, env *Env, name string, args []string, stdin *string) (*string, error) {
	cmd, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown command %q", name)
	}
	return cmd.Execute(ctx, env, args, stdin)
}

// DefaultRegistry registers every built-in command
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, cmd := range []Command{
		lsCommand{},
		cdCommand{},
		pwdCommand{},
		treeCommand{},
		catCommand{},
		echoCommand{},
		mkdirCommand{},
		lnCommand{},
		mvCommand{},
		rmCommand{},
		writeCommand{},
		grepCommand{},
		headCommand{},
		tailCommand{},
		wcCommand{},
		sortCommand{},
		uniqCommand{},
		moreCommand{},
		clipCommand{},
	} {
		r.Register(cmd)
	}
	r.Register(helpCommand{registry: r})
	return r
}

func out(s string) *string {
	return &s
}
