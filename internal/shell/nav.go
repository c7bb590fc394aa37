package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"libris/internal/vfs"
)

type lsCommand struct{}

func (lsCommand) Name() string     { return "ls" }
func (lsCommand) Synopsis() string { return "ls [path]  list directory contents" }

func (lsCommand) Execute(ctx context.Context, env *Env, args []string, stdin *string) (*string, error) {
	target := env.Cwd
	if len(args) > 0 {
		node, err := env.Tree.Resolve(ctx, args[0], env.Cwd)
		if err != nil {
			return nil, err
		}
		target = node
	}

	dir, ok := target.(vfs.Dir)
	if !ok {
		// ls on a file or symlink names the entry itself, like ls(1).
		return out(entryName(target)), nil
	}
	children, err := dir.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(children))
	for _, child := range children {
		names = append(names, entryName(child))
	}
	return out(strings.Join(names, "\n")), nil
}

func entryName(node vfs.Node) string {
	switch n := node.(type) {
	case vfs.Symlink:
		return n.Name() + " -> " + n.Target()
	case vfs.Dir:
		return n.Name() + "/"
	default:
		return node.Name()
	}
}

type cdCommand struct{}

func (cdCommand) Name() string     { return "cd" }
func (cdCommand) Synopsis() string { return "cd [path]  change directory" }

func (cdCommand) Execute(ctx context.Context, env *Env, args []string, stdin *string) (*string, error) {
	if len(args) == 0 {
		env.Cwd = env.Tree.Root()
		return nil, nil
	}
	node, err := env.Tree.Resolve(ctx, args[0], env.Cwd)
	if err != nil {
		return nil, err
	}
	if _, ok := node.(vfs.Dir); !ok {
		return nil, fmt.Errorf("%s is not a directory", node.Path())
	}
	env.Cwd = node
	return nil, nil
}

type pwdCommand struct{}

func (pwdCommand) Name() string     { return "pwd" }
func (pwdCommand) Synopsis() string { return "pwd  print the working directory" }

func (pwdCommand) Execute(ctx context.Context, env *Env, args []string, stdin *string) (*string, error) {
	return out(env.Cwd.Path()), nil
}

type catCommand struct{}

func (catCommand) Name() string     { return "cat" }
func (catCommand) Synopsis() string { return "cat <path>...  print file contents" }

func (catCommand) Execute(ctx context.Context, env *Env, args []string, stdin *string) (*string, error) {
	if stdin != nil {
		return stdin, nil
	}
	if len(args) == 0 {
		return nil, errors.New("missing path")
	}
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		content, err := env.Tree.ReadFile(ctx, arg, env.Cwd)
		if err != nil {
			return nil, err
		}
		parts = append(parts, content)
	}
	return out(strings.Join(parts, "\n")), nil
}

type echoCommand struct{}

func (echoCommand) Name() string     { return "echo" }
func (echoCommand) Synopsis() string { return "echo <text>...  print arguments" }

func (echoCommand) Execute(ctx context.Context, env *Env, args []string, stdin *string) (*string, error) {
	return out(strings.Join(args, " ")), nil
}

type treeCommand struct{}

func (treeCommand) Name() string     { return "tree" }
func (treeCommand) Synopsis() string { return "tree [path]  print the subtree" }

func (treeCommand) Execute(ctx context.Context, env *Env, args []string, stdin *string) (*string, error) {
	target := env.Cwd
	if len(args) > 0 {
		node, err := env.Tree.Resolve(ctx, args[0], env.Cwd)
		if err != nil {
			return nil, err
		}
		target = node
	}
	dir, ok := target.(vfs.Dir)
	if !ok {
		return nil, fmt.Errorf("%s is not a directory", target.Path())
	}

	var b strings.Builder
	b.WriteString(target.Path())
	if err := writeTree(ctx, &b, dir, ""); err != nil {
		return nil, err
	}
	return out(b.String()), nil
}

func writeTree(ctx context.Context, b *strings.Builder, dir vfs.Dir, prefix string) error {
	children, err := dir.List(ctx)
	if err != nil {
		return err
	}
	for i, child := range children {
		connector, childPrefix := "├── ", prefix+"│   "
		if i == len(children)-1 {
			connector, childPrefix = "└── ", prefix+"    "
		}
		b.WriteString("\n" + prefix + connector + entryName(child))
		if sub, ok := child.(vfs.Dir); ok {
			if err := writeTree(ctx, b, sub, childPrefix); err != nil {
				return err
			}
		}
	}
	return nil
}
