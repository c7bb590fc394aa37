package shell

import (
	"context"
	"strings"
)

type helpCommand struct {
	registry *Registry
}

func (helpCommand) Name() string     { return "help" }
func (helpCommand) Synopsis() string { return "help  list available commands" }

func (h helpCommand) Execute(ctx context.Context, env *Env, args []string, stdin *string) (*string, error) {
	var b strings.Builder
	b.WriteString("commands:")
	for _, name := range h.registry.Names() {
		cmd, _ := h.registry.Get(name)
		b.WriteString("\n  " + cmd.Synopsis())
	}
	b.WriteString("\n  exit  leave the shell")
	return out(b.String()), nil
}
