package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Stage is one parsed segment of a pipeline
type Stage struct {
	Name string
	Args []string
}

// Parse splits a line into pipeline stages and tokenizes each one
func Parse(line string) ([]Stage, error) {
	pieces, err := SplitPipeline(line)
	if err != nil {
		return nil, err
	}
	stages := make([]Stage, 0, len(pieces))
	for _, piece := range pieces {
		tokens, err := Tokenize(piece)
		if err != nil {
			return nil, err
		}
		if len(tokens) == 0 {
			if len(pieces) == 1 {
				return nil, nil
			}
			return nil, errors.New("empty pipeline stage")
		}
		stages = append(stages, Stage{Name: tokens[0], Args: tokens[1:]})
	}
	return stages, nil
}

// Run executes a full input line as a pipeline. Stages run strictly in
// order: the first with nil stdin, each later one with the previous
// stage's output. A failing stage aborts the pipeline immediately; later
// stages never run and the triggering error is returned. The final
// stage's output is the pipeline's output.
func (r *Registry) Run(ctx context.Context, env *Env, line string) (*string, error) {
	stages, err := Parse(strings.TrimSpace(line))
	if err != nil {
		return nil, err
	}
	if len(stages) == 0 {
		return nil, nil
	}

	var stdin *string
	for _, stage := range stages {
		cmd, ok := r.Get(stage.Name)
		if !ok {
			return nil, fmt.Errorf("unknown command %q", stage.Name)
		}
		output, err := cmd.Execute(ctx, env, stage.Args, stdin)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", stage.Name, err)
		}
		stdin = output
	}
	return stdin, nil
}
