package shell

import (
	"errors"
	"strings"

	"github.com/google/shlex"
)

// SplitPipeline splits an input line on every '|' that is not inside
// quotes and not escaped with a backslash. The pieces keep their quoting
// intact for per-stage tokenization.
func SplitPipeline(line string) ([]string, error) {
	var (
		stages  []string
		current strings.Builder
		single  bool
		double  bool
		escaped bool
	)
	for _, r := range line {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\' && !single:
			current.WriteRune(r)
			escaped = true
		case r == '\'' && !double:
			current.WriteRune(r)
			single = !single
		case r == '"' && !single:
			current.WriteRune(r)
			double = !double
		case r == '|' && !single && !double:
			stages = append(stages, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	if single || double {
		return nil, errors.New("unclosed quote")
	}
	if escaped {
		return nil, errors.New("trailing backslash")
	}
	return append(stages, current.String()), nil
}

// Tokenize splits one pipeline stage into words with shell-style quoting
func Tokenize(stage string) ([]string, error) {
	return shlex.Split(stage)
}
