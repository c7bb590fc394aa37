// Package textutil implements the line-oriented operations behind the
// shell's text commands. Inputs and outputs carry no trailing newline;
// the empty string is zero lines.
package textutil

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// SplitLines splits text into lines. A single trailing newline does not
// produce an extra empty line; empty input has no lines.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// JoinLines is the inverse of SplitLines
func JoinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

// Head returns the first n lines in original order
func Head(text string, n int) string {
	lines := SplitLines(text)
	if n < 0 {
		n = 0
	}
	if n > len(lines) {
		n = len(lines)
	}
	return JoinLines(lines[:n])
}

// Tail returns the last n lines in original order
func Tail(text string, n int) string {
	lines := SplitLines(text)
	if n < 0 {
		n = 0
	}
	if n > len(lines) {
		n = len(lines)
	}
	return JoinLines(lines[len(lines)-n:])
}

// Count returns the line, word, and character counts of text. Words are
// whitespace-separated; characters are counted exactly as received, as
// runes, with no implicit trailing newline.
func Count(text string) (lines, words, chars int) {
	lines = len(SplitLines(text))
	words = len(strings.Fields(text))
	chars = len([]rune(text))
	return lines, words, chars
}

// Sort orders the lines lexicographically; reverse inverts the order.
func Sort(text string, reverse bool) string {
	lines := SplitLines(text)
	sort.Strings(lines)
	if reverse {
		for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
			lines[i], lines[j] = lines[j], lines[i]
		}
	}
	return JoinLines(lines)
}

// Uniq collapses consecutive duplicate lines. With count, each surviving
// line is prefixed with its run length in the classic right-aligned
// format. Non-adjacent duplicates survive unless the input was sorted
// first.
func Uniq(text string, count bool) string {
	lines := SplitLines(text)
	if len(lines) == 0 {
		return ""
	}

	var out []string
	current := lines[0]
	run := 1
	flush := func() {
		if count {
			out = append(out, fmt.Sprintf("%7d %s", run, current))
		} else {
			out = append(out, current)
		}
	}
	for _, line := range lines[1:] {
		if line == current {
			run++
			continue
		}
		flush()
		current = line
		run = 1
	}
	flush()
	return JoinLines(out)
}

// Grep keeps the lines matching pattern, a regular expression.
func Grep(text, pattern string, ignoreCase bool) (string, error) {
	if ignoreCase {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return "", fmt.Errorf("invalid pattern: %w", err)
	}
	var out []string
	for _, line := range SplitLines(text) {
		if re.MatchString(line) {
			out = append(out, line)
		}
	}
	return JoinLines(out), nil
}
