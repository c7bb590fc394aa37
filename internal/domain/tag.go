package domain

import (
	"slices"
	"strings"
	"time"
)

// Tag represents a hierarchical label attached to books. Path is the
// slash-joined chain of ancestor names and is globally unique; Name is
// always its final segment.
type Tag struct {
	ID          int64
	Name        string
	Path        string
	ParentID    *int64
	Description string
	Color       string
	CreatedAt   time.Time
}

// TagStats summarizes a tag for display in its stats file.
type TagStats struct {
	Depth       int
	BookCount   int
	SubtagCount int
	Description string
	Color       string
	CreatedAt   time.Time
}

// SplitTagPath splits a tag path into its segments, dropping empty
// segments produced by leading, trailing, or doubled slashes.
func SplitTagPath(path string) []string {
	parts := strings.Split(path, "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

// JoinTagPath joins segments into a canonical tag path.
func JoinTagPath(segments []string) string {
	return strings.Join(segments, "/")
}

// CleanTagPath normalizes a tag path to its canonical form.
func CleanTagPath(path string) string {
	return JoinTagPath(SplitTagPath(path))
}

// TagLeaf returns the final segment of a tag path.
func TagLeaf(path string) string {
	segments := SplitTagPath(path)
	if len(segments) == 0 {
		return ""
	}
	return segments[len(segments)-1]
}

// ParentTagPath returns the path of the tag's parent, or "" for a
// root-level tag.
func ParentTagPath(path string) string {
	segments := SplitTagPath(path)
	if len(segments) <= 1 {
		return ""
	}
	return JoinTagPath(segments[:len(segments)-1])
}

// TagDepth returns the number of segments in a tag path.
func TagDepth(path string) int {
	return len(SplitTagPath(path))
}

// IsDescendantPath reports whether path lies strictly below ancestor.
func IsDescendantPath(path, ancestor string) bool {
	return strings.HasPrefix(path, ancestor+"/")
}

// SortTags sorts tags alphabetically by name
func SortTags(tags []Tag) {
	slices.SortFunc(tags, func(a, b Tag) int {
		return strings.Compare(a.Name, b.Name)
	})
}
