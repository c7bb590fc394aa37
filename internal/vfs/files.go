package vfs

import (
	"context"
	"fmt"
	"strings"

	"libris/internal/domain"
)

const (
	metaDescription = "description"
	metaColor       = "color"
	metaStats       = "stats"
)

var metadataFileNames = []string{metaDescription, metaColor, metaStats}

// tagMetaFile is one of a tag's metadata files. Only description and
// color are writable; stats is computed on read.
type tagMetaFile struct {
	base
	tree    *Tree
	tagPath string
	field   string
}

func (f *tagMetaFile) Kind() Kind { return KindFile }

func (f *tagMetaFile) Writable() bool {
	return f.field == metaDescription || f.field == metaColor
}

func (f *tagMetaFile) Read(ctx context.Context) (string, error) {
	switch f.field {
	case metaDescription:
		tag, err := f.tree.lib.GetTag(ctx, f.tagPath)
		if err != nil {
			return "", err
		}
		return tag.Description, nil
	case metaColor:
		tag, err := f.tree.lib.GetTag(ctx, f.tagPath)
		if err != nil {
			return "", err
		}
		return tag.Color, nil
	case metaStats:
		stats, err := f.tree.lib.TagStats(ctx, f.tagPath)
		if err != nil {
			return "", err
		}
		var b strings.Builder
		fmt.Fprintf(&b, "depth: %d\n", stats.Depth)
		fmt.Fprintf(&b, "books: %d\n", stats.BookCount)
		fmt.Fprintf(&b, "subtags: %d\n", stats.SubtagCount)
		fmt.Fprintf(&b, "description: %s\n", stats.Description)
		fmt.Fprintf(&b, "color: %s\n", stats.Color)
		fmt.Fprintf(&b, "created: %s", stats.CreatedAt.Format("2006-01-02 15:04:05"))
		return b.String(), nil
	default:
		return "", fmt.Errorf("unknown metadata file %q", f.field)
	}
}

func (f *tagMetaFile) Write(ctx context.Context, content string) error {
	switch f.field {
	case metaDescription:
		return f.tree.lib.SetTagDescription(ctx, f.tagPath, strings.TrimRight(content, " \t\r\n"))
	case metaColor:
		color, err := domain.NormalizeColor(content)
		if err != nil {
			return err
		}
		return f.tree.lib.SetTagColor(ctx, f.tagPath, color)
	default:
		return &domain.WriteError{Path: f.path, Reason: "only description and color are writable"}
	}
}
