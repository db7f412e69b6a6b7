package pipeline

import (
	"bytes"
	"context"

	pkgio "github.com/matzehuels/contentstack/pkg/io"
	"github.com/matzehuels/contentstack/pkg/layout"
	"github.com/matzehuels/contentstack/pkg/render/nodelink"
)

// RenderTree encodes tree in format without caching.
func RenderTree(ctx context.Context, tree layout.RenderTree, format string, detailed bool) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	switch format {
	case FormatDOT:
		return []byte(nodelink.ToDOT(tree, nodelink.Options{Detailed: detailed})), nil
	case FormatSVG:
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(tree, nodelink.Options{Detailed: detailed}))
	default:
		var buf bytes.Buffer
		if err := pkgio.WriteTree(tree, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
}
