package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/contentstack/pkg/content"
	"github.com/matzehuels/contentstack/pkg/layout"
)

// Options configures render tree diagrams.
type Options struct {
	// Detailed adds one node per positioned item below its component.
	// When false, components show item counts only.
	Detailed bool
}

// ToDOT converts a render tree to Graphviz DOT: a page node, one node per
// row and one per component. The result can be rendered with [RenderSVG].
//
// Placeholder components are drawn dashed and grey; sponsored items in
// detailed mode are drawn in gold.
func ToDOT(tree layout.RenderTree, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")
	buf.WriteString("  \"page\" [label=\"page\", shape=folder];\n")

	for r, row := range tree.Rows {
		rowID := fmt.Sprintf("row%d", r)
		fmt.Fprintf(&buf, "  %q [label=%q, shape=box3d];\n", rowID, fmt.Sprintf("row %d\nwidth %d", r, row.Width))
		fmt.Fprintf(&buf, "  \"page\" -> %q;\n", rowID)

		for c, rc := range row.Components {
			compID := fmt.Sprintf("%s_c%d", rowID, c)
			fmt.Fprintf(&buf, "  %q [%s];\n", compID, strings.Join(componentAttrs(rc), ", "))
			fmt.Fprintf(&buf, "  %q -> %q;\n", rowID, compID)
			if opts.Detailed && !rc.Placeholder && rc.Data != nil {
				writeItems(&buf, compID, rc.Data)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func componentAttrs(rc layout.RenderedComponent) []string {
	attrs := []string{fmt.Sprintf("label=%q", componentLabel(rc))}
	if rc.Placeholder {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

func componentLabel(rc layout.RenderedComponent) string {
	parts := []string{rc.Type}
	if rc.Header != nil && rc.Header.Title != "" {
		parts = append(parts, strconv.Quote(rc.Header.Title))
	}
	switch {
	case rc.Placeholder:
		parts = append(parts, "loading")
	case rc.Data != nil:
		if n := len(rc.Data.Recommendations); n > 0 {
			parts = append(parts, fmt.Sprintf("%d recommendations", n))
		}
		if n := len(rc.Data.Sections); n > 0 {
			parts = append(parts, fmt.Sprintf("%d sections", n))
		}
		if n := len(rc.Data.Spocs); n > 0 {
			parts = append(parts, fmt.Sprintf("%d spocs", n))
		}
		for _, b := range rc.Data.Banners {
			parts = append(parts, fmt.Sprintf("%s @ row %d", b.Format, b.Row))
		}
	}
	return strings.Join(parts, "\n")
}

func writeItems(buf *bytes.Buffer, compID string, data *layout.ComponentData) {
	items := append([]content.Item(nil), data.Recommendations...)
	items = append(items, data.Spocs...)
	for _, sec := range data.Sections {
		items = append(items, sec.Data...)
	}
	for i, it := range items {
		pos, ok := it.Position()
		if !ok {
			continue
		}
		id := fmt.Sprintf("%s_i%d", compID, i)
		label := fmt.Sprintf("#%d %s", pos, itemTitle(it))
		attrs := []string{fmt.Sprintf("label=%q", label), "shape=note"}
		if it.IsSponsored() {
			attrs = append(attrs, "fillcolor=gold")
		}
		fmt.Fprintf(buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
		fmt.Fprintf(buf, "  %q -> %q;\n", compID, id)
	}
}

func itemTitle(it content.Item) string {
	if it.Title != "" {
		return it.Title
	}
	return it.URL
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the SVG scales from the
// origin regardless of the offsets Graphviz emits.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
