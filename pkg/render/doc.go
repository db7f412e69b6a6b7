// Package render turns resolved render trees into visual outputs.
//
// The [nodelink] subpackage draws a render tree as a Graphviz diagram:
//
//	dot := nodelink.ToDOT(tree, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [nodelink]: github.com/matzehuels/contentstack/pkg/render/nodelink
package render
