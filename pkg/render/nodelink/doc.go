// Package nodelink draws render trees as node-link diagrams.
//
// The diagram mirrors the tree top to bottom: the page, its rows, and each
// row's components, optionally with one node per positioned item. It is a
// debugging aid for checking where spocs and placeholders ended up.
//
//	dot := nodelink.ToDOT(tree, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [ToDOT] output is plain Graphviz source and can also be piped into the dot
// command line tool. [RenderSVG] uses [github.com/goccy/go-graphviz] and runs
// in-process.
package nodelink
