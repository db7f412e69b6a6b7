// Package layout resolves a declarative page layout into a render tree.
//
// A [Config] is an ordered list of rows, each holding components that either
// reference a feed, a spoc placement, or nothing at all. [Resolve] combines
// the layout with the current feeds, spocs and preferences:
//
//	tree, err := layout.Resolve(layout.Input{
//		Layout: cfg,
//		Feeds:  st.Feeds,
//		Spocs:  st.Spocs,
//		Prefs:  layout.DefaultPreferences(),
//	})
//
// Resolution is a pure function of its input. Positions ("pos") are numbered
// per component type across the whole page, spoc pools are consumed through
// per-placement cursors so no sponsored item repeats, and blocked URLs never
// appear in the output. Components whose data is still loading come back as
// placeholders so the page can render its final shape immediately.
package layout
