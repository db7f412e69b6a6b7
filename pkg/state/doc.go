// Package state holds the content state and the transitions that change it.
//
// [State] bundles layout, feeds, spocs and preferences. Changes arrive as
// [Event] values and are applied by the pure [Reduce] function; [Store] wraps
// Reduce with a mutex so events from any goroutine are applied one at a time.
//
// Transitions that touch feeds and spocs together (link blocked, bookmark and
// pocket decorations) are gated: until both feeds and spocs have loaded they
// are dropped without changing anything. [IsReady] is the single definition
// of that gate.
//
// Events travel as JSON envelopes:
//
//	{"type": "LINK_BLOCKED", "data": {"url": "https://example.com/a"}}
//
// [DecodeEvent] turns an envelope into a typed event.
package state
