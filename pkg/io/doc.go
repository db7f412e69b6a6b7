// Package io reads and writes state snapshots, event logs and render trees.
//
// # Formats
//
// Snapshots and event logs are accepted as JSON, TOML or YAML; the format is
// picked from the file extension (see [DetectFormat]). All three decode into
// the same JSON-tagged types, so a snapshot written in one format reads back
// identically from any other.
//
// A snapshot is a serialized [state.State]:
//
//	{
//	  "layout": [{"width": 12, "components": [{"type": "CardGrid", ...}]}],
//	  "feeds":  {"loaded": true, "data": {"https://...": {...}}},
//	  "spocs":  {"loaded": true, "data": {"newtab_spocs": {"items": [...]}}},
//	  "prefs":  {"showSponsored": true}
//	}
//
// Missing preference keys keep their default values. Layouts are validated
// with [layout.Validate] on import.
//
// An event log is either a JSON array of envelopes or, in any format, a
// document with an "events" list:
//
//	events:
//	  - type: FEEDS_UPDATE
//	  - type: LINK_BLOCKED
//	    data: {url: "https://example.com/a"}
//
// # Export
//
// Snapshots and render trees are always written as indented JSON so they can
// be re-imported with [ImportState] or consumed by other tools.
package io
