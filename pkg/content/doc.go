// Package content defines the data shared by every stage of the
// content-assembly engine: items, sections, feeds and the sponsored-content
// store.
//
// # Core Types
//
//   - [Item]: an organic recommendation or a sponsored story ("spoc")
//   - [Section]: a topic-grouped subset of recommendations with a tile layout
//   - [Feeds], [Feed]: organic feeds keyed by URL
//   - [Spocs]: sponsored items per placement plus the user's block list
//   - [BlockList]: the set of urls that never reach a render tree
//
// Values of these types are supplied by external fetch collaborators and read
// by the engine. Transformations copy before they modify; nothing in this
// module writes to an Item slice it did not allocate itself.
//
// # Wire Format
//
// The JSON field names follow the payloads produced by the feed and spoc
// services, so fetched documents decode directly:
//
//	{
//	  "data": {
//	    "recommendations": [{"id": "1", "url": "https://example.com/a", "section": "tech"}],
//	    "sections": [{"sectionKey": "tech", "receivedRank": 0, "layout": {...}}]
//	  },
//	  "loaded": true
//	}
//
// The bson tags mirror the JSON names so snapshots persist unchanged.
package content
