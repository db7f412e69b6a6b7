// Package pkg provides the libraries behind contentstack, a content-assembly
// engine for a news-style new tab page.
//
// # Overview
//
// A declarative layout, organic feeds and sponsored stories ("spocs") go in;
// a render tree with every component's data resolved comes out. The pkg
// directory is organized in layers:
//
//  1. [content] - Shared data model (items, feeds, sections, spocs)
//  2. [dedupe], [spocs], [sections] - Leaf algorithms
//  3. [layout] - Render tree resolution
//  4. [state] - Content state, events and the readiness gate
//  5. [pipeline] - Orchestration (resolve → render, with caching)
//  6. [cache], [snapshot], [io] - Storage and serialization
//
// # Data Flow
//
//	events (JSON/TOML/YAML)
//	         ↓
//	    [state] Store (Reduce, readiness gate)
//	         ↓
//	    [layout] Resolve (placeholders, spoc fill, sections, pos)
//	         ↓
//	    [pipeline] Runner (cache) → JSON / DOT / SVG
//
// # Quick Start
//
//	st, _ := io.ImportState("snapshot.yaml")
//	tree, _ := layout.Resolve(st.Input())
//	stats, _ := tree.Stats()
//	fmt.Println(stats)
//
// [content]: github.com/matzehuels/contentstack/pkg/content
// [dedupe]: github.com/matzehuels/contentstack/pkg/dedupe
// [spocs]: github.com/matzehuels/contentstack/pkg/spocs
// [sections]: github.com/matzehuels/contentstack/pkg/sections
// [layout]: github.com/matzehuels/contentstack/pkg/layout
// [state]: github.com/matzehuels/contentstack/pkg/state
// [pipeline]: github.com/matzehuels/contentstack/pkg/pipeline
// [cache]: github.com/matzehuels/contentstack/pkg/cache
// [snapshot]: github.com/matzehuels/contentstack/pkg/snapshot
// [io]: github.com/matzehuels/contentstack/pkg/io
package pkg
