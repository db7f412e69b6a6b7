// Package pipeline runs the resolve → render pipeline for contentstack.
//
// The CLI and the API server both go through a [Runner] so caching, logging
// and hooks behave the same everywhere.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, st, pipeline.Options{Format: pipeline.FormatSVG})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Artifact)
//
// Run individual stages:
//
//	tree, hit, err := runner.Resolve(ctx, st, opts)
//	svg, hit, err := runner.Render(ctx, tree, opts)
//	next, applied := runner.Apply(ctx, st, events)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/contentstack/pkg/buildinfo"
	"github.com/matzehuels/contentstack/pkg/errors"
	"github.com/matzehuels/contentstack/pkg/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// DefaultFormat is the output format when none is given.
const DefaultFormat = FormatJSON

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Format is the artifact format produced by Render.
	Format string `json:"format,omitempty"`

	// Detailed adds item nodes to DOT and SVG output.
	Detailed bool `json:"detailed,omitempty"`

	// Refresh bypasses cached trees and artifacts.
	Refresh bool `json:"refresh,omitempty"`

	// Version scopes cache entries; defaults to the build version.
	Version string `json:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Tree is the resolved render tree.
	Tree layout.RenderTree

	// StateHash is the content hash of the resolved state.
	StateHash string

	// Artifact is the tree rendered in Options.Format.
	Artifact []byte

	// Stats summarizes the tree and the run.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Tree        layout.Stats
	ResolveTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ResolveHit bool // Whether the tree came from cache
	RenderHit  bool // Whether the artifact came from cache
}

// =============================================================================
// Validation
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: json, dot, svg)", format)
	}
	return nil
}

// ValidateAndSetDefaults applies defaults and checks the options.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetResolveDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormat(o.Format); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	o.validated = true
	return nil
}

// SetResolveDefaults sets default values for resolution.
func (o *Options) SetResolveDefaults() {
	if o.Version == "" {
		o.Version = buildinfo.Version
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}
