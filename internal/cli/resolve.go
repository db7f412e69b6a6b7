package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/contentstack/pkg/io"
	"github.com/matzehuels/contentstack/pkg/pipeline"
	"github.com/matzehuels/contentstack/pkg/state"
)

// formatTable prints the tree as a terminal table. It is CLI-only and never
// cached.
const formatTable = "table"

// resolveOpts holds the command-line flags for the resolve command.
type resolveOpts struct {
	events   string // event log replayed onto the state before resolving
	format   string // json, dot, svg or table
	output   string // output file; stdout when empty
	detailed bool   // draw individual items in dot/svg output
	refresh  bool   // bypass cached trees and artifacts
	noCache  bool   // disable caching entirely
}

// resolveCommand creates the resolve command.
func (c *CLI) resolveCommand() *cobra.Command {
	opts := resolveOpts{format: formatTable}

	cmd := &cobra.Command{
		Use:   "resolve [state-file]",
		Short: "Resolve a state snapshot into a render tree",
		Long: `Resolve reads a state snapshot (JSON, TOML or YAML), optionally replays an
event log onto it, and prints the resolved page.

Formats:
  table  a summary table of rows and components (default)
  json   the render tree
  dot    a Graphviz description of the tree
  svg    the dot output rendered to SVG`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != formatTable {
				if err := pipeline.ValidateFormat(opts.format); err != nil {
					return err
				}
			}
			return c.runResolve(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.events, "events", "e", "", "event log to replay before resolving")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: table (default), json, dot, svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "draw individual items (dot, svg)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runResolve(ctx context.Context, path string, opts resolveOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	st, err := loadState(ctx, runner, path, opts.events)
	if err != nil {
		return err
	}

	if opts.format == formatTable {
		tree, hit, err := runner.Resolve(ctx, st, pipeline.Options{Refresh: opts.refresh})
		if err != nil {
			return err
		}
		stats, err := tree.Stats()
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, renderTable(tree))
		printStats(stats, hit)
		return nil
	}

	var result *pipeline.Result
	err = withSpinner(ctx, "Resolving...", func() error {
		var err error
		result, err = runner.Execute(ctx, st, pipeline.Options{
			Format:   opts.format,
			Detailed: opts.detailed,
			Refresh:  opts.refresh,
		})
		return err
	})
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err := stdout.Write(result.Artifact)
		return err
	}
	if err := os.WriteFile(opts.output, result.Artifact, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	prog.done("Resolved "+path, "rows", result.Stats.Tree.Rows, "format", opts.format)
	printSuccess("Wrote %s", opts.format)
	printFile(opts.output)
	printStats(result.Stats.Tree, result.CacheInfo.ResolveHit)
	return nil
}

// loadState imports the state at path and replays the event log, if any.
func loadState(ctx context.Context, runner *pipeline.Runner, path, eventsPath string) (state.State, error) {
	st, err := io.ImportState(path)
	if err != nil {
		return state.State{}, err
	}
	if eventsPath == "" {
		return st, nil
	}
	events, err := io.ImportEvents(eventsPath)
	if err != nil {
		return state.State{}, err
	}
	st, applied := runner.Apply(ctx, st, events)
	if dropped := len(events) - applied; dropped > 0 {
		printWarning("%d of %d events dropped (state not ready or unknown)", dropped, len(events))
	}
	return st, nil
}
