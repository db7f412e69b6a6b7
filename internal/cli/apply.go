package cli

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/contentstack/pkg/io"
	"github.com/matzehuels/contentstack/pkg/pipeline"
	"github.com/matzehuels/contentstack/pkg/state"
)

// applyCommand creates the apply command, which replays an event log onto a
// state snapshot and writes the result.
func (c *CLI) applyCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "apply [state-file] [events-file]",
		Short: "Replay an event log onto a state snapshot",
		Long: `Apply dispatches every event of the log, in order, onto the snapshot and
writes the resulting state as JSON.

Events that touch feeds and sponsored content together (LINK_BLOCKED, bookmark
and pocket events) are dropped until both have loaded, exactly as in a live
store.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runApply(cmd.Context(), args[0], args[1], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}

func (c *CLI) runApply(ctx context.Context, statePath, eventsPath, output string) error {
	st, err := io.ImportState(statePath)
	if err != nil {
		return err
	}
	events, err := io.ImportEvents(eventsPath)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(nil, nil, loggerFromContext(ctx))
	next, applied := runner.Apply(ctx, st, events)

	if output == "" {
		return io.WriteState(next, stdout)
	}
	if err := io.ExportState(next, output); err != nil {
		return err
	}
	printSuccess("Applied %d of %d events", applied, len(events))
	printKeyValue("Ready", strconv.FormatBool(state.IsReady(next)))
	printFile(output)
	printNextStep("Resolve it", "contentstack resolve "+output)
	return nil
}
