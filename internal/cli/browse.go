package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/contentstack/pkg/pipeline"
)

// browseCommand creates the browse command, an interactive view of a
// resolved page.
func (c *CLI) browseCommand() *cobra.Command {
	var events string

	cmd := &cobra.Command{
		Use:   "browse [state-file]",
		Short: "Interactively browse a resolved page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(cmd.Context(), args[0], events)
		},
	}

	cmd.Flags().StringVarP(&events, "events", "e", "", "event log to replay before resolving")

	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, path, events string) error {
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	st, err := loadState(ctx, runner, path, events)
	if err != nil {
		return err
	}
	tree, _, err := runner.Resolve(ctx, st, pipeline.Options{})
	if err != nil {
		return err
	}
	if len(tree.Components()) == 0 {
		printInfo("Nothing to show: the layout resolved to an empty page")
		return nil
	}

	_, err = tea.NewProgram(newTreeModel(tree), tea.WithContext(ctx)).Run()
	return err
}
