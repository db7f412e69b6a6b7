package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/contentstack/pkg/io"
	"github.com/matzehuels/contentstack/pkg/snapshot"
)

// snapshotCommand creates the snapshot management command.
func (c *CLI) snapshotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Save, list and export state snapshots",
	}

	cmd.AddCommand(c.snapshotSaveCommand())
	cmd.AddCommand(c.snapshotListCommand())
	cmd.AddCommand(c.snapshotShowCommand())
	cmd.AddCommand(c.snapshotDeleteCommand())

	return cmd
}

// withSnapshots opens the configured snapshot store for the duration of fn.
func (c *CLI) withSnapshots(ctx context.Context, fn func(snapshot.Store) error) error {
	store, err := c.newSnapshotStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func (c *CLI) snapshotSaveCommand() *cobra.Command {
	var name, events string

	cmd := &cobra.Command{
		Use:   "save [state-file]",
		Short: "Store a state file as a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withSnapshots(ctx, func(store snapshot.Store) error {
				runner, err := c.newRunner(ctx, true)
				if err != nil {
					return err
				}
				st, err := loadState(ctx, runner, args[0], events)
				if err != nil {
					return err
				}
				snap := snapshot.New(name, st)
				if err := store.Save(ctx, snap); err != nil {
					return err
				}
				printSuccess("Saved snapshot %s", StyleHighlight.Render(snap.ID))
				printNextStep("Export it", "contentstack snapshot show "+snap.ID+" -o state.json")
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "snapshot name")
	cmd.Flags().StringVarP(&events, "events", "e", "", "event log to replay before saving")

	return cmd
}

func (c *CLI) snapshotListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withSnapshots(ctx, func(store snapshot.Store) error {
				list, err := store.List(ctx)
				if err != nil {
					return err
				}
				if len(list) == 0 {
					printInfo("No snapshots")
					return nil
				}
				for _, s := range list {
					name := s.Name
					if name == "" {
						name = "(unnamed)"
					}
					printKeyValue(name, s.ID+"  "+StyleDim.Render(formatRelativeTime(s.UpdatedAt)))
				}
				return nil
			})
		},
	}
}

func (c *CLI) snapshotShowCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:               "show [id]",
		Short:             "Print or export a snapshot's state",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeSnapshotIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withSnapshots(ctx, func(store snapshot.Store) error {
				snap, err := store.Get(ctx, args[0])
				if err != nil {
					return err
				}
				if output == "" {
					return io.WriteState(snap.State, stdout)
				}
				if err := io.ExportState(snap.State, output); err != nil {
					return err
				}
				printSuccess("Exported snapshot %s", snap.ID)
				printFile(output)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}

func (c *CLI) snapshotDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "delete [id]",
		Short:             "Delete a snapshot",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeSnapshotIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withSnapshots(ctx, func(store snapshot.Store) error {
				if err := store.Delete(ctx, args[0]); err != nil {
					return err
				}
				printSuccess("Deleted snapshot %s", args[0])
				return nil
			})
		},
	}
}

// completeSnapshotIDs offers stored snapshot ids, described by name.
func (c *CLI) completeSnapshotIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	ctx := cmd.Context()
	var ids []string
	_ = c.withSnapshots(ctx, func(store snapshot.Store) error {
		list, err := store.List(ctx)
		for _, s := range list {
			ids = append(ids, s.ID+"\t"+s.Name)
		}
		return err
	})
	return ids, cobra.ShellCompDirectiveNoFileComp
}

// formatRelativeTime renders t relative to now for listings.
func formatRelativeTime(t time.Time) string {
	diff := time.Since(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
