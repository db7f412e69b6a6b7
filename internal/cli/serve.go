package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/contentstack/internal/server"
	"github.com/matzehuels/contentstack/pkg/io"
	"github.com/matzehuels/contentstack/pkg/snapshot"
	"github.com/matzehuels/contentstack/pkg/state"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string // listen address
	statePath string // optional initial state
	noCache   bool
	snapshots bool // mount the snapshot routes
}

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: server.DefaultAddr, snapshots: true}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the content engine over HTTP",
		Long: `Serve runs the HTTP API around a single live state store.

Backends are chosen from the environment:
  CONTENTSTACK_REDIS_ADDR  cache resolved trees in Redis instead of ~/.cache
  CONTENTSTACK_MONGO_URI   keep snapshots in MongoDB instead of ~/.config`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.statePath, "state", "", "initial state snapshot")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.snapshots, "snapshots", opts.snapshots, "enable the snapshot routes")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	initial := state.Initial()
	if opts.statePath != "" {
		st, err := io.ImportState(opts.statePath)
		if err != nil {
			return err
		}
		initial = st
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var snaps snapshot.Store
	if opts.snapshots {
		snaps, err = c.newSnapshotStore(ctx)
		if err != nil {
			return err
		}
		defer snaps.Close()
	}

	store := state.NewStore(initial, c.Logger)
	srv := server.New(server.Config{Addr: opts.addr}, runner, store, snaps, c.Logger)
	return srv.ListenAndServe(ctx)
}
