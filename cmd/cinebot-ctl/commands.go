package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"cinebot/internal/core/media"
	"cinebot/internal/core/version"
	"cinebot/internal/platform/store/migrate"
	wldomain "cinebot/internal/services/watchlist/domain"
)

func newRootCmd(open opener) *cobra.Command {
	bi := version.Info("cinebot-ctl")
	root := &cobra.Command{
		Use:           "cinebot-ctl",
		Short:         "Operate the cinebot store",
		Long:          "Apply migrations, read usage stats and manage watchlists in the store named by STORE_DSN.",
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", bi.Version, bi.Commit, bi.Date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	root.AddCommand(newMigrateCmd(open), newStatsCmd(open), newWatchlistCmd(open))
	return root
}

// withEnv opens the env for one command run and closes the store afterwards
func withEnv(cmd *cobra.Command, open opener, fn func(ctx context.Context, e *env) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	e, err := open(ctx)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	if e.close != nil {
		defer func() { _ = e.close() }()
	}
	return fn(ctx, e)
}

func newMigrateCmd(open opener) *cobra.Command {
	cmd := &cobra.Command{Use: "migrate", Short: "Manage the sql schema"}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, open, func(ctx context.Context, e *env) error {
				v, err := migrate.Up(ctx, e.Store.DB(), e.Store.Dialect)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "schema at version %d\n", v)
				return nil
			})
		},
	})

	var format string
	status := &cobra.Command{
		Use:   "status",
		Short: "List migrations and whether they are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, open, func(ctx context.Context, e *env) error {
				ms, err := migrate.Status(ctx, e.Store.DB(), e.Store.Dialect)
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), format, ms, migrationsTable(ms))
			})
		},
	}
	addFormatFlag(status, &format)
	cmd.AddCommand(status)
	return cmd
}

func newStatsCmd(open opener) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show usage totals as the admin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, open, func(ctx context.Context, e *env) error {
				st, err := e.Usage.Aggregate(ctx, e.AdminID, time.Now())
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), format, st, statsTable(st))
			})
		},
	}
	addFormatFlag(cmd, &format)
	return cmd
}

func newWatchlistCmd(open opener) *cobra.Command {
	cmd := &cobra.Command{Use: "watchlist", Short: "Inspect and edit watchlists"}

	var format string
	list := &cobra.Command{
		Use:   "list <owner>",
		Short: "List an owner's entries in insertion order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := parseID("owner", args[0])
			if err != nil {
				return err
			}
			return withEnv(cmd, open, func(ctx context.Context, e *env) error {
				entries, err := e.Watchlist.List(ctx, owner)
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), format, entries, entriesTable(entries))
			})
		},
	}
	addFormatFlag(list, &format)

	remove := &cobra.Command{
		Use:   "remove <owner> <movie|series> <id>",
		Short: "Remove one entry",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := parseID("owner", args[0])
			if err != nil {
				return err
			}
			typ, err := media.ParseType(args[1])
			if err != nil {
				return err
			}
			id, err := parseID("id", args[2])
			if err != nil {
				return err
			}
			return withEnv(cmd, open, func(ctx context.Context, e *env) error {
				ok, err := e.Watchlist.Remove(ctx, wldomain.RemoveInput{OwnerID: owner, Ref: media.Ref{Type: typ, ID: id}})
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "not on the watchlist")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), "removed")
				return nil
			})
		},
	}

	cmd.AddCommand(list, remove)
	return cmd
}

func parseID(name, s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid %s %q", name, s)
	}
	return v, nil
}
