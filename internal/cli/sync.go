package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/2beens/trainerdash/internal/syncer"

	"github.com/spf13/cobra"
)

const defaultAutoSyncMaxAge = 6 * time.Hour

func newSyncCmd(a *app) *cobra.Command {
	var since string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Run a full sync of profile, stats and activities",
		Long: `Run a full sync and write the sync status.

Examples:
  trainerctl sync
  trainerctl sync --since 2024-01-01`,
		Args: cobra.NoArgs,
		RunE: a.withDeps(func(cmd *cobra.Command, args []string) error {
			var startDate *time.Time
			if since != "" {
				parsed, err := parseSince(since)
				if err != nil {
					return err
				}
				startDate = &parsed
			}

			result, err := a.deps.Syncer.SyncAll(cmd.Context(), a.logProgress, startDate)
			return a.finishSync(result, err)
		}),
	}

	cmd.Flags().StringVar(&since, "since", "", "fetch activities since this date (YYYY-MM-DD or RFC3339), defaults to 3 months back")
	return cmd
}

func newQuickSyncCmd(a *app) *cobra.Command {
	var types string

	cmd := &cobra.Command{
		Use:   "quick-sync",
		Short: "Sync only the selected stages, activities incrementally",
		Args:  cobra.NoArgs,
		RunE: a.withDeps(func(cmd *cobra.Command, args []string) error {
			stages, err := syncer.ParseStages(types)
			if err != nil {
				return err
			}

			result, err := a.deps.Syncer.QuickSync(cmd.Context(), stages, a.logProgress)
			return a.finishSync(result, err)
		}),
	}

	cmd.Flags().StringVar(&types, "types", "", "comma separated stages: profile,stats,activities (default all)")
	return cmd
}

func newAutoSyncCmd(a *app) *cobra.Command {
	var maxAge time.Duration

	cmd := &cobra.Command{
		Use:   "auto-sync",
		Short: "Run a full sync only when the stored data is older than --max-age",
		Args:  cobra.NoArgs,
		RunE: a.withDeps(func(cmd *cobra.Command, args []string) error {
			if maxAge < 0 {
				return fmt.Errorf("max age must not be negative: %s", maxAge)
			}

			result, err := a.deps.Syncer.AutoSync(cmd.Context(), a.logProgress, maxAge)
			if err != nil {
				return err
			}
			if result == nil {
				cmd.Println("data is fresh, nothing to sync")
				return nil
			}
			return a.finishSync(result, nil)
		}),
	}

	cmd.Flags().DurationVar(&maxAge, "max-age", defaultAutoSyncMaxAge, "sync when the last sync is older than this")
	return cmd
}

// finishSync prints the result; a run with failed stages makes the command fail.
func (a *app) finishSync(result *syncer.Result, err error) error {
	if err != nil {
		return err
	}
	if err := a.printJSON(result); err != nil {
		return err
	}
	if !result.Success {
		return fmt.Errorf("sync %s finished with errors: %s", result.RunID, strings.Join(result.Errors, "; "))
	}
	return nil
}

func parseSince(raw string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid since date %q: use YYYY-MM-DD or RFC3339", raw)
	}
	return t, nil
}
