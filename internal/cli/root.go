package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/2beens/trainerdash/internal/records"
	"github.com/2beens/trainerdash/internal/strava"
	"github.com/2beens/trainerdash/internal/syncer"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

//go:generate mockgen -source=$GOFILE -destination=cli_mocks_test.go -package=cli_test

type syncRunner interface {
	SyncAll(ctx context.Context, onProgress syncer.ProgressFunc, startDate *time.Time) (*syncer.Result, error)
	QuickSync(ctx context.Context, stages []syncer.Stage, onProgress syncer.ProgressFunc) (*syncer.Result, error)
	AutoSync(ctx context.Context, onProgress syncer.ProgressFunc, maxAge time.Duration) (*syncer.Result, error)
}

type recordsAnalyzer interface {
	General(ctx context.Context, athleteID int64) (records.GeneralRecords, error)
	Running(ctx context.Context, athleteID int64) (*records.RunningRecords, error)
	Cycling(ctx context.Context, athleteID int64) (*records.CyclingRecords, error)
	All(ctx context.Context, athleteID int64) (*records.Summary, error)
}

type sessionLoader interface {
	Load(ctx context.Context) (*strava.Session, error)
}

// Deps are the collaborators the commands run against.
type Deps struct {
	Syncer   syncRunner
	Analyzer recordsAnalyzer
	Sessions sessionLoader
	// Close releases the underlying connections, may be nil.
	Close func()
}

// DepsBuilder creates the command collaborators for the given env and config file.
type DepsBuilder func(ctx context.Context, env, configPath string) (*Deps, error)

type app struct {
	env        string
	configPath string
	build      DepsBuilder
	deps       *Deps
	out        io.Writer
}

// NewRootCmd creates the trainerctl command tree. Collaborators are built lazily,
// once per invocation, right before a sub command runs.
func NewRootCmd(build DepsBuilder, out io.Writer) *cobra.Command {
	a := &app{
		build: build,
		out:   out,
	}

	rootCmd := &cobra.Command{
		Use:   "trainerctl",
		Short: "trainerdash command line tools",
		Long: `trainerctl runs strava syncs and prints personal records
against the same database and session store the trainerdash service uses.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" {
				return nil
			}
			deps, err := a.build(cmd.Context(), a.env, a.configPath)
			if err != nil {
				return fmt.Errorf("init: %w", err)
			}
			a.deps = deps
			log.Debugf("trainerctl [%s] started", cmd.Name())
			return nil
		},
	}

	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().StringVar(&a.env, "env", "development", "environment [prod | production | dev | development]")
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "./config.toml", "path for the TOML config file")

	rootCmd.AddCommand(newSyncCmd(a))
	rootCmd.AddCommand(newQuickSyncCmd(a))
	rootCmd.AddCommand(newAutoSyncCmd(a))
	rootCmd.AddCommand(newRecordsCmd(a))

	return rootCmd
}

// withDeps releases the collaborators once the command body returns, failed or not.
func (a *app) withDeps(run func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		defer func() {
			if a.deps != nil && a.deps.Close != nil {
				a.deps.Close()
			}
		}()
		return run(cmd, args)
	}
}

func (a *app) printJSON(v any) error {
	encoder := json.NewEncoder(a.out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func (a *app) logProgress(message string) {
	log.Infof("sync: %s", message)
}
