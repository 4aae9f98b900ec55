package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var recordKinds = []string{"all", "general", "running", "cycling"}

func newRecordsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "records [all|general|running|cycling]",
		Short:     "Print personal records computed from the stored activities",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: recordKinds,
		RunE: a.withDeps(func(cmd *cobra.Command, args []string) error {
			kind := "all"
			if len(args) == 1 {
				kind = args[0]
			}

			ctx := cmd.Context()
			session, err := a.deps.Sessions.Load(ctx)
			if err != nil {
				return fmt.Errorf("load session: %w", err)
			}

			var result any
			switch kind {
			case "general":
				result, err = a.deps.Analyzer.General(ctx, session.AthleteID)
			case "running":
				result, err = a.deps.Analyzer.Running(ctx, session.AthleteID)
			case "cycling":
				result, err = a.deps.Analyzer.Cycling(ctx, session.AthleteID)
			default:
				result, err = a.deps.Analyzer.All(ctx, session.AthleteID)
			}
			if err != nil {
				return fmt.Errorf("compute %s records: %w", kind, err)
			}

			return a.printJSON(result)
		}),
	}
}
