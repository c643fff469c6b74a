package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"society-quiz-service/internal/domain"
)

// NewLeaderboardCmd prints the current standings without starting the server.
func NewLeaderboardCmd(configPath *string) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Print the current leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLeaderboard(cmd.Context(), cmd.OutOrStdout(), *configPath, limit)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "number of teams to show (0 uses quiz.leaderboard_limit)")
	return cmd
}

func runLeaderboard(ctx context.Context, out io.Writer, configPath string, limit int) error {
	cfg, logger, err := loadRuntime(configPath)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	b, err := openBackends(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer b.Close()

	entries, err := newService(cfg, b).GetLeaderboard(ctx, limit)
	if err != nil {
		return err
	}
	return printLeaderboard(out, entries)
}

func printLeaderboard(out io.Writer, entries []domain.LeaderboardEntry) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tTEAM\tNAME\tLEAD\tPOINTS\tTIME")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%.1fs\n", e.Rank, e.TeamID, e.TeamName, e.TeamLead, e.Points, float64(e.ElapsedMs)/1000)
	}
	return tw.Flush()
}
