package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-activity/internal/usecase"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarizes GitHub user activity and outputs it as JSON",
	Long: `Summarizes the public activity feed of a GitHub user (events per type, events per active day)
and outputs the result in JSON format. With --auth, contribution totals from the GraphQL API
are included.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, lg, err := setup(cmd)
		if err != nil {
			return err
		}
		defer lg.Sync()

		user, _ := cmd.Flags().GetString("user")

		// Inject dependencies and run the main business logic.
		githubGateway, err := newGateway(settings, lg)
		if err != nil {
			return err
		}
		aggregator := usecase.NewAggregator(githubGateway, lg)

		ctx, cancel := withTimeout(cmd.Context(), settings)
		defer cancel()

		// GraphQL always needs a token, so contributions are only requested with --auth.
		summary, err := aggregator.Aggregate(ctx, user, settings.Auth)
		if err != nil {
			return fmt.Errorf("failed to aggregate activity: %w", err)
		}

		// Marshal the summary into a pretty-printed JSON string.
		jsonData, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal summary to JSON: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringP("user", "u", "", "Target GitHub user name (required)")
	statsCmd.MarkFlagRequired("user")
}
