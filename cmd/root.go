// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/naka-gawa/github-activity/internal/config"
	"github.com/naka-gawa/github-activity/internal/gateway"
	"github.com/naka-gawa/github-activity/internal/logger"
)

// errReported marks a failure whose message has already been shown to the user.
var errReported = errors.New("failure already reported")

var rootCmd = &cobra.Command{
	Use:   "github-activity",
	Short: "Shows the recent public activity of a GitHub user.",
	Long: `github-activity fetches the public activity feed of a GitHub user,
optionally filters it by event type, and prints the most recent events.

The username and the event type are prompted for unless given as flags.
Fetch failures are reported on stderr and exit with status 1; an empty result exits 0.`,
	Example: `  github-activity
  github-activity --user octocat --type PushEvent
  github-activity -u octocat --json --limit 10`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runActivity,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	// Shared flags are persistent so every subcommand resolves the same settings.
	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.Flags().StringP("user", "u", "", "GitHub username (prompted for when omitted)")
	rootCmd.Flags().StringP("type", "t", "", "Event type to filter by, e.g. PushEvent (prompted for when omitted)")
}

// setup resolves the settings and diagnostics logger of a command invocation.
func setup(cmd *cobra.Command) (*config.Settings, *zap.Logger, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	settings, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	lg := logger.New(settings.Verbose, cmd.ErrOrStderr())
	lg.Debug("settings resolved",
		zap.Int("limit", settings.Limit),
		zap.Bool("json", settings.JSON),
		zap.String("color", settings.Color),
		zap.Bool("auth", settings.Auth),
		zap.Bool("wait_rate_limit", settings.WaitRateLimit),
		zap.Duration("timeout", settings.Timeout),
		zap.String("api_url", settings.APIURL),
	)
	return settings, lg, nil
}

// newGateway builds the GitHub gateway for the resolved settings.
func newGateway(settings *config.Settings, lg *zap.Logger) (*gateway.GitHubGateway, error) {
	g, err := gateway.NewGitHubGateway(gateway.Options{
		Token:         settings.Token,
		WaitRateLimit: settings.WaitRateLimit,
		APIURL:        settings.APIURL,
	}, lg)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub gateway: %w", err)
	}
	return g, nil
}

// withTimeout bounds ctx by the configured timeout, if any.
func withTimeout(ctx context.Context, settings *config.Settings) (context.Context, context.CancelFunc) {
	if settings.Timeout > 0 {
		return context.WithTimeout(ctx, settings.Timeout)
	}
	return context.WithCancel(ctx)
}
