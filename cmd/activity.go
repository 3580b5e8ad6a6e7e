package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/naka-gawa/github-activity/internal/gateway"
	"github.com/naka-gawa/github-activity/internal/presenter"
	"github.com/naka-gawa/github-activity/internal/usecase"
)

const (
	usernamePrompt  = "Please input the GitHub username: "
	eventTypePrompt = "Enter event type to filter by (CreateEvent-MemberEvent-PushEvent-DeleteEvent-WatchEvent)(leave blank for all events): "
)

// activityRunner sequences one run of the interactive activity command.
type activityRunner struct {
	fetcher   gateway.Fetcher
	presenter presenter.Presenter
	logger    *zap.Logger

	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer

	// user and eventType skip their prompt when set.
	user      string
	eventType *string
	// quiet moves prompts to errOut and drops status lines so out only carries the rendered events.
	quiet bool
}

func runActivity(cmd *cobra.Command, args []string) error {
	settings, lg, err := setup(cmd)
	if err != nil {
		return err
	}
	defer lg.Sync()

	colorMode, err := presenter.ParseColorMode(settings.Color)
	if err != nil {
		return err
	}
	out, color := presenter.Output(cmd.OutOrStdout(), colorMode)

	var p presenter.Presenter = &presenter.Console{Limit: settings.Limit, Color: color}
	if settings.JSON {
		p = &presenter.JSON{Limit: settings.Limit}
	}

	g, err := newGateway(settings, lg)
	if err != nil {
		return err
	}

	runner := &activityRunner{
		fetcher:   g,
		presenter: p,
		logger:    lg,
		in:        bufio.NewReader(cmd.InOrStdin()),
		out:       out,
		errOut:    cmd.ErrOrStderr(),
		quiet:     settings.JSON,
	}
	runner.user, _ = cmd.Flags().GetString("user")
	if cmd.Flags().Changed("type") {
		eventType, _ := cmd.Flags().GetString("type")
		runner.eventType = &eventType
	}

	ctx, cancel := withTimeout(cmd.Context(), settings)
	defer cancel()
	return runner.run(ctx)
}

func (r *activityRunner) run(ctx context.Context) error {
	user := strings.TrimSpace(r.user)
	if user == "" {
		answer, err := r.ask(usernamePrompt)
		if err != nil {
			return err
		}
		user = answer
	}
	if user == "" {
		fmt.Fprintln(r.errOut, "Username cannot be empty.")
		return errReported
	}

	result := r.fetcher.FetchEvents(ctx, user)
	switch result.Status {
	case gateway.FetchSucceeded:
	case gateway.FetchNotFound:
		fmt.Fprintln(r.errOut, "Invalid username. Please check the username and try again.")
		return errReported
	case gateway.FetchRemoteError:
		fmt.Fprintf(r.errOut, "Error: %d. Unable to fetch data.\n", result.StatusCode)
		return errReported
	case gateway.FetchTransportError:
		fmt.Fprintf(r.errOut, "Network connection error: %v\n", result.Detail)
		return errReported
	default:
		return fmt.Errorf("unexpected fetch status %v", result.Status)
	}

	if n := len(result.Malformed); n > 0 {
		fmt.Fprintf(r.errOut, "Skipped %d malformed event(s).\n", n)
	}

	events := result.Events
	if len(events) == 0 {
		r.logger.Debug("activity feed is empty", zap.String("user", user))
		if r.quiet {
			return r.presenter.Present(r.out, events)
		}
		fmt.Fprintln(r.out, "No activities found.")
		return nil
	}

	if !r.quiet {
		fmt.Fprint(r.out, "\nFetched activities successfully.\n\n")
	}

	var eventType string
	switch {
	case r.eventType != nil:
		eventType = strings.TrimSpace(*r.eventType)
	case !r.quiet:
		answer, err := r.ask(eventTypePrompt)
		if err != nil {
			return err
		}
		eventType = answer
	}

	filtered := usecase.FilterByType(events, eventType)
	r.logger.Debug("activity feed filtered",
		zap.String("user", user),
		zap.String("type", eventType),
		zap.Int("fetched", len(events)),
		zap.Int("matched", len(filtered)),
	)
	if len(filtered) == 0 && !r.quiet {
		fmt.Fprintln(r.out, "No activities found for the specified filter.")
		return nil
	}
	return r.presenter.Present(r.out, filtered)
}

// ask prints prompt and reads one line, trimmed. Exhausted input reads as blank.
// In quiet mode the prompt goes to errOut so out stays machine-readable.
func (r *activityRunner) ask(prompt string) (string, error) {
	w := r.out
	if r.quiet {
		w = r.errOut
	}
	fmt.Fprint(w, prompt)
	line, err := r.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
