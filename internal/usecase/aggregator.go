// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/montanaflynn/stats"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/github-activity/internal/domain"
	"github.com/naka-gawa/github-activity/internal/gateway"
)

const dayLayout = "2006-01-02"

// Aggregator is the use case for summarizing a user's GitHub activity.
// It orchestrates the fetching and combining of data.
type Aggregator struct {
	fetcher gateway.Fetcher
	logger  *zap.Logger
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(fetcher gateway.Fetcher, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		fetcher: fetcher,
		logger:  logger,
	}
}

// Aggregate fetches the activity feed and, when withContributions is set,
// the GraphQL contribution totals concurrently, then summarizes them.
// Contributions need an authenticated gateway.
func (a *Aggregator) Aggregate(ctx context.Context, user string, withContributions bool) (*domain.ActivitySummary, error) {
	a.logger.Debug("usecase: starting activity aggregation", zap.String("user", user))

	var feed gateway.FetchResult
	var contributions *domain.Contributions

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		feed = a.fetcher.FetchEvents(egCtx, user)
		if err := feed.Err(); err != nil {
			return fmt.Errorf("failed to fetch activity feed for %s: %w", user, err)
		}
		return nil
	})

	if withContributions {
		eg.Go(func() error {
			var err error
			contributions, err = a.fetcher.FetchContributions(egCtx, user)
			return err
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	a.logger.Debug("usecase: all data fetched successfully")

	summary, err := Summarize(user, feed.Events)
	if err != nil {
		return nil, err
	}
	summary.SkippedEvents = len(feed.Malformed)
	summary.Contributions = contributions

	a.logger.Debug("usecase: aggregation complete", zap.Int("events", summary.TotalEvents))
	return summary, nil
}

// Summarize computes per-type counts and per-day statistics of a feed.
// Days are UTC calendar days that have at least one event.
func Summarize(user string, events []domain.Event) (*domain.ActivitySummary, error) {
	summary := &domain.ActivitySummary{
		User:        user,
		TotalEvents: len(events),
		ByType:      []domain.TypeCount{},
	}
	if len(events) == 0 {
		return summary, nil
	}

	typeCounts := make(map[domain.EventType]int)
	dayCounts := make(map[string]int)
	for _, event := range events {
		typeCounts[event.Type]++
		dayCounts[event.CreatedAt.UTC().Format(dayLayout)]++
	}

	for eventType, count := range typeCounts {
		summary.ByType = append(summary.ByType, domain.TypeCount{Type: eventType, Count: count})
	}
	// Most frequent first, then by name for consistent output.
	sort.Slice(summary.ByType, func(i, j int) bool {
		if summary.ByType[i].Count != summary.ByType[j].Count {
			return summary.ByType[i].Count > summary.ByType[j].Count
		}
		return summary.ByType[i].Type < summary.ByType[j].Type
	})

	perDay := make(stats.Float64Data, 0, len(dayCounts))
	for _, count := range dayCounts {
		perDay = append(perDay, float64(count))
	}
	summary.ActiveDays = len(perDay)

	var err error
	if summary.MeanPerDay, err = stats.Mean(perDay); err != nil {
		return nil, fmt.Errorf("failed to compute mean events per day: %w", err)
	}
	if summary.MedianPerDay, err = stats.Median(perDay); err != nil {
		return nil, fmt.Errorf("failed to compute median events per day: %w", err)
	}
	if summary.MaxPerDay, err = stats.Max(perDay); err != nil {
		return nil, fmt.Errorf("failed to compute max events per day: %w", err)
	}
	return summary, nil
}
