package usecase

import "github.com/naka-gawa/github-activity/internal/domain"

// FilterByType returns the events whose type equals eventType exactly,
// preserving their relative order. An empty eventType returns events unchanged.
// The match is case-sensitive and eventType is not checked against the known types.
func FilterByType(events []domain.Event, eventType string) []domain.Event {
	if eventType == "" {
		return events
	}
	filtered := make([]domain.Event, 0, len(events))
	for _, event := range events {
		if string(event.Type) == eventType {
			filtered = append(filtered, event)
		}
	}
	return filtered
}
