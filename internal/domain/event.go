// Package domain contains the core data structures and domain logic for the application.
package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"
)

// CreatedAtLayout is the exact timestamp layout GitHub uses for created_at.
const CreatedAtLayout = "2006-01-02T15:04:05Z"

// DisplayDateLayout renders a created_at as DD/MM/YYYY.
const DisplayDateLayout = "02/01/2006"

// DisplayLimit is the number of events rendered per run.
const DisplayLimit = 5

// EventType is the GitHub event taxonomy tag, e.g. "PushEvent".
type EventType string

const (
	EventTypePush         EventType = "PushEvent"
	EventTypeCreate       EventType = "CreateEvent"
	EventTypeDelete       EventType = "DeleteEvent"
	EventTypeWatch        EventType = "WatchEvent"
	EventTypeMember       EventType = "MemberEvent"
	EventTypeFork         EventType = "ForkEvent"
	EventTypeIssues       EventType = "IssuesEvent"
	EventTypeIssueComment EventType = "IssueCommentEvent"
	EventTypePullRequest  EventType = "PullRequestEvent"
	EventTypeReview       EventType = "PullRequestReviewEvent"
	EventTypePublic       EventType = "PublicEvent"
	EventTypeRelease      EventType = "ReleaseEvent"
)

// KnownEventTypes maps each event type to a short description.
// It is informational only; filtering never validates against it.
var KnownEventTypes = map[EventType]string{
	EventTypePush:         "Git push to a branch",
	EventTypeCreate:       "Branch, tag or repository created",
	EventTypeDelete:       "Branch or tag deleted",
	EventTypeWatch:        "Repository starred",
	EventTypeMember:       "Collaborator added to a repository",
	EventTypeFork:         "Repository forked",
	EventTypeIssues:       "Issue opened, closed or edited",
	EventTypeIssueComment: "Comment on an issue or pull request",
	EventTypePullRequest:  "Pull request opened, closed or merged",
	EventTypeReview:       "Pull request review submitted",
	EventTypePublic:       "Repository made public",
	EventTypeRelease:      "Release published",
}

// SortedEventTypes returns the known event types ordered by name.
func SortedEventTypes() []EventType {
	types := make([]EventType, 0, len(KnownEventTypes))
	for t := range KnownEventTypes {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Head returns at most the first n events. A non-positive n means DisplayLimit.
func Head(events []Event, n int) []Event {
	if n <= 0 {
		n = DisplayLimit
	}
	if len(events) > n {
		return events[:n]
	}
	return events
}

// Repo identifies the repository an event happened in.
type Repo struct {
	Name string `json:"name"`
}

// Actor is the account that performed an event.
type Actor struct {
	Login string `json:"login,omitempty"`
}

// Event is a validated activity feed entry.
type Event struct {
	ID        string    `json:"id,omitempty"`
	Type      EventType `json:"type"`
	Actor     Actor     `json:"actor"`
	Repo      Repo      `json:"repo"`
	CreatedAt time.Time `json:"created_at"`
}

// DisplayDate returns CreatedAt as DD/MM/YYYY.
func (e Event) DisplayDate() string {
	return e.CreatedAt.Format(DisplayDateLayout)
}

// Reasons an entry of the feed can be rejected.
var (
	ErrMissingType      = errors.New("missing type")
	ErrMissingRepoName  = errors.New("missing repo.name")
	ErrMissingCreatedAt = errors.New("missing created_at")
	ErrInvalidCreatedAt = errors.New("invalid created_at")
)

// MalformedEvent records a feed entry that failed validation.
type MalformedEvent struct {
	Index  int
	ID     string
	Reason error
}

func (m MalformedEvent) Error() string {
	if m.ID != "" {
		return fmt.Sprintf("event #%d (id %s): %v", m.Index, m.ID, m.Reason)
	}
	return fmt.Sprintf("event #%d: %v", m.Index, m.Reason)
}

func (m MalformedEvent) Unwrap() error {
	return m.Reason
}

// wireEvent mirrors the subset of the GitHub event JSON we consume.
// Pointers distinguish absent fields from empty ones.
type wireEvent struct {
	ID    string  `json:"id"`
	Type  *string `json:"type"`
	Actor *struct {
		Login string `json:"login"`
	} `json:"actor"`
	Repo *struct {
		Name *string `json:"name"`
	} `json:"repo"`
	CreatedAt *string `json:"created_at"`
}

// DecodeEvent validates a single raw feed entry.
func DecodeEvent(raw json.RawMessage) (Event, error) {
	var w wireEvent
	if err := json.Unmarshal(raw, &w); err != nil {
		return Event{}, fmt.Errorf("failed to decode event: %w", err)
	}
	if w.Type == nil || *w.Type == "" {
		return Event{ID: w.ID}, ErrMissingType
	}
	if w.Repo == nil || w.Repo.Name == nil || *w.Repo.Name == "" {
		return Event{ID: w.ID}, ErrMissingRepoName
	}
	if w.CreatedAt == nil {
		return Event{ID: w.ID}, ErrMissingCreatedAt
	}
	createdAt, err := time.Parse(CreatedAtLayout, *w.CreatedAt)
	if err != nil {
		return Event{ID: w.ID}, fmt.Errorf("%w: %q", ErrInvalidCreatedAt, *w.CreatedAt)
	}

	event := Event{
		ID:        w.ID,
		Type:      EventType(*w.Type),
		Repo:      Repo{Name: *w.Repo.Name},
		CreatedAt: createdAt,
	}
	if w.Actor != nil {
		event.Actor.Login = w.Actor.Login
	}
	return event, nil
}

// DecodeEvents validates every entry of a feed. Valid events keep their
// relative order; rejected entries are returned alongside, never dropped silently.
func DecodeEvents(raws []json.RawMessage) ([]Event, []MalformedEvent) {
	events := make([]Event, 0, len(raws))
	var malformed []MalformedEvent
	for i, raw := range raws {
		event, err := DecodeEvent(raw)
		if err != nil {
			malformed = append(malformed, MalformedEvent{Index: i, ID: event.ID, Reason: err})
			continue
		}
		events = append(events, event)
	}
	return events, malformed
}
