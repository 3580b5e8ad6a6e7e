package domain

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEvent(t *testing.T) {
	testCases := []struct {
		name        string
		raw         string
		expected    Event
		expectedErr error
	}{
		{
			name: "happy path - all consumed fields present",
			raw:  `{"id":"1","type":"PushEvent","actor":{"login":"octocat"},"repo":{"name":"octocat/hello"},"created_at":"2024-01-15T10:30:00Z","payload":{}}`,
			expected: Event{
				ID:        "1",
				Type:      EventTypePush,
				Actor:     Actor{Login: "octocat"},
				Repo:      Repo{Name: "octocat/hello"},
				CreatedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
			},
		},
		{
			name:     "unknown type is still a valid event",
			raw:      `{"type":"SponsorshipEvent","repo":{"name":"a/b"},"created_at":"2024-01-15T10:30:00Z"}`,
			expected: Event{Type: "SponsorshipEvent", Repo: Repo{Name: "a/b"}, CreatedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		},
		{
			name:        "missing type",
			raw:         `{"id":"2","repo":{"name":"a/b"},"created_at":"2024-01-15T10:30:00Z"}`,
			expectedErr: ErrMissingType,
		},
		{
			name:        "missing repo",
			raw:         `{"type":"PushEvent","created_at":"2024-01-15T10:30:00Z"}`,
			expectedErr: ErrMissingRepoName,
		},
		{
			name:        "empty repo name",
			raw:         `{"type":"PushEvent","repo":{"name":""},"created_at":"2024-01-15T10:30:00Z"}`,
			expectedErr: ErrMissingRepoName,
		},
		{
			name:        "missing created_at",
			raw:         `{"type":"PushEvent","repo":{"name":"a/b"}}`,
			expectedErr: ErrMissingCreatedAt,
		},
		{
			name:        "created_at with fractional seconds does not match the layout",
			raw:         `{"type":"PushEvent","repo":{"name":"a/b"},"created_at":"2024-01-15T10:30:00.123Z"}`,
			expectedErr: ErrInvalidCreatedAt,
		},
		{
			name:        "created_at with offset does not match the layout",
			raw:         `{"type":"PushEvent","repo":{"name":"a/b"},"created_at":"2024-01-15T10:30:00+02:00"}`,
			expectedErr: ErrInvalidCreatedAt,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			event, err := DecodeEvent(json.RawMessage(tc.raw))
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, event)
		})
	}
}

func TestDecodeEvent_NotAnObject(t *testing.T) {
	_, err := DecodeEvent(json.RawMessage(`"PushEvent"`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode event")
}

func TestDecodeEvents_SkipsMalformedAndKeepsOrder(t *testing.T) {
	raws := []json.RawMessage{
		json.RawMessage(`{"id":"a","type":"PushEvent","repo":{"name":"r/1"},"created_at":"2024-01-15T10:30:00Z"}`),
		json.RawMessage(`{"id":"b","type":"PushEvent","created_at":"2024-01-15T10:30:00Z"}`),
		json.RawMessage(`{"id":"c","type":"WatchEvent","repo":{"name":"r/2"},"created_at":"2024-01-14T09:00:00Z"}`),
		json.RawMessage(`42`),
	}

	events, malformed := DecodeEvents(raws)

	require.Len(t, events, 2)
	assert.Equal(t, "a", events[0].ID)
	assert.Equal(t, "c", events[1].ID)

	require.Len(t, malformed, 2)
	assert.Equal(t, 1, malformed[0].Index)
	assert.Equal(t, "b", malformed[0].ID)
	assert.ErrorIs(t, malformed[0], ErrMissingRepoName)
	assert.Equal(t, "event #1 (id b): missing repo.name", malformed[0].Error())
	assert.Equal(t, 3, malformed[1].Index)
}

func TestDecodeEvents_Empty(t *testing.T) {
	events, malformed := DecodeEvents(nil)
	assert.Empty(t, events)
	assert.Nil(t, malformed)
}

func TestEvent_DisplayDate(t *testing.T) {
	event := Event{CreatedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)}
	assert.Equal(t, "15/01/2024", event.DisplayDate())
}

func TestSortedEventTypes(t *testing.T) {
	types := SortedEventTypes()
	assert.Len(t, types, len(KnownEventTypes))
	for i := 1; i < len(types); i++ {
		assert.Less(t, string(types[i-1]), string(types[i]))
	}
}

func TestHead(t *testing.T) {
	events := make([]Event, 7)
	for i := range events {
		events[i].ID = fmt.Sprint(i)
	}

	testCases := []struct {
		name     string
		events   []Event
		n        int
		expected int
	}{
		{name: "fewer than n", events: events[:3], n: 5, expected: 3},
		{name: "exactly n", events: events[:5], n: 5, expected: 5},
		{name: "more than n", events: events, n: 5, expected: 5},
		{name: "zero falls back to DisplayLimit", events: events, n: 0, expected: DisplayLimit},
		{name: "negative falls back to DisplayLimit", events: events, n: -1, expected: DisplayLimit},
		{name: "custom limit", events: events, n: 6, expected: 6},
		{name: "empty input", events: nil, n: 5, expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := Head(tc.events, tc.n)
			require.Len(t, result, tc.expected)
			if tc.expected > 0 {
				assert.Equal(t, "0", result[0].ID)
			}
		})
	}
}
