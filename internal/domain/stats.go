package domain

// TypeCount is the number of events of one type in a feed.
type TypeCount struct {
	Type  EventType `json:"type"`
	Count int       `json:"count"`
}

// Contributions holds the contribution totals reported by the GraphQL API.
type Contributions struct {
	Commits      int `json:"commits"`
	Issues       int `json:"issues"`
	PullRequests int `json:"pull_requests"`
	Reviews      int `json:"reviews"`
}

// ActivitySummary aggregates a user's activity feed.
// It is the output of the stats command.
type ActivitySummary struct {
	User          string         `json:"user"`
	TotalEvents   int            `json:"total_events"`
	SkippedEvents int            `json:"skipped_events"`
	ByType        []TypeCount    `json:"by_type"`
	ActiveDays    int            `json:"active_days"`
	MeanPerDay    float64        `json:"mean_per_day"`
	MedianPerDay  float64        `json:"median_per_day"`
	MaxPerDay     float64        `json:"max_per_day"`
	Contributions *Contributions `json:"contributions,omitempty"`
}
