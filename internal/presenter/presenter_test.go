package presenter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-activity/internal/domain"
)

func sampleEvents(n int) []domain.Event {
	events := make([]domain.Event, 0, n)
	for i := 0; i < n; i++ {
		events = append(events, domain.Event{
			ID:        fmt.Sprint(i + 1),
			Type:      domain.EventTypePush,
			Repo:      domain.Repo{Name: fmt.Sprintf("octocat/repo-%d", i+1)},
			CreatedAt: time.Date(2024, 1, 15-i, 10, 30, 0, 0, time.UTC),
		})
	}
	return events
}

func TestConsole_Present_Plain(t *testing.T) {
	events := []domain.Event{
		{Type: domain.EventTypePush, Repo: domain.Repo{Name: "octocat/hello-world"}, CreatedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{Type: domain.EventTypeWatch, Repo: domain.Repo{Name: "octocat/linguist"}, CreatedAt: time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC)},
	}
	rule := strings.Repeat("=", 50)
	expected := rule + "\n" +
		"GitHub Activity Results:\n" +
		rule + "\n" +
		"- PushEvent in octocat/hello-world\n" +
		"  created_at: 15/01/2024\n" +
		"\n" +
		"- WatchEvent in octocat/linguist\n" +
		"  created_at: 31/12/2023\n" +
		"\n" +
		rule + "\n"

	var buf bytes.Buffer
	err := (&Console{}).Present(&buf, events)

	require.NoError(t, err)
	assert.Equal(t, expected, buf.String())
}

func TestConsole_Present_Colored(t *testing.T) {
	var buf bytes.Buffer
	err := (&Console{Color: true}).Present(&buf, sampleEvents(1))
	require.NoError(t, err)

	lines := strings.Split(buf.String(), "\n")
	rule := strings.Repeat("=", 50)
	assert.Equal(t, "\033[1;32m"+rule+"\033[0m", lines[0])
	assert.Equal(t, "\033[1;34mGitHub Activity Results:\033[0m", lines[1])
	assert.Equal(t, "\033[1;32m"+rule+"\033[0m", lines[2])
	assert.Equal(t, "\033[1;33m- PushEvent in octocat/repo-1\033[0m", lines[3])
	assert.Equal(t, "  created_at: 15/01/2024", lines[4])
	assert.Equal(t, "", lines[5])
	assert.Equal(t, "\033[1;32m"+rule+"\033[0m", lines[6])
}

func TestConsole_Present_RendersAtMostFive(t *testing.T) {
	testCases := []struct {
		inputLen int
		limit    int
		expected int
	}{
		{inputLen: 0, expected: 0},
		{inputLen: 4, expected: 4},
		{inputLen: 5, expected: 5},
		{inputLen: 6, expected: 5},
		{inputLen: 6, limit: 3, expected: 3},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%d events", tc.inputLen), func(t *testing.T) {
			var buf bytes.Buffer
			err := (&Console{Limit: tc.limit}).Present(&buf, sampleEvents(tc.inputLen))
			require.NoError(t, err)

			out := buf.String()
			assert.Equal(t, tc.expected, strings.Count(out, "- PushEvent in "))
			assert.Equal(t, tc.expected, strings.Count(out, "created_at: "))
			if tc.expected > 0 {
				assert.Contains(t, out, fmt.Sprintf("octocat/repo-%d\n", tc.expected))
				assert.NotContains(t, out, fmt.Sprintf("octocat/repo-%d\n", tc.expected+1))
			}
		})
	}
}

func TestJSON_Present(t *testing.T) {
	var buf bytes.Buffer
	err := (&JSON{}).Present(&buf, sampleEvents(7))
	require.NoError(t, err)

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 5)
	assert.Equal(t, "PushEvent", decoded[0]["type"])
	assert.Equal(t, "octocat/repo-1", decoded[0]["repo"].(map[string]interface{})["name"])
	assert.Equal(t, "2024-01-15T10:30:00Z", decoded[0]["created_at"])
}

func TestParseColorMode(t *testing.T) {
	testCases := []struct {
		in          string
		expected    ColorMode
		expectError bool
	}{
		{in: "auto", expected: ColorAuto},
		{in: "", expected: ColorAuto},
		{in: "Always", expected: ColorAlways},
		{in: " never ", expected: ColorNever},
		{in: "sometimes", expectError: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			mode, err := ParseColorMode(tc.in)
			if tc.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, mode)
		})
	}
}

func TestOutput_NonTerminalWriter(t *testing.T) {
	var buf bytes.Buffer

	w, color := Output(&buf, ColorAuto)
	assert.Same(t, &buf, w)
	assert.False(t, color)

	w, color = Output(&buf, ColorAlways)
	assert.Same(t, &buf, w)
	assert.True(t, color)

	w, color = Output(&buf, ColorNever)
	assert.Same(t, &buf, w)
	assert.False(t, color)
}
