// Package presenter renders activity events for the terminal.
// Nothing outside this package knows about colors or output formats.
package presenter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/naka-gawa/github-activity/internal/domain"
)

// Presenter writes a window of events to w.
type Presenter interface {
	Present(w io.Writer, events []domain.Event) error
}

const (
	boxColor    = "\033[1;32m"
	headerColor = "\033[1;34m"
	eventColor  = "\033[1;33m"
	resetColor  = "\033[0m"

	ruleWidth = 50
	title     = "GitHub Activity Results:"
)

// Console renders the decorated text format.
type Console struct {
	// Limit is the maximum number of events rendered; non-positive means domain.DisplayLimit.
	Limit int
	// Color enables ANSI escape sequences.
	Color bool
}

func (c *Console) paint(color, s string) string {
	if !c.Color {
		return s
	}
	return color + s + resetColor
}

// Present renders at most Limit events in input order between two rules.
func (c *Console) Present(w io.Writer, events []domain.Event) error {
	rule := c.paint(boxColor, strings.Repeat("=", ruleWidth))

	var b strings.Builder
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, c.paint(headerColor, title))
	fmt.Fprintln(&b, rule)
	for _, event := range domain.Head(events, c.Limit) {
		fmt.Fprintln(&b, c.paint(eventColor, fmt.Sprintf("- %s in %s", event.Type, event.Repo.Name)))
		fmt.Fprintf(&b, "  created_at: %s\n", event.DisplayDate())
		fmt.Fprintln(&b)
	}
	fmt.Fprintln(&b, rule)

	_, err := io.WriteString(w, b.String())
	return err
}

// JSON renders the same window of events as an indented JSON array.
type JSON struct {
	Limit int
}

func (j *JSON) Present(w io.Writer, events []domain.Event) error {
	window := domain.Head(events, j.Limit)
	if window == nil {
		window = []domain.Event{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(window); err != nil {
		return fmt.Errorf("failed to encode events as JSON: %w", err)
	}
	return nil
}

// ColorMode selects when ANSI colors are emitted.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode validates a --color value.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	case "":
		return ColorAuto, nil
	}
	return "", fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
}

// Output resolves the writer and color setting for w. When w is a terminal
// and colors are enabled, the writer translates ANSI sequences where the
// console cannot interpret them natively.
func Output(w io.Writer, mode ColorMode) (io.Writer, bool) {
	f, isFile := w.(*os.File)
	switch mode {
	case ColorNever:
		return w, false
	case ColorAlways:
		if isFile {
			return colorable.NewColorable(f), true
		}
		return w, true
	}
	if !isFile || !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return w, false
	}
	return colorable.NewColorable(f), true
}
