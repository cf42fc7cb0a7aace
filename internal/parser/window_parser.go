package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ParseWindow parses a history window into a number of days.
// Supported formats:
// - plain day count (e.g., "14")
// - X days (e.g., "30 days", "1 day")
// - X weeks (e.g., "2 weeks", "1 week")
// - X months (e.g., "3 months"), counted as 30 days each
func ParseWindow(input string) (int, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return 0, fmt.Errorf("empty window")
	}

	// Plain day count first
	if days, err := strconv.Atoi(input); err == nil {
		if days < 1 {
			return 0, fmt.Errorf("window must be at least 1 day")
		}
		return days, nil
	}

	windowRegex := regexp.MustCompile(`^(\d+)\s*(day|days|week|weeks|month|months)$`)
	matches := windowRegex.FindStringSubmatch(input)
	if matches == nil {
		return 0, fmt.Errorf("invalid window format. Use: a day count, X days, X weeks, or X months")
	}

	n, err := strconv.Atoi(matches[1])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("window must be at least 1 day")
	}

	switch {
	case strings.HasPrefix(matches[2], "day"):
		return n, nil
	case strings.HasPrefix(matches[2], "week"):
		return n * 7, nil
	default:
		return n * 30, nil
	}
}
