package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout defines the canonical date format (YYYY-MM-DD) used for run partitions.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseSeason validates a season string in the feed format "2024-25" and
// returns the season's ending year (2025 in the example).
func ParseSeason(value string) (int, error) {
	parts := strings.SplitN(value, "-", 2)
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid season %q: want YYYY-YY", value)
	}
	start, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid season %q: %w", value, err)
	}
	endSuffix, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid season %q: %w", value, err)
	}
	end := (start/100)*100 + endSuffix
	if end < start {
		end += 100
	}
	if end != start+1 {
		return 0, fmt.Errorf("invalid season %q: years are not consecutive", value)
	}
	return end, nil
}

// FormatSeason renders the season that ends in the given year ("2024-25" for 2025).
func FormatSeason(endYear int) string {
	return fmt.Sprintf("%d-%02d", endYear-1, endYear%100)
}

// SeasonRange lists every season string from first through last inclusive,
// each identified by its ending year format.
func SeasonRange(first, last string) ([]string, error) {
	from, err := ParseSeason(first)
	if err != nil {
		return nil, err
	}
	to, err := ParseSeason(last)
	if err != nil {
		return nil, err
	}
	if to < from {
		return nil, fmt.Errorf("season range %q..%q is reversed", first, last)
	}
	seasons := make([]string, 0, to-from+1)
	for year := from; year <= to; year++ {
		seasons = append(seasons, FormatSeason(year))
	}
	return seasons, nil
}
