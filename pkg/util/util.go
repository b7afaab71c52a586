package util

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var isoDuration = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// ParseDuration parses the ISO 8601 durations (P1D, PT1H, PT30M, PT1H30M) that
// Taskwarrior exports for duration UDAs. An empty string is a zero duration.
func ParseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	match := isoDuration.FindStringSubmatch(s)
	if match == nil || strings.HasSuffix(s, "T") {
		return 0, fmt.Errorf("invalid ISO 8601 duration format: %s", s)
	}

	var total time.Duration
	for i, unit := range []time.Duration{24 * time.Hour, time.Hour, time.Minute, time.Second} {
		if match[i+1] == "" {
			continue
		}
		value, err := strconv.ParseInt(match[i+1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid ISO 8601 duration %s: %w", s, err)
		}
		if value > int64(math.MaxInt64-total)/int64(unit) {
			return 0, fmt.Errorf("ISO 8601 duration out of range: %s", s)
		}
		total += time.Duration(value) * unit
	}

	if total == 0 {
		return 0, fmt.Errorf("invalid ISO 8601 duration: %s", s)
	}
	return total, nil
}

// ParseEffort parses an Org-mode effort estimate. Both "H:MM" and a bare
// number of minutes are accepted.
func ParseEffort(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty effort")
	}

	hours, minutes, found := strings.Cut(s, ":")
	if !found {
		m, err := strconv.Atoi(s)
		if err != nil || m < 0 {
			return 0, fmt.Errorf("invalid effort %q", s)
		}
		return time.Duration(m) * time.Minute, nil
	}

	h, err := strconv.Atoi(hours)
	if err != nil || h < 0 {
		return 0, fmt.Errorf("invalid effort hours in %q", s)
	}
	m, err := strconv.Atoi(minutes)
	if err != nil || m < 0 || m >= 60 {
		return 0, fmt.Errorf("invalid effort minutes in %q", s)
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute, nil
}

// Minutes converts d to whole minutes, rounding up any remainder so a non-zero
// estimate never collapses to zero.
func Minutes(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	m := int(d / time.Minute)
	if d%time.Minute != 0 {
		m++
	}
	return m
}
