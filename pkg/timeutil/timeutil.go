package timeutil

import (
	"fmt"
	"math"
	"strings"
)

// FormatTime formats seconds as H:MM:SS (e.g. 0:01:30, 1:11:22).
func FormatTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	totalSeconds := int(seconds)
	hours := totalSeconds / 3600
	mins := (totalSeconds % 3600) / 60
	secs := totalSeconds % 60
	return fmt.Sprintf("%d:%02d:%02d", hours, mins, secs)
}

// FormatClock formats seconds as M:SS, or M:SS.t when tenths is set.
// Minutes are not wrapped at the hour.
func FormatClock(seconds float64, tenths bool) string {
	if seconds < 0 {
		seconds = 0
	}
	if tenths {
		total := int(math.Round(seconds * 10))
		return fmt.Sprintf("%d:%02d.%d", total/600, (total/10)%60, total%10)
	}
	total := int(math.Round(seconds))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// FormatHourMinute formats seconds as H:MM.
func FormatHourMinute(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/3600, (total%3600)/60)
}

// FormatFrame formats a frame index as H:MM:SS+FF at the given rate.
func FormatFrame(frame int, fps float64) string {
	if fps <= 0 || frame < 0 {
		return "-:--:--+--"
	}
	perSecond := int(math.Round(fps))
	if perSecond < 1 {
		perSecond = 1
	}
	return fmt.Sprintf("%s+%02d", FormatTime(float64(frame)/fps), frame%perSecond)
}

// ParseTimeToSeconds parses a time string in HH:MM:SS, MM:SS, or raw seconds format.
// Uses colon count: 2 colons = H:M:S, 1 colon = M:S, 0 colons = raw seconds.
func ParseTimeToSeconds(timeStr string) (float64, error) {
	colons := strings.Count(timeStr, ":")

	switch colons {
	case 2:
		var hours, minutes, seconds int
		if n, err := fmt.Sscanf(timeStr, "%d:%d:%d", &hours, &minutes, &seconds); n == 3 && err == nil {
			return float64(hours*3600 + minutes*60 + seconds), nil
		}
	case 1:
		var minutes, seconds int
		if n, err := fmt.Sscanf(timeStr, "%d:%d", &minutes, &seconds); n == 2 && err == nil {
			return float64(minutes*60 + seconds), nil
		}
	case 0:
		var secs float64
		if n, err := fmt.Sscanf(timeStr, "%f", &secs); n == 1 && err == nil {
			return secs, nil
		}
	}

	return 0, fmt.Errorf("expected HH:MM:SS, MM:SS, or seconds, got '%s'", timeStr)
}
