package transform

import (
	"strconv"
	"time"
)

// ParseCompactDate parses the upstream's 14-digit YYYYMMDDHHmmss timestamps.
// Wrong length, non-digit input, or out-of-range fields return nil; the
// function never fails louder than that because upstream dates are advisory.
func ParseCompactDate(s string) *time.Time {
	if len(s) != 14 {
		return nil
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return nil
		}
	}

	year, _ := strconv.Atoi(s[0:4])
	month, _ := strconv.Atoi(s[4:6])
	day, _ := strconv.Atoi(s[6:8])
	hour, _ := strconv.Atoi(s[8:10])
	minute, _ := strconv.Atoi(s[10:12])
	second, _ := strconv.Atoi(s[12:14])

	if month < 1 || month > 12 {
		return nil
	}
	if day < 1 || day > 31 {
		return nil
	}
	if hour > 23 || minute > 59 || second > 59 {
		return nil
	}

	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
	return &t
}
