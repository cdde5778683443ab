package youtube

import (
	"fmt"
	"regexp"
	"strconv"
)

var isoDuration = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// FormatDuration converts an ISO-8601 duration like PT1H2M3S into H:MM:SS.
// Values that do not parse become "0:00", matching what the table shows for
// broken upstream data.
func FormatDuration(iso string) string {
	m := isoDuration.FindStringSubmatch(iso)
	if m == nil {
		return "0:00"
	}
	days := atoi(m[1])
	hours := days*24 + atoi(m[2])
	mins := atoi(m[3])
	secs := atoi(m[4])
	return fmt.Sprintf("%d:%02d:%02d", hours, mins, secs)
}

func atoi(s string) int {
	if s == "" {
		return 0
	}
	n, _ := strconv.Atoi(s)
	return n
}
