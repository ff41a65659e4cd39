package encoding

import (
	"regexp"
	"strings"
	"time"
)

var timePattern = regexp.MustCompile(`time=(\d+):(\d{2}):(\d{2})(?:\.(\d+))?`)

// parseProgressTime extracts the encoded-so-far timestamp from an ffmpeg
// stats line. Returns false for lines without a time= field.
func parseProgressTime(line string) (time.Duration, bool) {
	match := timePattern.FindStringSubmatch(line)
	if match == nil {
		return 0, false
	}
	hours := parseUint(match[1])
	minutes := parseUint(match[2])
	seconds := parseUint(match[3])
	d := time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second
	return d, true
}

func parseUint(s string) int64 {
	var n int64
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int64(r-'0')
	}
	return n
}

// progressSampler rate-limits progress log lines so long encodes do not
// flood the log with per-frame stats updates.
type progressSampler struct {
	interval time.Duration
	last     time.Time
	now      func() time.Time
}

func newProgressSampler(interval time.Duration) *progressSampler {
	return &progressSampler{interval: interval, now: time.Now}
}

func (s *progressSampler) shouldLog() bool {
	now := s.now()
	if !s.last.IsZero() && now.Sub(s.last) < s.interval {
		return false
	}
	s.last = now
	return true
}

func isProgressLine(line string) bool {
	return strings.Contains(line, "time=") && strings.Contains(line, "size=")
}
