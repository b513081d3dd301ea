package helper

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// method to convert from seconds to minutes:seconds.milliseconds
func SecondsToMinutes(seconds float64) string {
	if seconds <= 0 {
		return "-"
	}
	minutes := int(seconds / 60)
	seconds = seconds - float64(minutes*60)
	milliseconds := int((seconds - float64(int(seconds))) * 1000)
	return fmt.Sprintf("%02d:%02d.%03d", minutes, int(seconds), milliseconds)
}

// SecondsToDiff formats a lap-time delta with an explicit sign, e.g.
// "+0.314s" or "-1.021s".
func SecondsToDiff(seconds float64) string {
	return fmt.Sprintf("%+.3fs", seconds)
}

// method to convert to seconds and 3 milliseconds
func ToSectorTime(t float64) string {
	if t <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.3f", t)
}

// ParseLapTime converts an upstream lap-time string to seconds. The results
// API uses "1:31.447"; sector columns come as "31.447"; race winner totals
// can be "1:33:56.736".
func ParseLapTime(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty lap time")
	}
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, errors.Errorf("bad lap time %q", s)
	}
	secs, err := strconv.ParseFloat(parts[len(parts)-1], 64)
	if err != nil {
		return 0, errors.Wrapf(err, "bad lap time %q", s)
	}
	total := secs
	scale := 60.0
	for i := len(parts) - 2; i >= 0; i-- {
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return 0, errors.Wrapf(err, "bad lap time %q", s)
		}
		total += float64(n) * scale
		scale *= 60
	}
	return total, nil
}

// GetDriverCodeName derives a three-letter code from a full driver name when
// the upstream does not provide one: first letter of the given name plus the
// first two letters of the family name, upper-cased.
func GetDriverCodeName(name string) string {
	if name == "" {
		return ""
	}
	words := strings.Fields(name)
	code := string(words[0][0])
	if len(words) > 1 {
		last := words[len(words)-1]
		if len(last) > 2 {
			code += last[:2]
		} else {
			code += last
		}
	} else {
		if len(words[0]) > 2 {
			code += words[0][1:3]
		} else {
			code += words[0]
		}
	}
	return strings.ToUpper(code)
}

// convert name to a hash with a limit of 15 characters
func ToID(name string) string {
	h := fnv.New32a()
	h.Write([]byte(name))
	return fmt.Sprint(h.Sum32())
}
