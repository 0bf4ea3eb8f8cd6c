package wpconfig

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ParseBool is total: "1", "true", "yes" and "on" (any case, surrounding
// whitespace ignored) are true, every other input is false.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func parseBoolStrict(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off", "":
		return false, true
	default:
		return false, false
	}
}

// ParseInt follows PHP's integer cast: the longest numeric prefix is used
// and the rest ignored, so "6379" is 6379, "12abc" is 12, "1e3" is 1000,
// "2.7" is 2 and "abc" is 0. Out-of-range values saturate.
func ParseInt(s string) int {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	intStart := i
	i = skipDigits(s, i)
	hasInt := i > intStart

	float := false
	if i < len(s) && s[i] == '.' {
		if j := skipDigits(s, i+1); hasInt || j > i+1 {
			float, i = true, j
		}
	}
	if !hasInt && !float {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if k := skipDigits(s, j); k > j {
			float, i = true, k
		}
	}

	num := s[:i]
	if !float {
		n, err := strconv.Atoi(num)
		if err != nil {
			if num[0] == '-' {
				return math.MinInt
			}
			return math.MaxInt
		}
		return n
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	switch {
	case f >= float64(math.MaxInt):
		return math.MaxInt
	case f <= float64(math.MinInt):
		return math.MinInt
	default:
		return int(f)
	}
}

func skipDigits(s string, i int) int {
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}

func parseIntStrict(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}
