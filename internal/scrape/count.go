package scrape

import (
	"math"
	"strconv"
	"strings"
)

// ParseAbbreviatedCount converts counters such as "5.1K" or "1,204" into an
// integer. The letter K is replaced by three digit places; any fraction
// digits fill those places first, so "5.1K" is 5100 and "12K" is 12000.
// Other suffixes are not understood: "1.2M" parses as 1. Unparsable input
// yields 0.
func ParseAbbreviatedCount(text string) int64 {
	s := strings.ReplaceAll(strings.TrimSpace(text), ",", "")

	var b strings.Builder
	for {
		i := strings.IndexByte(s, 'K')
		if i < 0 {
			b.WriteString(s)
			break
		}
		b.WriteString(expandThousands(s[:i]))
		s = s[i+1:]
	}
	return parseLeadingInt(b.String())
}

// ParseStrippedCount deletes every K, M and comma before parsing, so "5.1K"
// is 5 and "1,2M" is 12. It is the policy of the TikTok v2 proxy and is
// kept apart from ParseAbbreviatedCount on purpose.
func ParseStrippedCount(text string) int64 {
	s := strings.NewReplacer("K", "", "M", "", ",", "").Replace(text)
	return parseLeadingInt(s)
}

// expandThousands rewrites "5.1" as "5100" and "12" as "12000".
func expandThousands(num string) string {
	whole, frac, ok := strings.Cut(num, ".")
	if !ok {
		return num + "000"
	}
	if len(frac) > 3 {
		frac = frac[:3]
	}
	return whole + frac + strings.Repeat("0", 3-len(frac))
}

// parseLeadingInt reads an optional sign followed by decimal digits and
// ignores whatever follows them. No digits, or an out of range value, is 0.
func parseLeadingInt(s string) int64 {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// FloatCount truncates an already numeric counter. NaN and infinities are 0.
func FloatCount(f float64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int64(f)
}
