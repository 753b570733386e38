// Package stats implements the year-range grammar and the level/growth
// statistics used by the scoring layer.
package stats

import (
	"fmt"
	"regexp"
	"strconv"
)

// YearRange is an inclusive window over fiscal years. After Normalize,
// Start >= End; the window covers [End, Start].
type YearRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// ParseError reports a malformed range expression. It is a user-input
// validation error and never corrupts stored data.
type ParseError struct {
	Expr   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid year range %q: %s", e.Expr, e.Reason)
}

var (
	recentPattern = regexp.MustCompile(`(?i)^\s*recent\s*[-–]\s*(\d{4})\s*$`)
	rangePattern  = regexp.MustCompile(`^\s*(\d{4})\s*[-–]\s*(\d{4})\s*$`)
)

// ParseYearRange parses "Recent - YYYY" (case-insensitive, hyphen or en-dash)
// or "YYYY-YYYY". "Recent" resolves to the maximum available year. The parser
// does not order the pair; callers normalize before use.
func ParseYearRange(expr string, availableYears []int) (YearRange, error) {
	if len(availableYears) == 0 {
		return YearRange{}, &ParseError{Expr: expr, Reason: "no years available"}
	}

	if m := recentPattern.FindStringSubmatch(expr); m != nil {
		end, _ := strconv.Atoi(m[1])
		start := availableYears[0]
		for _, y := range availableYears[1:] {
			if y > start {
				start = y
			}
		}
		return YearRange{Start: start, End: end}, nil
	}

	if m := rangePattern.FindStringSubmatch(expr); m != nil {
		start, _ := strconv.Atoi(m[1])
		end, _ := strconv.Atoi(m[2])
		return YearRange{Start: start, End: end}, nil
	}

	return YearRange{}, &ParseError{Expr: expr, Reason: `expected "Recent - YYYY" or "YYYY-YYYY"`}
}

// Normalize returns the range with Start >= End, swapping if reversed.
func (r YearRange) Normalize() YearRange {
	if r.Start < r.End {
		return YearRange{Start: r.End, End: r.Start}
	}
	return r
}

// Contains reports whether fiscal year y falls inside the inclusive window.
func (r YearRange) Contains(y int) bool {
	return y >= r.End && y <= r.Start
}
