// Package datemath evaluates Lucene date-math expressions ("now-1d/d",
// "2024-01-01||+1M/d") into concrete instants, and a Visitor that applies
// the evaluator to the Min/Max bounds of every RangeNode in an AST.
package datemath

import (
	"strconv"
	"strings"
	"time"
)

// outputLayout matches spec.md's worked example
// ("2024-06-08T00:00:00.000+00:00"): milliseconds, always-signed numeric
// offset (never the "Z" shorthand, even at +00:00).
const outputLayout = "2006-01-02T15:04:05.000-07:00"

var dateLiteralLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006-01",
	"2006",
}

// Bound selects rounding direction: Lower truncates to the start of a
// unit, Upper rounds to the last instant still inside it.
type Bound int

const (
	Lower Bound = iota
	Upper
)

// Eval evaluates expr against base (the value substituted for "now") and
// returns the resulting instant. ok is false when expr isn't valid
// date-math syntax; the caller is expected to leave the original string
// untouched in that case, per spec.md §4.7.
func Eval(expr string, base time.Time, bound Bound) (time.Time, bool) {
	anchor, rest, ok := splitAnchor(expr)
	if !ok {
		return time.Time{}, false
	}

	t, ok := resolveAnchor(anchor, base)
	if !ok {
		return time.Time{}, false
	}

	ops, ok := parseOperations(rest)
	if !ok {
		return time.Time{}, false
	}

	for _, op := range ops {
		switch op.kind {
		case opAdd:
			t = addUnit(t, op.unit, op.amount)
		case opRound:
			t = roundUnit(t, op.unit, bound)
		}
	}

	return t, true
}

// IsCandidate applies spec.md §4.7's fast heuristic for whether a string
// is worth attempting to evaluate as date-math at all: starts with
// "now", contains "||", or starts with ≥4 digits followed by an operator
// and a unit letter.
func IsCandidate(s string) bool {
	if strings.HasPrefix(s, "now") {
		return true
	}
	if strings.Contains(s, "||") {
		return true
	}
	return leadingDigitOperatorUnit(s)
}

func leadingDigitOperatorUnit(s string) bool {
	digits := 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		digits++
	}
	if digits < 4 {
		return false
	}
	rest := s[digits:]
	if rest == "" || !isUnitByte(rest[len(rest)-1]) {
		return false
	}
	switch rest[0] {
	case '+', '-', '/':
		return true
	default:
		return false
	}
}

func isUnitByte(b byte) bool {
	switch b {
	case 'y', 'M', 'w', 'd', 'h', 'H', 'm', 's':
		return true
	default:
		return false
	}
}

// splitAnchor separates the leading "now" or "<date-literal>||" anchor
// from the trailing operations string.
func splitAnchor(expr string) (anchor, rest string, ok bool) {
	if strings.HasPrefix(expr, "now") {
		return "now", expr[len("now"):], true
	}
	idx := strings.Index(expr, "||")
	if idx < 0 {
		return "", "", false
	}
	return expr[:idx], expr[idx+2:], true
}

func resolveAnchor(anchor string, base time.Time) (time.Time, bool) {
	if anchor == "now" {
		return base, true
	}
	for _, layout := range dateLiteralLayouts {
		if t, err := time.Parse(layout, anchor); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

type opKind int

const (
	opAdd opKind = iota
	opRound
)

type operation struct {
	kind   opKind
	amount int
	unit   byte
}

// parseOperations parses a run of ('+'|'-') <int>? unit | '/' unit terms.
func parseOperations(s string) ([]operation, bool) {
	var ops []operation
	for len(s) > 0 {
		switch s[0] {
		case '+', '-':
			sign := 1
			if s[0] == '-' {
				sign = -1
			}
			s = s[1:]
			digits := 0
			for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
				digits++
			}
			amount := 1
			if digits > 0 {
				n, err := strconv.Atoi(s[:digits])
				if err != nil {
					return nil, false
				}
				amount = n
				s = s[digits:]
			}
			if len(s) == 0 || !isUnitByte(s[0]) {
				return nil, false
			}
			ops = append(ops, operation{kind: opAdd, amount: sign * amount, unit: s[0]})
			s = s[1:]
		case '/':
			s = s[1:]
			if len(s) == 0 || !isUnitByte(s[0]) {
				return nil, false
			}
			ops = append(ops, operation{kind: opRound, unit: s[0]})
			s = s[1:]
		default:
			return nil, false
		}
	}
	return ops, true
}

func addUnit(t time.Time, unit byte, amount int) time.Time {
	switch unit {
	case 'y':
		return t.AddDate(amount, 0, 0)
	case 'M':
		return t.AddDate(0, amount, 0)
	case 'w':
		return t.AddDate(0, 0, 7*amount)
	case 'd':
		return t.AddDate(0, 0, amount)
	case 'h', 'H':
		return t.Add(time.Duration(amount) * time.Hour)
	case 'm':
		return t.Add(time.Duration(amount) * time.Minute)
	case 's':
		return t.Add(time.Duration(amount) * time.Second)
	default:
		return t
	}
}

// roundUnit truncates to the start (Lower) or the last instant still
// inside (Upper) the named unit, in t's own location.
func roundUnit(t time.Time, unit byte, bound Bound) time.Time {
	loc := t.Location()
	switch unit {
	case 'y':
		start := time.Date(t.Year(), 1, 1, 0, 0, 0, 0, loc)
		if bound == Lower {
			return start
		}
		return start.AddDate(1, 0, 0).Add(-time.Nanosecond)
	case 'M':
		start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
		if bound == Lower {
			return start
		}
		return start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	case 'w':
		start := startOfISOWeek(t)
		if bound == Lower {
			return start
		}
		return start.AddDate(0, 0, 7).Add(-time.Nanosecond)
	case 'd':
		start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		if bound == Lower {
			return start
		}
		return start.AddDate(0, 0, 1).Add(-time.Nanosecond)
	case 'h', 'H':
		start := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, loc)
		if bound == Lower {
			return start
		}
		return start.Add(time.Hour).Add(-time.Nanosecond)
	case 'm':
		start := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, loc)
		if bound == Lower {
			return start
		}
		return start.Add(time.Minute).Add(-time.Nanosecond)
	case 's':
		start := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc)
		if bound == Lower {
			return start
		}
		return start.Add(time.Second).Add(-time.Nanosecond)
	default:
		return t
	}
}

// startOfISOWeek returns midnight on the Monday of t's ISO week.
func startOfISOWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return d.AddDate(0, 0, -(weekday - 1))
}

// Format renders t in the fixed output layout spec.md's examples use.
func Format(t time.Time) string {
	return t.Format(outputLayout)
}
