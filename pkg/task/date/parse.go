package date

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

var (
	ErrEmpty   = errors.New("empty date")
	ErrParsing = errors.New("no date format matches")
)

// Parse reads a due date as typed by a person: "today", "tomorrow", "fri",
// "in 2 weeks", "3 days ago", "21st", "1st jan", "20/04/2021",
// "2024-02-01 17:30" and similar. Case is ignored. Absolute dates are
// interpreted in loc.
func Parse(s string, loc *time.Location) (Expr, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Expr{}, ErrEmpty
	}
	switch s {
	case "today", "tod", "now":
		return NewDayOffset(0), nil
	case "tomorrow", "tom":
		return NewDayOffset(1), nil
	case "yesterday", "yday":
		return NewDayOffset(-1), nil
	}
	if wkd, err := parseWeekday(s); err == nil {
		return wkd, nil
	}
	if offset, err := parseDayOffset(s); err == nil {
		return offset, nil
	}
	if abs, err := parseAbsolute(s, loc); err == nil {
		return abs, nil
	}
	if day, err := parseDayOfMonth(s); err == nil {
		return day, nil
	}
	return Expr{}, ErrParsing
}

var (
	dateFormats = []string{
		"_2/01/06",
		"_2/01/2006",
		"_2 Jan 2006",
		"_2 January 2006",
		"2006-01-02",
	}
	dateTimeFormats = []string{
		"2006-01-02 15:04",
		"2006-01-02t15:04",
		"_2/01/2006 15:04",
	}
)

func parseAbsolute(s string, loc *time.Location) (Expr, error) {
	for _, f := range dateTimeFormats {
		if t, err := time.ParseInLocation(f, s, loc); err == nil {
			return NewAbsolute(t, true), nil
		}
	}
	for _, f := range dateFormats {
		if t, err := time.ParseInLocation(f, s, loc); err == nil {
			return NewAbsolute(t, false), nil
		}
	}
	return Expr{}, errors.New("format not found")
}

type multiplier struct {
	key   string
	value int
}

var multipliers = []multiplier{
	{"days", 1},
	{"weeks", 7},
	{"months", 30},
	{"years", 365},
}

// parseDayOffset reads "3", "+3", "-3", "in 3 days", "2w", "1 month ago"
func parseDayOffset(s string) (Expr, error) {
	s = strings.TrimPrefix(s, "in")
	s = strings.TrimSpace(s)
	var (
		n        int
		negative bool
	)
	if len(s) >= 1 {
		if s[0] == '-' {
			negative = true
			s = s[1:]
		} else if s[0] == '+' {
			s = s[1:]
		}
	}
	{
		rest, n1, err := parseInt(s)
		if err != nil {
			return Expr{}, err
		}
		n = n1
		s = strings.TrimSpace(rest)
	}

	multiplier := 1
	if len(s) > 0 {
		multiplier = 0
		endOfWord := strings.IndexByte(s, ' ')
		if endOfWord < 0 {
			endOfWord = len(s)
		}
		for _, m := range multipliers {
			end := min(len(m.key), endOfWord)
			if m.key[:end] == s[:end] {
				multiplier = m.value
				s = s[endOfWord:]
				break
			}
		}
		if multiplier == 0 {
			return Expr{}, errors.New("invalid suffix, expected 'days', 'months', 'weeks', or 'years'")
		}
		switch strings.TrimSpace(s) {
		case "":
		case "ago":
			negative = true
		default:
			return Expr{}, errors.New("unexpected text after offset")
		}
	}

	if negative {
		n *= -1
	}
	return NewDayOffset(n * multiplier), nil
}

func parseWeekday(s string) (Expr, error) {
	for i := time.Sunday; i <= time.Saturday; i++ {
		name := strings.ToLower(i.String())
		if s == name || s == name[:3] {
			return NewWeekday(i), nil
		}
	}
	return Expr{}, errors.New("invalid weekday")
}

// parseDayOfMonth reads ordinals like "21st", optionally followed by a month
// name ("1st jan") which makes it a yearly date
func parseDayOfMonth(s string) (Expr, error) {
	s, n, err := parseInt(s)
	if err != nil {
		return Expr{}, err
	}
	if len(s) < 2 {
		return Expr{}, errors.New("missing postfix")
	}
	postfix, rest := s[:2], strings.TrimSpace(s[2:])

	lastDigit := n % 10
	forceTh := (n%100 - lastDigit) == 10
	var valid bool
	switch {
	case n < 1 || n > 31:
	case lastDigit == 1 && !forceTh:
		valid = postfix == "st"
	case lastDigit == 2 && !forceTh:
		valid = postfix == "nd"
	case lastDigit == 3 && !forceTh:
		valid = postfix == "rd"
	default:
		valid = postfix == "th"
	}
	if !valid {
		return Expr{}, errors.New("invalid postfix")
	}
	if rest == "" {
		return NewDayOfTheMonth(n), nil
	}
	month, err := parseMonth(rest)
	if err != nil {
		return Expr{}, err
	}
	return NewOnceAYear(n, month), nil
}

func parseMonth(s string) (time.Month, error) {
	for m := time.January; m <= time.December; m++ {
		name := strings.ToLower(m.String())
		if s == name || s == name[:3] {
			return m, nil
		}
	}
	return 0, errors.New("invalid month")
}

// parseInt reads the leading digits of s
func parseInt(s string) (string, int, error) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return s, 0, errors.New("failed to parse")
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return s, 0, err
	}
	return s[i:], n, nil
}
