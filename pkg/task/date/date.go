package date

import "time"

type Kind int

const (
	Absolute Kind = iota
	OnceAYear
	DayOfTheMonth
	Weekday
	DayOffset
)

// Expr is a parsed due date expression. Relative kinds only become a point
// in time once resolved against the current time.
type Expr struct {
	Kind Kind

	// Absolute
	At      time.Time
	HasTime bool

	// OnceAYear and DayOfTheMonth
	Day   int
	Month time.Month

	Weekday time.Weekday
	Days    int
}

func NewAbsolute(t time.Time, hasTime bool) Expr {
	return Expr{Kind: Absolute, At: t, HasTime: hasTime}
}

func NewOnceAYear(day int, month time.Month) Expr {
	return Expr{Kind: OnceAYear, Day: day, Month: month}
}

func NewDayOfTheMonth(day int) Expr {
	return Expr{Kind: DayOfTheMonth, Day: day}
}

func NewWeekday(weekday time.Weekday) Expr {
	return Expr{Kind: Weekday, Weekday: weekday}
}

func NewDayOffset(days int) Expr {
	return Expr{Kind: DayOffset, Days: days}
}

// Date returns the calendar day e refers to, seen from now.
// Weekdays, days of the month and yearly dates always lie after today.
func (e Expr) Date(now time.Time) time.Time {
	today := StartOfDay(now)
	switch e.Kind {
	case Absolute:
		return e.At
	case OnceAYear:
		months := int(e.Month) - int(today.Month())
		days := e.Day - today.Day()
		years := 0
		if months < 0 || months == 0 && days <= 0 {
			years = 1
		}
		return today.AddDate(years, months, days)
	case DayOfTheMonth:
		months := 0
		days := e.Day - today.Day()
		if days <= 0 {
			months = 1
		}
		return today.AddDate(0, months, days)
	case Weekday:
		days := int(e.Weekday - today.Weekday())
		if days <= 0 {
			days += 7
		}
		return today.AddDate(0, 0, days)
	case DayOffset:
		return today.AddDate(0, 0, e.Days)
	default:
		panic("unknown date kind")
	}
}

// Resolve turns e into a due time: the end of the day it refers to, unless an
// explicit time of day was given.
func (e Expr) Resolve(now time.Time) time.Time {
	d := e.Date(now)
	if e.Kind == Absolute && e.HasTime {
		return d
	}
	return EndOfDay(d)
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay is the last second of t's day
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Second)
}

// Due parses s and resolves it against now
func Due(s string, now time.Time) (time.Time, error) {
	e, err := Parse(s, now.Location())
	if err != nil {
		return time.Time{}, err
	}
	return e.Resolve(now), nil
}
