package date

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Category is the date bucket a todo falls into relative to "now".
type Category string

const (
	Today    Category = "today"
	ThisWeek Category = "this-week"
	Later    Category = "later"
	// Past is anything before the current week's Monday.
	Past Category = "past"
)

var ErrUnknownCategory = errors.New("unknown category")

// Categories lists the selectable view categories in tab order.
var Categories = []Category{Today, ThisWeek, Later}

func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today", "tod":
		return Today, nil
	case "this-week", "week", "thisweek":
		return ThisWeek, nil
	case "later":
		return Later, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Label is the tab label shown for a category.
func (c Category) Label() string {
	switch c {
	case Today:
		return "오늘"
	case ThisWeek:
		return "이번주"
	case Later:
		return "나중에"
	case Past:
		return "지난 일"
	}
	return string(c)
}

// StartOfWeek returns the Monday of the week containing d.
func StartOfWeek(d Date) Date {
	wd := int(d.Weekday())
	if wd == 0 {
		return d.AddDays(-6)
	}
	return d.AddDays(-(wd - 1))
}

// EndOfWeek returns the Sunday of the week containing d.
func EndOfWeek(d Date) Date {
	return StartOfWeek(d).AddDays(6)
}

// Classify buckets a due date relative to now. A nil date is always Later.
func Classify(d *Date, now time.Time) Category {
	if d == nil {
		return Later
	}
	today := Of(now)
	switch {
	case d.Equal(today):
		return Today
	case d.After(EndOfWeek(today)):
		return Later
	case d.Before(StartOfWeek(today)):
		return Past
	}
	return ThisWeek
}

func IsToday(d *Date, now time.Time) bool {
	return d != nil && d.Equal(Of(now))
}

// IsThisWeek reports whether d falls inside the Monday-Sunday window
// containing now. Today is part of this week.
func IsThisWeek(d *Date, now time.Time) bool {
	if d == nil {
		return false
	}
	today := Of(now)
	return !d.Before(StartOfWeek(today)) && !d.After(EndOfWeek(today))
}

func IsLater(d *Date, now time.Time) bool {
	return d == nil || d.After(EndOfWeek(Of(now)))
}

// Contains reports whether d belongs in the view for category c.
// Unknown categories contain everything.
func (c Category) Contains(d *Date, now time.Time) bool {
	switch c {
	case Today:
		return IsToday(d, now)
	case ThisWeek:
		return IsThisWeek(d, now)
	case Later:
		return IsLater(d, now)
	}
	return true
}

var (
	weekdayNames = [...]string{"일요일", "월요일", "화요일", "수요일", "목요일", "금요일", "토요일"}
	dayLetters   = [...]string{"일", "월", "화", "수", "목", "금", "토"}
)

// FormatDisplay renders d as "M월 D일".
func FormatDisplay(d Date) string {
	return fmt.Sprintf("%d월 %d일", int(d.Month), d.Day)
}

func WeekdayName(d Date) string {
	return weekdayNames[d.Weekday()]
}

// ShortWeekday is the single-letter column header for w.
func ShortWeekday(w time.Weekday) string {
	return dayLetters[w]
}

func MonthName(m time.Month) string {
	return fmt.Sprintf("%d월", int(m))
}
