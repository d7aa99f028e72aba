package date

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var weekdayWords = map[string]time.Weekday{
	"sun": time.Sunday, "일": time.Sunday,
	"mon": time.Monday, "월": time.Monday,
	"tue": time.Tuesday, "화": time.Tuesday,
	"wed": time.Wednesday, "수": time.Wednesday,
	"thu": time.Thursday, "목": time.Thursday,
	"fri": time.Friday, "금": time.Friday,
	"sat": time.Saturday, "토": time.Saturday,
}

// ParseInput reads a due date typed by the user. Besides YYYY-MM-DD it
// understands today/tomorrow (오늘/내일), +N day offsets, M/D in the
// current year and weekday names, which mean the next such day (today
// included). An empty string means no date.
func ParseInput(s string, now time.Time) (*Date, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	today := Of(now)
	switch s {
	case "":
		return nil, nil
	case "today", "tod", "오늘":
		return Ptr(today), nil
	case "tomorrow", "tom", "내일":
		return Ptr(today.AddDays(1)), nil
	}

	if strings.HasPrefix(s, "+") {
		n, err := strconv.Atoi(strings.TrimSuffix(s[1:], "d"))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrParsing, s)
		}
		return Ptr(today.AddDays(n)), nil
	}

	if w, ok := parseWeekday(s); ok {
		days := int(w - today.Weekday())
		if days < 0 {
			days += 7
		}
		return Ptr(today.AddDays(days)), nil
	}

	if d, err := Parse(s); err == nil {
		return &d, nil
	}
	if t, err := time.Parse("1/2", s); err == nil {
		d := New(today.Year, t.Month(), t.Day())
		return &d, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrParsing, s)
}

func parseWeekday(s string) (time.Weekday, bool) {
	s = strings.TrimSuffix(s, "요일")
	if w, ok := weekdayWords[s]; ok {
		return w, true
	}
	for i := time.Sunday; i <= time.Saturday; i++ {
		if s == strings.ToLower(i.String()) {
			return i, true
		}
	}
	return 0, false
}

// ValidTime reports whether s is empty or a HH:MM time of day.
func ValidTime(s string) bool {
	if s == "" {
		return true
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}
