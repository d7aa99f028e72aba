package todo

import (
	"math"
	"time"

	"halil/internal/date"
)

const (
	// MaxPerDay is how many todos a month cell shows before "+N".
	MaxPerDay = 3
	// DashboardPreview is how many of today's todos the dashboard lists.
	DashboardPreview = 5
)

// WeekDays returns Monday through Sunday of the week containing now.
func WeekDays(now time.Time) [7]date.Date {
	var days [7]date.Date
	start := date.StartOfWeek(date.Of(now))
	for i := range days {
		days[i] = start.AddDays(i)
	}
	return days
}

// BucketByDay groups dated todos by their due day, keeping input order.
func BucketByDay(todos []Todo) map[date.Date][]Todo {
	buckets := map[date.Date][]Todo{}
	for _, t := range todos {
		if t.DueDate == nil {
			continue
		}
		buckets[*t.DueDate] = append(buckets[*t.DueDate], t)
	}
	return buckets
}

func Unscheduled(todos []Todo) []Todo {
	var out []Todo
	for _, t := range todos {
		if t.DueDate == nil {
			out = append(out, t)
		}
	}
	return out
}

// Truncate returns at most n todos and how many were left out.
func Truncate(todos []Todo, n int) ([]Todo, int) {
	if len(todos) <= n {
		return todos, 0
	}
	return todos[:n], len(todos) - n
}

// Month identifies a calendar month shown by the month grid.
type Month struct {
	Year  int
	Month time.Month
}

func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

func (m Month) Next() Month { return m.add(1) }
func (m Month) Prev() Month { return m.add(-1) }

func (m Month) add(n int) Month {
	d := date.New(m.Year, m.Month+time.Month(n), 1)
	return Month{Year: d.Year, Month: d.Month}
}

func (m Month) String() string {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

// Cell is one slot of the month grid. Blank cells pad the first week.
type Cell struct {
	Blank bool
	Day   date.Date
}

// MonthGrid lays out m with Sunday-first columns: one blank cell per
// weekday before the 1st, then one cell per day.
func MonthGrid(m Month) []Cell {
	first := date.New(m.Year, m.Month, 1)
	n := date.DaysIn(m.Year, m.Month)
	offset := int(first.Weekday())
	cells := make([]Cell, 0, offset+n)
	for i := 0; i < offset; i++ {
		cells = append(cells, Cell{Blank: true})
	}
	for day := 1; day <= n; day++ {
		cells = append(cells, Cell{Day: date.New(m.Year, m.Month, day)})
	}
	return cells
}

// DaySummary backs the dashboard: today's todos and their completion.
type DaySummary struct {
	Todos     []Todo
	Completed int
	Total     int
	Rate      int
}

func Summarize(todos []Todo, now time.Time) DaySummary {
	var s DaySummary
	for _, t := range todos {
		if !date.IsToday(t.DueDate, now) {
			continue
		}
		s.Todos = append(s.Todos, t)
		if t.Completed {
			s.Completed++
		}
	}
	s.Total = len(s.Todos)
	if s.Total > 0 {
		s.Rate = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}
	return s
}
