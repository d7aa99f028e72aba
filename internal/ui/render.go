package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"halil/internal/date"
	"halil/internal/todo"
)

// FolderLookup resolves a todo's folder for display, usually
// (*todo.Store).FolderByID.
type FolderLookup func(todo.ID) (todo.Folder, bool)

// TodoLine renders one todo as a list row.
func TodoLine(t todo.Todo, folders FolderLookup, selected bool) string {
	cursor := "  "
	box, st := checkbox, title
	if t.Completed {
		box, st = checkboxDone, titleDone
	}
	if selected {
		cursor = "> "
		st = st.Background(Faded)
	}
	line := cursor + box + " " + st.Render(t.Title)
	if t.DueDate != nil {
		when := date.FormatDisplay(*t.DueDate)
		if t.DueTime != "" {
			when += " " + t.DueTime
		}
		line += divider + due.Render(when)
	}
	if f, ok := folders(t.FolderID); ok {
		line += " " + folderTag(f.Name, f.Color)
	}
	return line
}

// RenderList is the daily view: one row per todo, memo underneath.
func RenderList(todos []todo.Todo, folders FolderLookup, selected todo.ID) string {
	if len(todos) == 0 {
		return faded.Render("  할일이 없습니다")
	}
	lines := make([]string, 0, len(todos))
	for _, t := range todos {
		lines = append(lines, TodoLine(t, folders, t.ID == selected))
		if t.Memo != "" {
			lines = append(lines, memo.Render(t.Memo))
		}
	}
	return strings.Join(lines, "\n")
}

func columnWidth(width int) int {
	if width <= 0 {
		return 16
	}
	return min(max(width/7, 10), 24)
}

// gridItem is the compact form of a todo used inside week and month cells.
func gridItem(t todo.Todo, folders FolderLookup, selected bool, width int) string {
	f, _ := folders(t.FolderID)
	mark := folderDot(f.Color)
	st := title.Bold(false)
	if t.Completed {
		mark, st = checkboxDone, titleDone
	}
	if selected {
		st = st.Background(Faded)
	}
	text := t.Title
	if t.DueTime != "" {
		text = t.DueTime + " " + text
	}
	return mark + " " + st.MaxWidth(max(width-3, 4)).Render(text)
}

// RenderWeek lays the seven days out as columns, Monday first.
func RenderWeek(days [7]date.Date, todos []todo.Todo, folders FolderLookup, selected todo.ID, today date.Date, width int) string {
	colW := columnWidth(width)
	buckets := todo.BucketByDay(todos)
	cols := make([]string, 0, len(days))
	for _, d := range days {
		header := dayHeader
		if d.Equal(today) {
			header = dayHeaderToday
		}
		lines := []string{
			header.Render(fmt.Sprintf("%s %d/%d", date.ShortWeekday(d.Weekday()), int(d.Month), d.Day)),
		}
		items := buckets[d]
		if len(items) == 0 {
			lines = append(lines, faded.Render("·"))
		}
		for _, t := range items {
			lines = append(lines, gridItem(t, folders, t.ID == selected, colW))
		}
		cols = append(cols, lipgloss.NewStyle().Width(colW).Render(strings.Join(lines, "\n")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

// RenderMonth draws the month grid with Sunday-first columns, at most
// todo.MaxPerDay items per day, followed by the undated todos.
func RenderMonth(m todo.Month, todos []todo.Todo, folders FolderLookup, selected todo.ID, today date.Date, width int) string {
	colW := columnWidth(width) - 2 // cell borders
	buckets := todo.BucketByDay(todos)

	headers := make([]string, 7)
	for i := range headers {
		headers[i] = lipgloss.NewStyle().Width(colW + 2).Align(lipgloss.Center).
			Render(dayHeader.Render(date.ShortWeekday(time.Weekday(i))))
	}
	rows := []string{
		appTitle.Render(fmt.Sprintf("%d년 %s", m.Year, date.MonthName(m.Month))),
		lipgloss.JoinHorizontal(lipgloss.Top, headers...),
	}

	var week []string
	flush := func() {
		for len(week) < 7 {
			week = append(week, cell.Width(colW).Height(todo.MaxPerDay+2).Render(""))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, week...))
		week = nil
	}
	for _, c := range todo.MonthGrid(m) {
		if c.Blank {
			week = append(week, cell.Width(colW).Height(todo.MaxPerDay+2).Render(""))
			continue
		}
		week = append(week, monthCell(c.Day, buckets[c.Day], folders, selected, today, colW))
		if len(week) == 7 {
			flush()
		}
	}
	if len(week) > 0 {
		flush()
	}

	if undated := todo.Unscheduled(todos); len(undated) > 0 {
		rows = append(rows, "", muted.Render("날짜 없음"), RenderList(undated, folders, selected))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func monthCell(d date.Date, todos []todo.Todo, folders FolderLookup, selected todo.ID, today date.Date, width int) string {
	style, header := cell, dayHeader
	if d.Equal(today) {
		style, header = cellToday, dayHeaderToday
	}
	lines := []string{header.Render(fmt.Sprint(d.Day))}
	shown, more := todo.Truncate(todos, todo.MaxPerDay)
	for _, t := range shown {
		lines = append(lines, gridItem(t, folders, t.ID == selected, width))
	}
	if more > 0 {
		lines = append(lines, muted.Render(fmt.Sprintf("+%d", more)))
	}
	return style.Width(width).Height(todo.MaxPerDay + 2).Render(strings.Join(lines, "\n"))
}

// RenderDashboard summarizes today's progress.
func RenderDashboard(s todo.DaySummary, now time.Time, folders FolderLookup) string {
	today := date.Of(now)
	lines := []string{
		title.Render(fmt.Sprintf("%s %s", date.FormatDisplay(today), date.WeekdayName(today))),
		muted.Render(ProgressBar(s.Rate, 20)) +
			muted.Render(fmt.Sprintf("  %d/%d 완료", s.Completed, s.Total)),
	}
	if s.Total == 0 {
		lines = append(lines, faded.Render("오늘 예정된 할일이 없습니다"))
		return panel.Render(strings.Join(lines, "\n"))
	}
	shown, more := todo.Truncate(s.Todos, todo.DashboardPreview)
	for _, t := range shown {
		lines = append(lines, TodoLine(t, folders, false))
	}
	if more > 0 {
		lines = append(lines, muted.Render(fmt.Sprintf("+%d개 더 있습니다", more)))
	}
	return panel.Render(strings.Join(lines, "\n"))
}

// RenderSidebar lists the folder filter with each folder's open count.
func RenderSidebar(folders []todo.Folder, selected todo.ID, count func(todo.ID) int, total int) string {
	name := lipgloss.NewStyle().Width(12)
	row := func(id todo.ID, label string, n int) string {
		cursor := "  "
		st := name
		if id == selected {
			cursor = "> "
			st = st.Inherit(sidebarActive)
		}
		return cursor + st.Render(label) + muted.Render(fmt.Sprintf("%3d", n))
	}
	lines := []string{muted.Render("폴더"), row(todo.AllFolders, "전체", total)}
	for _, f := range folders {
		lines = append(lines, row(f.ID, folderDot(f.Color)+" "+f.Name, count(f.ID)))
	}
	return sidebar.Render(strings.Join(lines, "\n"))
}

func RenderTabs(selected date.Category) string {
	tabs := make([]string, len(date.Categories))
	for i, c := range date.Categories {
		st := inactiveTab
		if c == selected {
			st = activeTab
		}
		tabs[i] = st.Render(fmt.Sprintf("%d %s", i+1, c.Label()))
	}
	return strings.Join(tabs, tabDivider)
}

// ProgressBar renders a bar for a completion rate in percent.
func ProgressBar(rate, width int) string {
	rate = min(max(rate, 0), 100)
	if width < 5 {
		width = 5
	}
	filled := rate * width / 100
	return fmt.Sprintf("%s%s %3d%%",
		strings.Repeat("█", filled),
		strings.Repeat("░", width-filled),
		rate)
}
