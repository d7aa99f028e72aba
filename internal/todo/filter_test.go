package todo

import (
	"testing"
	"time"

	"github.com/matryer/is"

	"halil/internal/date"
)

func ids(todos []Todo) []ID {
	out := make([]ID, len(todos))
	for i, t := range todos {
		out[i] = t.ID
	}
	return out
}

func TestSortTodos(t *testing.T) {
	t.Run("incomplete first, dated first, newest first", func(t *testing.T) {
		is := is.New(t)
		todos := []Todo{
			{ID: "B", Completed: true, DueDate: date.Ptr(date.New(2024, 1, 1))},
			{ID: "C", CreatedAt: time.Unix(100, 0)},
			{ID: "A", DueDate: date.Ptr(date.New(2024, 1, 10))},
			{ID: "D", CreatedAt: time.Unix(200, 0)},
		}
		SortTodos(todos)
		is.Equal(ids(todos), []ID{"A", "D", "C", "B"})
	})

	t.Run("same due date falls back to creation time", func(t *testing.T) {
		is := is.New(t)
		due := date.Ptr(date.New(2024, 1, 10))
		todos := []Todo{
			{ID: "old", DueDate: due, CreatedAt: time.Unix(1, 0)},
			{ID: "earlier", DueDate: date.Ptr(date.New(2024, 1, 9)), CreatedAt: time.Unix(0, 0)},
			{ID: "new", DueDate: due, CreatedAt: time.Unix(2, 0)},
		}
		SortTodos(todos)
		is.Equal(ids(todos), []ID{"earlier", "new", "old"})
	})

	t.Run("completed todos keep the same ordering rules", func(t *testing.T) {
		is := is.New(t)
		todos := []Todo{
			{ID: "undated", Completed: true},
			{ID: "dated", Completed: true, DueDate: date.Ptr(date.New(2024, 1, 1))},
		}
		SortTodos(todos)
		is.Equal(ids(todos), []ID{"dated", "undated"})
	})
}

func TestFilterByCategory(t *testing.T) {
	todos := []Todo{
		{ID: "today", DueDate: date.Ptr(date.Of(now))},
		{ID: "friday", DueDate: date.Ptr(date.New(2024, 1, 12))},
		{ID: "next-week", DueDate: date.Ptr(date.New(2024, 1, 15))},
		{ID: "last-week", DueDate: date.Ptr(date.New(2024, 1, 3))},
		{ID: "undated"},
	}
	tests := []struct {
		category date.Category
		want     []ID
	}{
		{date.Today, []ID{"today"}},
		{date.ThisWeek, []ID{"today", "friday"}},
		{date.Later, []ID{"next-week", "undated"}},
		{"anything", []ID{"today", "friday", "next-week", "last-week", "undated"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			is := is.New(t)
			is.Equal(ids(FilterByCategory(todos, tt.category, now)), tt.want)
		})
	}
}

func TestVisible(t *testing.T) {
	is := is.New(t)
	todos := []Todo{
		{ID: "work-later", FolderID: "work", DueDate: date.Ptr(date.New(2024, 2, 1))},
		{ID: "work-today", FolderID: "work", DueDate: date.Ptr(date.Of(now))},
		{ID: "school-today", FolderID: "school", DueDate: date.Ptr(date.Of(now)), CreatedAt: now},
		{ID: "last-week", FolderID: "school", DueDate: date.Ptr(date.New(2024, 1, 2))},
	}

	is.Equal(ids(Visible(todos, AllFolders, date.Today, now)), []ID{"school-today", "work-today"})
	is.Equal(ids(Visible(todos, "work", date.Today, now)), []ID{"work-today"})
	// the later view shows every date, past ones included
	is.Equal(ids(Visible(todos, "school", date.Later, now)), []ID{"last-week", "school-today"})
	is.Equal(todos[0].ID, ID("work-later")) // input order untouched
}
