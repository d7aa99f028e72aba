package todo

import (
	"slices"
	"time"

	"halil/internal/date"
)

// FilterByCategory keeps the todos belonging to c. Categories other than
// today, this-week and later return todos unchanged.
func FilterByCategory(todos []Todo, c date.Category, now time.Time) []Todo {
	switch c {
	case date.Today, date.ThisWeek, date.Later:
	default:
		return todos
	}
	out := make([]Todo, 0, len(todos))
	for _, t := range todos {
		if c.Contains(t.DueDate, now) {
			out = append(out, t)
		}
	}
	return out
}

func FilterByFolder(todos []Todo, folderID ID) []Todo {
	out := make([]Todo, 0, len(todos))
	for _, t := range todos {
		if t.FolderID == folderID {
			out = append(out, t)
		}
	}
	return out
}

// SortTodos orders todos in place: incomplete first, then by due date
// (undated last), then newest first.
func SortTodos(todos []Todo) {
	slices.SortStableFunc(todos, compareTodos)
}

func compareTodos(a, b Todo) int {
	if a.Completed != b.Completed {
		if a.Completed {
			return 1
		}
		return -1
	}
	switch {
	case a.DueDate != nil && b.DueDate != nil:
		if c := a.DueDate.Compare(*b.DueDate); c != 0 {
			return c
		}
	case a.DueDate != nil:
		return -1
	case b.DueDate != nil:
		return 1
	}
	return b.CreatedAt.Compare(a.CreatedAt)
}

// Visible is the pipeline every view consumes. The later view skips the
// category filter because the month grid buckets the full range itself.
// The input slice is never reordered.
func Visible(todos []Todo, folderID ID, c date.Category, now time.Time) []Todo {
	out := slices.Clone(todos)
	if folderID != AllFolders {
		out = FilterByFolder(out, folderID)
	}
	if c != date.Later {
		out = FilterByCategory(out, c, now)
	}
	SortTodos(out)
	return out
}
