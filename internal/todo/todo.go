package todo

import (
	"time"

	"halil/internal/date"
)

type ID string

const (
	// AllFolders is the pseudo-folder selecting every todo.
	AllFolders ID = "all"
	// DefaultFolderID receives todos whose folder was deleted.
	DefaultFolderID ID = "personal"
)

type Todo struct {
	ID        ID         `json:"id"`
	Title     string     `json:"title"`
	Memo      string     `json:"memo"`
	DueDate   *date.Date `json:"dueDate"`
	DueTime   string     `json:"dueTime"`
	FolderID  ID         `json:"folderId"`
	Completed bool       `json:"completed"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Category classifies the todo's due date relative to now.
func (t Todo) Category(now time.Time) date.Category {
	return date.Classify(t.DueDate, now)
}

type Folder struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// TodoInput carries the user-supplied fields of a new todo.
type TodoInput struct {
	Title    string
	Memo     string
	DueDate  *date.Date
	DueTime  string
	FolderID ID
}

// TodoPatch holds the fields to overwrite; nil fields are left alone.
// ClearDue removes the due date and takes precedence over DueDate.
type TodoPatch struct {
	Title     *string
	Memo      *string
	DueDate   *date.Date
	ClearDue  bool
	DueTime   *string
	FolderID  *ID
	Completed *bool
}

// Patch builds a TodoPatch that overwrites every editable field with in.
func (in TodoInput) Patch() TodoPatch {
	p := TodoPatch{
		Title:    &in.Title,
		Memo:     &in.Memo,
		DueTime:  &in.DueTime,
		FolderID: &in.FolderID,
	}
	if in.DueDate == nil {
		p.ClearDue = true
	} else {
		p.DueDate = in.DueDate
	}
	return p
}

type FolderInput struct {
	Name  string
	Color string
}

type FolderPatch struct {
	Name  *string
	Color *string
}

// Palette is the fixed set of pastel folder colors.
var Palette = []string{
	"#FFE5E5", "#E5F3FF", "#FFF5E5", "#E5FFE5",
	"#F5E5FF", "#FFE5F5", "#E5FFFF", "#FFFDE5",
}

// SeedFolders returns the folders created on first run.
func SeedFolders() []Folder {
	return []Folder{
		{ID: "school", Name: "학교", Color: "#FFE5E5"},
		{ID: DefaultFolderID, Name: "개인", Color: "#E5F3FF"},
		{ID: "work", Name: "알바", Color: "#FFF5E5"},
	}
}
