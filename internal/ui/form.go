package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"halil/internal/date"
	"halil/internal/todo"
)

const (
	fieldTitle = iota
	fieldMemo
	fieldDue
	fieldTime
	fieldFolder
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"제목",
	"메모",
	"날짜 (YYYY-MM-DD, today, +3, fri)",
	"시간 (HH:MM)",
	"폴더",
}

// formState backs the add/edit todo form. editing is empty when adding.
type formState struct {
	editing todo.ID
	values  [fieldCount]string
	index   int
}

// formError points at the field that failed validation.
type formError struct {
	field int
	msg   string
}

func (e formError) Error() string { return e.msg }

func newForm(now time.Time, folder todo.Folder) *formState {
	f := &formState{}
	f.values[fieldDue] = date.Of(now).String()
	f.values[fieldFolder] = folder.Name
	return f
}

func editForm(t todo.Todo, folder todo.Folder) *formState {
	f := &formState{editing: t.ID}
	f.values[fieldTitle] = t.Title
	f.values[fieldMemo] = t.Memo
	if t.DueDate != nil {
		f.values[fieldDue] = t.DueDate.String()
	}
	f.values[fieldTime] = t.DueTime
	f.values[fieldFolder] = folder.Name
	return f
}

func (f *formState) label() string { return fieldLabels[f.index] }

func (f *formState) current() string { return f.values[f.index] }

func (f *formState) set(v string) { f.values[f.index] = v }

func (f *formState) move(delta int) {
	f.index = wrapIndex(f.index+delta, fieldCount)
}

func (f *formState) last() bool { return f.index == fieldCount-1 }

// input validates the form and builds the todo fields. A title and a due
// date are required; the folder may be given by name or id and defaults
// to the default folder.
func (f *formState) input(store *todo.Store) (todo.TodoInput, error) {
	var in todo.TodoInput
	in.Title = strings.TrimSpace(f.values[fieldTitle])
	if in.Title == "" {
		return in, formError{fieldTitle, "제목을 입력해주세요!"}
	}
	in.Memo = strings.TrimSpace(f.values[fieldMemo])

	raw := strings.TrimSpace(f.values[fieldDue])
	if raw == "" {
		return in, formError{fieldDue, "날짜를 선택해주세요!"}
	}
	due, err := date.ParseInput(raw, store.Now())
	if err != nil {
		return in, formError{fieldDue, fmt.Sprintf("날짜 형식이 올바르지 않습니다: %s", raw)}
	}
	in.DueDate = due

	in.DueTime = strings.TrimSpace(f.values[fieldTime])
	if !date.ValidTime(in.DueTime) {
		return in, formError{fieldTime, "시간은 HH:MM 형식이어야 합니다"}
	}

	in.FolderID = todo.DefaultFolderID
	if ref := strings.TrimSpace(f.values[fieldFolder]); ref != "" {
		folder, ok := store.FindFolder(ref)
		if !ok {
			return in, formError{fieldFolder, fmt.Sprintf("폴더를 찾을 수 없습니다: %s", ref)}
		}
		in.FolderID = folder.ID
	}
	return in, nil
}

// save adds or updates the todo behind the form.
func (f *formState) save(store *todo.Store) (todo.Todo, error) {
	in, err := f.input(store)
	if err != nil {
		return todo.Todo{}, err
	}
	if f.editing == "" {
		return store.AddTodo(in)
	}
	return store.UpdateTodo(f.editing, in.Patch())
}

func (f *formState) render(input string) string {
	var b strings.Builder
	for i, name := range fieldLabels {
		prefix := "  "
		val := f.values[i]
		if i == f.index {
			prefix = "> "
			val = input
		} else if strings.TrimSpace(val) == "" {
			val = faded.Render("(비어 있음)")
		}
		b.WriteString(fmt.Sprintf("%s%s\n    %s\n", prefix, muted.Render(name), val))
	}
	return b.String()
}

func asFormError(err error) (formError, bool) {
	var fe formError
	ok := errors.As(err, &fe)
	return fe, ok
}
