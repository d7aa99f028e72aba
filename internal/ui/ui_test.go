package ui

import (
	"strconv"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"halil/internal/config"
	"halil/internal/date"
	"halil/internal/persist"
	"halil/internal/storage"
	"halil/internal/todo"
)

var now = time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)

func newTestModel() (Model, *todo.Store) {
	n := 0
	store := todo.NewStore(persist.New(storage.NewMemory(), zerolog.Nop()),
		todo.WithClock(func() time.Time { return now }),
		todo.WithIDs(func() string { n++; return strconv.Itoa(n) }),
		todo.WithPalette(func() string { return todo.Palette[0] }),
	)
	store.Load()
	return New(store, config.Default(), zerolog.Nop()), store
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func dueOn(d date.Date) *date.Date { return &d }

func TestModel_AddTodo(t *testing.T) {
	is := is.New(t)
	m, store := newTestModel()

	m = press(m, "a")
	is.Equal(m.mode, modeForm)
	is.Equal(m.form.values[fieldDue], "2024-01-10")
	is.Equal(m.form.values[fieldFolder], "개인")

	m = typeText(m, "장보기")
	m = press(m, "enter", "enter", "enter", "enter", "enter")
	is.Equal(m.mode, modeList)

	todos := store.Todos()
	is.Equal(len(todos), 1)
	is.Equal(todos[0].Title, "장보기")
	is.Equal(*todos[0].DueDate, date.New(2024, 1, 10))
	is.Equal(todos[0].FolderID, todo.DefaultFolderID)
	is.True(strings.Contains(m.View(), "장보기"))
}

func TestModel_AddTodoRequiresTitle(t *testing.T) {
	is := is.New(t)
	m, store := newTestModel()

	m = press(m, "a", "tab", "tab", "tab", "tab")
	is.Equal(m.form.index, fieldFolder)
	m = press(m, "enter")

	is.Equal(m.mode, modeForm)
	is.Equal(m.form.index, fieldTitle)
	is.True(strings.Contains(m.status, "제목을 입력해주세요!"))
	is.Equal(len(store.Todos()), 0)

	m = press(m, "esc")
	is.Equal(m.mode, modeList)
	is.True(m.form == nil)
}

func TestModel_EditTodo(t *testing.T) {
	is := is.New(t)
	m, store := newTestModel()
	added, err := store.AddTodo(todo.TodoInput{Title: "우유", DueDate: dueOn(date.Of(now)), FolderID: "work"})
	is.NoErr(err)

	m = press(m, "e")
	is.Equal(m.form.editing, added.ID)
	is.Equal(m.input.Value(), "우유")
	is.Equal(m.form.values[fieldFolder], "알바")

	m.input.SetValue("두유")
	m = press(m, "enter", "enter", "enter", "enter", "enter")
	is.Equal(m.mode, modeList)

	got, _ := store.TodoByID(added.ID)
	is.Equal(got.Title, "두유")
	is.Equal(got.FolderID, todo.ID("work"))
	is.Equal(len(store.Todos()), 1)
}

func TestModel_ToggleAndDelete(t *testing.T) {
	is := is.New(t)
	m, store := newTestModel()
	added, _ := store.AddTodo(todo.TodoInput{Title: "빨래", DueDate: dueOn(date.Of(now))})

	m = press(m, " ")
	got, _ := store.TodoByID(added.ID)
	is.True(got.Completed)

	m = press(m, "d")
	is.True(m.confirm != nil)
	is.True(strings.Contains(m.status, "빨래"))
	m = press(m, "n")
	is.True(m.confirm == nil)
	is.Equal(len(store.Todos()), 1)

	m = press(m, "d", "y")
	is.True(m.confirm == nil)
	is.Equal(len(store.Todos()), 0)
}

func TestModel_Folders(t *testing.T) {
	t.Run("add selects the new folder", func(t *testing.T) {
		is := is.New(t)
		m, store := newTestModel()

		m = press(m, "F")
		is.Equal(m.mode, modeFolder)
		m = typeText(m, "운동")
		m = press(m, "enter")

		is.Equal(m.mode, modeList)
		f, ok := store.FindFolder("운동")
		is.True(ok)
		is.Equal(f.Color, todo.Palette[0])
		is.Equal(store.SelectedFolder(), f.ID)
	})

	t.Run("default folder is protected", func(t *testing.T) {
		is := is.New(t)
		m, store := newTestModel()
		store.SelectFolder(todo.DefaultFolderID)

		m = press(m, "X")
		is.True(m.confirm == nil)
		is.True(strings.Contains(m.status, "기본 폴더"))
	})

	t.Run("delete after confirming", func(t *testing.T) {
		is := is.New(t)
		m, store := newTestModel()
		store.SelectFolder("work")

		m = press(m, "X", "y")
		_, ok := store.FolderByID("work")
		is.True(!ok)
		is.Equal(store.SelectedFolder(), todo.AllFolders)
	})

	t.Run("cycle wraps around", func(t *testing.T) {
		is := is.New(t)
		m, store := newTestModel()

		m = press(m, "]")
		is.Equal(store.SelectedFolder(), todo.ID("school"))
		m = press(m, "[")
		is.Equal(store.SelectedFolder(), todo.AllFolders)
		press(m, "[")
		is.Equal(store.SelectedFolder(), todo.ID("work"))
	})
}

func TestModel_Views(t *testing.T) {
	is := is.New(t)
	m, store := newTestModel()
	friday, _ := store.AddTodo(todo.TodoInput{Title: "금요일", DueDate: dueOn(date.New(2024, 1, 12))})
	monday, _ := store.AddTodo(todo.TodoInput{Title: "월요일", DueDate: dueOn(date.New(2024, 1, 8))})
	undated, _ := store.AddTodo(todo.TodoInput{Title: "언젠가"})

	m = press(m, "2")
	is.Equal(store.SelectedCategory(), date.ThisWeek)
	items := m.items()
	is.Equal(len(items), 2)
	is.Equal(items[0].ID, monday.ID) // monday column first
	is.Equal(items[1].ID, friday.ID)

	m = press(m, "3")
	is.Equal(store.SelectedCategory(), date.Later)
	items = m.items()
	is.Equal(items[len(items)-1].ID, undated.ID)
	is.True(strings.Contains(m.View(), "날짜 없음"))

	m = press(m, "l")
	is.Equal(m.month, todo.Month{Year: 2024, Month: time.February})
	m = press(m, "t", "h")
	is.Equal(m.month, todo.Month{Year: 2023, Month: time.December})

	m = press(m, "1", "h")
	is.Equal(store.SelectedCategory(), date.Today)
	is.Equal(m.month, todo.Month{Year: 2023, Month: time.December}) // month keys only act in the later view
}

func TestModel_Quit(t *testing.T) {
	is := is.New(t)
	m, _ := newTestModel()
	_, cmd := m.Update(keyMsg("q"))
	is.True(cmd != nil)
	_, ok := cmd().(tea.QuitMsg)
	is.True(ok)
}
