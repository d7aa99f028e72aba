package todo

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"halil/internal/date"
)

var (
	ErrEmptyTitle      = errors.New("title must not be empty")
	ErrEmptyName       = errors.New("folder name must not be empty")
	ErrNotFound        = errors.New("not found")
	ErrProtectedFolder = errors.New("the default folder cannot be deleted")
)

// Persister loads and saves the two collections. Implementations are
// best-effort: failures are handled (logged) on their side. A load reports
// ok false when stored data exists but could not be read; the store then
// never writes that collection back.
type Persister interface {
	LoadTodos() (todos []Todo, ok bool)
	SaveTodos([]Todo)
	LoadFolders() (folders []Folder, ok bool)
	SaveFolders([]Folder)
	Clear()
}

// ConfirmFunc asks the user to approve a destructive action.
type ConfirmFunc func(prompt string) bool

// Store owns the in-memory todos and folders plus the current view
// selection. Every mutation goes through it and is written back to the
// persister once Load has completed.
type Store struct {
	todos   []Todo
	folders []Folder

	selectedFolder   ID
	selectedCategory date.Category
	loaded           bool

	// set when the stored collection was unreadable
	todosBroken   bool
	foldersBroken bool

	persist   Persister
	clock     func() time.Time
	pickColor func() string
	newID     func() string
	log       zerolog.Logger
}

type Option func(*Store)

func WithClock(clock func() time.Time) Option {
	return func(s *Store) { s.clock = clock }
}

// WithPalette replaces the random folder color picker.
func WithPalette(pick func() string) Option {
	return func(s *Store) { s.pickColor = pick }
}

func WithIDs(next func() string) Option {
	return func(s *Store) { s.newID = next }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithCategory sets the category selected before the user picks one.
func WithCategory(c date.Category) Option {
	return func(s *Store) { s.selectedCategory = c }
}

func NewStore(p Persister, opts ...Option) *Store {
	s := &Store{
		selectedFolder:   AllFolders,
		selectedCategory: date.Today,
		persist:          p,
		clock:            time.Now,
		pickColor:        randomColor,
		newID:            uuid.NewString,
		log:              zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func randomColor() string {
	return Palette[rand.Intn(len(Palette))]
}

// Load reads both collections from the persister. It also repairs the
// folder invariant: the default folder always exists and every todo points
// at a known folder. When either collection could not be read the repair
// is not written back, so the stored data stays as it was.
func (s *Store) Load() {
	var ok bool
	s.todos, ok = s.persist.LoadTodos()
	s.todosBroken = !ok
	s.folders, ok = s.persist.LoadFolders()
	s.foldersBroken = !ok
	if s.todosBroken || s.foldersBroken {
		s.log.Warn().
			Bool("todos", s.todosBroken).
			Bool("folders", s.foldersBroken).
			Msg("stored data unreadable, not overwriting it this session")
	}

	if _, ok := s.FolderByID(DefaultFolderID); !ok {
		for _, f := range SeedFolders() {
			if f.ID == DefaultFolderID {
				s.folders = append(s.folders, f)
			}
		}
		if !s.foldersBroken {
			s.persist.SaveFolders(s.folders)
		}
		s.log.Warn().Msg("default folder missing, re-seeded")
	}

	// With the real folder list unknown, a todo's folder cannot be judged.
	if !s.foldersBroken {
		repaired := 0
		for i, t := range s.todos {
			if _, ok := s.FolderByID(t.FolderID); !ok {
				s.todos[i].FolderID = DefaultFolderID
				repaired++
			}
		}
		if repaired > 0 {
			if !s.todosBroken {
				s.persist.SaveTodos(s.todos)
			}
			s.log.Warn().Int("count", repaired).Msg("reassigned todos with unknown folders")
		}
	}

	s.loaded = true
	s.log.Debug().
		Int("todos", len(s.todos)).
		Int("folders", len(s.folders)).
		Msg("loaded store")
}

// Flush writes both collections again. It is called on shutdown.
func (s *Store) Flush() {
	s.saveTodos()
	s.saveFolders()
}

// Reset wipes persisted data and starts over with the seed folders.
func (s *Store) Reset() {
	s.persist.Clear()
	s.todos = nil
	s.folders = nil
	s.selectedFolder = AllFolders
	s.loaded = false
	s.Load()
	s.log.Info().Msg("reset store")
}

func (s *Store) saveTodos() {
	if s.loaded && !s.todosBroken {
		s.persist.SaveTodos(s.todos)
	}
}

func (s *Store) saveFolders() {
	if s.loaded && !s.foldersBroken {
		s.persist.SaveFolders(s.folders)
	}
}

func (s *Store) Todos() []Todo {
	return slices.Clone(s.todos)
}

func (s *Store) Folders() []Folder {
	return slices.Clone(s.folders)
}

func (s *Store) Now() time.Time {
	return s.clock()
}

// === todos ===

func (s *Store) AddTodo(in TodoInput) (Todo, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Todo{}, ErrEmptyTitle
	}
	t := Todo{
		ID:        ID(s.newID()),
		Title:     title,
		Memo:      in.Memo,
		DueDate:   copyDate(in.DueDate),
		DueTime:   in.DueTime,
		FolderID:  s.resolveFolder(in.FolderID),
		CreatedAt: s.clock().UTC(),
	}
	s.todos = append(s.todos, t)
	s.saveTodos()
	s.log.Debug().Str("todo_id", string(t.ID)).Msg("added todo")
	return t, nil
}

// UpdateTodo merges p onto the todo with the given id. Unlike delete and
// toggle, a missing id is reported as ErrNotFound.
func (s *Store) UpdateTodo(id ID, p TodoPatch) (Todo, error) {
	i := s.todoIndex(id)
	if i < 0 {
		return Todo{}, fmt.Errorf("todo %s: %w", id, ErrNotFound)
	}
	t := s.todos[i]
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return Todo{}, ErrEmptyTitle
		}
		t.Title = title
	}
	if p.Memo != nil {
		t.Memo = *p.Memo
	}
	switch {
	case p.ClearDue:
		t.DueDate = nil
	case p.DueDate != nil:
		t.DueDate = copyDate(p.DueDate)
	}
	if p.DueTime != nil {
		t.DueTime = *p.DueTime
	}
	if p.FolderID != nil {
		t.FolderID = s.resolveFolder(*p.FolderID)
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	s.todos[i] = t
	s.saveTodos()
	s.log.Debug().Str("todo_id", string(id)).Msg("updated todo")
	return t, nil
}

// DeleteTodo removes the todo and reports whether it existed.
func (s *Store) DeleteTodo(id ID) bool {
	i := s.todoIndex(id)
	if i < 0 {
		return false
	}
	s.todos = slices.Delete(s.todos, i, i+1)
	s.saveTodos()
	s.log.Debug().Str("todo_id", string(id)).Msg("deleted todo")
	return true
}

// RemoveTodo deletes the todo after confirm approves it. A nil confirm
// never approves.
func (s *Store) RemoveTodo(id ID, confirm ConfirmFunc) bool {
	t, ok := s.TodoByID(id)
	if !ok || confirm == nil || !confirm(DeleteTodoPrompt(t)) {
		return false
	}
	return s.DeleteTodo(id)
}

func (s *Store) ToggleTodo(id ID) (Todo, bool) {
	i := s.todoIndex(id)
	if i < 0 {
		return Todo{}, false
	}
	s.todos[i].Completed = !s.todos[i].Completed
	s.saveTodos()
	return s.todos[i], true
}

func (s *Store) TodoByID(id ID) (Todo, bool) {
	i := s.todoIndex(id)
	if i < 0 {
		return Todo{}, false
	}
	return s.todos[i], true
}

// CountByFolder counts the incomplete todos in a folder.
func (s *Store) CountByFolder(folderID ID) int {
	n := 0
	for _, t := range s.todos {
		if t.FolderID == folderID && !t.Completed {
			n++
		}
	}
	return n
}

// CountAll sums CountByFolder over every folder.
func (s *Store) CountAll() int {
	n := 0
	for _, f := range s.folders {
		n += s.CountByFolder(f.ID)
	}
	return n
}

// === folders ===

func (s *Store) AddFolder(in FolderInput) (Folder, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Folder{}, ErrEmptyName
	}
	color := in.Color
	if color == "" {
		color = s.pickColor()
	}
	f := Folder{
		ID:    ID("folder-" + s.newID()),
		Name:  name,
		Color: color,
	}
	s.folders = append(s.folders, f)
	s.saveFolders()
	s.log.Debug().Str("folder_id", string(f.ID)).Msg("added folder")
	return f, nil
}

func (s *Store) UpdateFolder(id ID, p FolderPatch) (Folder, error) {
	i := s.folderIndex(id)
	if i < 0 {
		return Folder{}, fmt.Errorf("folder %s: %w", id, ErrNotFound)
	}
	f := s.folders[i]
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return Folder{}, ErrEmptyName
		}
		f.Name = name
	}
	if p.Color != nil && *p.Color != "" {
		f.Color = *p.Color
	}
	s.folders[i] = f
	s.saveFolders()
	return f, nil
}

// DeleteFolder moves the folder's todos to the default folder and then
// removes it. Unknown ids are ignored.
func (s *Store) DeleteFolder(id ID) error {
	if id == DefaultFolderID {
		return ErrProtectedFolder
	}
	i := s.folderIndex(id)
	if i < 0 {
		return nil
	}
	moved := 0
	for j := range s.todos {
		if s.todos[j].FolderID == id {
			s.todos[j].FolderID = DefaultFolderID
			moved++
		}
	}
	s.folders = slices.Delete(s.folders, i, i+1)
	if s.selectedFolder == id {
		s.selectedFolder = AllFolders
	}
	if moved > 0 {
		s.saveTodos()
	}
	s.saveFolders()
	s.log.Debug().
		Str("folder_id", string(id)).
		Int("moved", moved).
		Msg("deleted folder")
	return nil
}

// RemoveFolder deletes the folder after confirm approves it.
func (s *Store) RemoveFolder(id ID, confirm ConfirmFunc) (bool, error) {
	f, ok := s.FolderByID(id)
	if !ok {
		return false, nil
	}
	if id == DefaultFolderID {
		return false, ErrProtectedFolder
	}
	if confirm == nil || !confirm(DeleteFolderPrompt(f)) {
		return false, nil
	}
	return true, s.DeleteFolder(id)
}

func (s *Store) FolderByID(id ID) (Folder, bool) {
	i := s.folderIndex(id)
	if i < 0 {
		return Folder{}, false
	}
	return s.folders[i], true
}

// FindFolder looks a folder up by id, then by case-insensitive name.
func (s *Store) FindFolder(ref string) (Folder, bool) {
	ref = strings.TrimSpace(ref)
	if f, ok := s.FolderByID(ID(ref)); ok {
		return f, true
	}
	for _, f := range s.folders {
		if strings.EqualFold(f.Name, ref) {
			return f, true
		}
	}
	return Folder{}, false
}

// === selection ===

func (s *Store) SelectedFolder() ID {
	return s.selectedFolder
}

// SelectFolder changes the folder filter. Unknown folders are ignored.
func (s *Store) SelectFolder(id ID) {
	if id != AllFolders {
		if _, ok := s.FolderByID(id); !ok {
			return
		}
	}
	s.selectedFolder = id
}

func (s *Store) SelectedCategory() date.Category {
	return s.selectedCategory
}

func (s *Store) SelectCategory(c date.Category) {
	s.selectedCategory = c
}

// Visible runs the filter and sort pipeline over the current selection.
func (s *Store) Visible() []Todo {
	return Visible(s.todos, s.selectedFolder, s.selectedCategory, s.clock())
}

func DeleteTodoPrompt(t Todo) string {
	return fmt.Sprintf("이 할일을 삭제하시겠습니까? %q", t.Title)
}

func DeleteFolderPrompt(f Folder) string {
	return fmt.Sprintf("%q 폴더를 삭제하시겠습니까? 할일은 개인 폴더로 이동됩니다", f.Name)
}

func (s *Store) resolveFolder(id ID) ID {
	if id == "" || id == AllFolders {
		return DefaultFolderID
	}
	if _, ok := s.FolderByID(id); !ok {
		return DefaultFolderID
	}
	return id
}

func (s *Store) todoIndex(id ID) int {
	return slices.IndexFunc(s.todos, func(t Todo) bool { return t.ID == id })
}

func (s *Store) folderIndex(id ID) int {
	return slices.IndexFunc(s.folders, func(f Folder) bool { return f.ID == id })
}

func copyDate(d *date.Date) *date.Date {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}
