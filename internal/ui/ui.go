package ui

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"halil/internal/config"
	"halil/internal/date"
	"halil/internal/todo"
)

type mode int

const (
	modeList mode = iota
	modeForm
	modeFolder
)

type pendingKind int

const (
	pendingTodo pendingKind = iota
	pendingFolder
)

// pending is a delete waiting for y/n.
type pending struct {
	kind   pendingKind
	id     todo.ID
	prompt string
}

// folderState backs the folder name prompt. editing is empty when adding.
type folderState struct {
	editing todo.ID
}

type Model struct {
	store *todo.Store
	cfg   config.Config
	log   zerolog.Logger

	mode    mode
	cursor  int
	month   todo.Month
	width   int
	status  string
	input   textinput.Model
	form    *formState
	folder  *folderState
	confirm *pending
}

func New(store *todo.Store, cfg config.Config, log zerolog.Logger) Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40

	return Model{
		store:  store,
		cfg:    cfg,
		log:    log,
		mode:   modeList,
		month:  todo.MonthOf(store.Now()),
		input:  ti,
		status: fmt.Sprintf("'%s' 할일 추가, '%s' 완료 전환, '%s' 삭제", cfg.Keys.Add, keyName(cfg.Keys.Toggle), cfg.Keys.Delete),
	}
}

// Run starts the TUI and flushes the store once it exits.
func Run(store *todo.Store, cfg config.Config, log zerolog.Logger) error {
	program := tea.NewProgram(New(store, cfg, log), tea.WithAltScreen())
	_, err := program.Run()
	store.Flush()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.confirm != nil {
			return m.updateConfirm(msg.String())
		}
		switch m.mode {
		case modeForm:
			return m.updateForm(msg)
		case modeFolder:
			return m.updateFolder(msg)
		}
		return m.updateList(msg.String())
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-20, 20)
	}
	return m, nil
}

// items are the todos the cursor walks, in display order for the
// current view.
func (m Model) items() []todo.Todo {
	visible := m.store.Visible()
	switch m.store.SelectedCategory() {
	case date.ThisWeek:
		buckets := todo.BucketByDay(visible)
		var out []todo.Todo
		for _, d := range todo.WeekDays(m.store.Now()) {
			out = append(out, buckets[d]...)
		}
		return out
	case date.Later:
		buckets := todo.BucketByDay(visible)
		var out []todo.Todo
		for _, c := range todo.MonthGrid(m.month) {
			if c.Blank {
				continue
			}
			shown, _ := todo.Truncate(buckets[c.Day], todo.MaxPerDay)
			out = append(out, shown...)
		}
		return append(out, todo.Unscheduled(visible)...)
	}
	return visible
}

func (m Model) selected() (todo.Todo, bool) {
	items := m.items()
	if len(items) == 0 {
		return todo.Todo{}, false
	}
	return items[clampCursor(m.cursor, len(items))], true
}

func (m Model) updateList(key string) (tea.Model, tea.Cmd) {
	k := m.cfg.Keys
	later := m.store.SelectedCategory() == date.Later
	if key == "space" {
		key = " "
	}
	switch key {
	case k.Quit:
		return m, tea.Quit
	case k.Down, "down":
		m.cursor = clampCursor(m.cursor+1, len(m.items()))
	case k.Up, "up":
		m.cursor = clampCursor(m.cursor-1, len(m.items()))
	case k.Today:
		m.setCategory(date.Today)
	case k.Week:
		m.setCategory(date.ThisWeek)
	case k.Later:
		m.setCategory(date.Later)
	case "tab":
		i := slices.Index(date.Categories, m.store.SelectedCategory())
		m.setCategory(date.Categories[wrapIndex(i+1, len(date.Categories))])
	case k.NextFolder:
		m.cycleFolder(1)
	case k.PrevFolder:
		m.cycleFolder(-1)
	case k.Add:
		folder, ok := m.store.FolderByID(m.store.SelectedFolder())
		if !ok {
			folder, _ = m.store.FolderByID(todo.DefaultFolderID)
		}
		return m.startForm(newForm(m.store.Now(), folder), "새 할일")
	case k.Edit:
		t, ok := m.selected()
		if !ok {
			m.status = "수정할 할일이 없습니다"
			return m, nil
		}
		folder, _ := m.store.FolderByID(t.FolderID)
		return m.startForm(editForm(t, folder), "할일 수정")
	case k.Toggle:
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		if t, ok = m.store.ToggleTodo(t.ID); ok {
			m.status = fmt.Sprintf("%q %s", t.Title, doneLabel(t.Completed))
		}
		m.cursor = clampCursor(m.cursor, len(m.items()))
	case k.Delete:
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.ask(pending{kind: pendingTodo, id: t.ID, prompt: todo.DeleteTodoPrompt(t)})
	case k.AddFolder:
		return m.startFolder(&folderState{}, "")
	case k.RenameFolder:
		f, ok := m.store.FolderByID(m.store.SelectedFolder())
		if !ok {
			m.status = "이름을 바꿀 폴더를 먼저 선택하세요"
			return m, nil
		}
		return m.startFolder(&folderState{editing: f.ID}, f.Name)
	case k.DeleteFolder:
		f, ok := m.store.FolderByID(m.store.SelectedFolder())
		switch {
		case !ok:
			m.status = "삭제할 폴더를 먼저 선택하세요"
		case f.ID == todo.DefaultFolderID:
			m.status = errText.Render("기본 폴더는 삭제할 수 없습니다")
		default:
			m.ask(pending{kind: pendingFolder, id: f.ID, prompt: todo.DeleteFolderPrompt(f)})
		}
	case k.PrevMonth:
		if later {
			m.month = m.month.Prev()
			m.cursor = 0
		}
	case k.NextMonth:
		if later {
			m.month = m.month.Next()
			m.cursor = 0
		}
	case k.ThisMonth:
		if later {
			m.month = todo.MonthOf(m.store.Now())
			m.cursor = 0
		}
	}
	return m, nil
}

func (m *Model) setCategory(c date.Category) {
	m.store.SelectCategory(c)
	m.cursor = 0
	m.status = c.Label()
}

// cycleFolder steps through 전체 followed by each folder.
func (m *Model) cycleFolder(delta int) {
	ids := []todo.ID{todo.AllFolders}
	for _, f := range m.store.Folders() {
		ids = append(ids, f.ID)
	}
	i := slices.Index(ids, m.store.SelectedFolder())
	m.store.SelectFolder(ids[wrapIndex(i+delta, len(ids))])
	m.cursor = 0
}

func (m *Model) ask(p pending) {
	m.confirm = &p
	m.status = p.prompt + " (y/n)"
}

func (m Model) updateConfirm(key string) (tea.Model, tea.Cmd) {
	p := m.confirm
	switch key {
	case "y", "Y":
		m.confirm = nil
		switch p.kind {
		case pendingTodo:
			if m.store.DeleteTodo(p.id) {
				m.status = "삭제했습니다"
			} else {
				m.status = "이미 삭제된 할일입니다"
			}
		case pendingFolder:
			if err := m.store.DeleteFolder(p.id); err != nil {
				m.status = errText.Render(err.Error())
				m.log.Warn().Err(err).Str("folder_id", string(p.id)).Msg("failed to delete folder")
			} else {
				m.status = "폴더를 삭제했습니다"
			}
		}
		m.cursor = clampCursor(m.cursor, len(m.items()))
	case "n", "N", m.cfg.Keys.Cancel, "esc":
		m.confirm = nil
		m.status = "삭제를 취소했습니다"
	}
	return m, nil
}

func (m Model) startForm(f *formState, status string) (tea.Model, tea.Cmd) {
	m.form = f
	m.mode = modeForm
	m.input.SetValue(f.current())
	m.input.Placeholder = f.label()
	m.status = status + ": tab으로 이동, enter로 다음/저장, esc로 취소"
	cmd := m.input.Focus()
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case m.cfg.Keys.Cancel, "esc":
		return m.closeInput("취소했습니다"), nil
	case "tab", "down":
		m.form.set(m.input.Value())
		m.form.move(1)
		m.loadField()
		return m, nil
	case "shift+tab", "up":
		m.form.set(m.input.Value())
		m.form.move(-1)
		m.loadField()
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		m.form.set(m.input.Value())
		if !m.form.last() {
			m.form.move(1)
			m.loadField()
			return m, nil
		}
		return m.saveForm()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m *Model) loadField() {
	m.input.SetValue(m.form.current())
	m.input.Placeholder = m.form.label()
	m.input.CursorEnd()
}

func (m Model) saveForm() (tea.Model, tea.Cmd) {
	adding := m.form.editing == ""
	t, err := m.form.save(m.store)
	if err != nil {
		if fe, ok := asFormError(err); ok {
			m.form.index = fe.field
			m.loadField()
		}
		m.status = errText.Render(err.Error())
		return m, nil
	}
	m = m.closeInput("")
	if adding {
		m.status = fmt.Sprintf("%q 추가했습니다", t.Title)
	} else {
		m.status = fmt.Sprintf("%q 수정했습니다", t.Title)
	}
	if i := slices.IndexFunc(m.items(), func(x todo.Todo) bool { return x.ID == t.ID }); i >= 0 {
		m.cursor = i
	}
	return m, nil
}

func (m Model) startFolder(f *folderState, name string) (tea.Model, tea.Cmd) {
	m.folder = f
	m.mode = modeFolder
	m.input.SetValue(name)
	m.input.Placeholder = "폴더 이름"
	m.input.CursorEnd()
	m.status = "폴더 이름을 입력하고 enter"
	cmd := m.input.Focus()
	return m, cmd
}

func (m Model) updateFolder(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case m.cfg.Keys.Cancel, "esc":
		return m.closeInput("취소했습니다"), nil
	case m.cfg.Keys.Confirm, "enter":
		name := m.input.Value()
		var (
			f   todo.Folder
			err error
		)
		if m.folder.editing == "" {
			f, err = m.store.AddFolder(todo.FolderInput{Name: name})
		} else {
			f, err = m.store.UpdateFolder(m.folder.editing, todo.FolderPatch{Name: &name})
		}
		if errors.Is(err, todo.ErrEmptyName) {
			m.status = errText.Render("폴더 이름을 입력해주세요!")
			return m, nil
		}
		if err != nil {
			m.status = errText.Render(err.Error())
			return m, nil
		}
		m = m.closeInput(fmt.Sprintf("%q 폴더를 저장했습니다", f.Name))
		m.store.SelectFolder(f.ID)
		m.cursor = 0
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) closeInput(status string) Model {
	m.form = nil
	m.folder = nil
	m.mode = modeList
	m.input.SetValue("")
	m.input.Blur()
	m.status = status
	return m
}

func (m Model) View() string {
	var selectedID todo.ID
	if t, ok := m.selected(); ok && m.mode == modeList {
		selectedID = t.ID
	}
	now := m.store.Now()
	lookup := FolderLookup(m.store.FolderByID)

	side := RenderSidebar(m.store.Folders(), m.store.SelectedFolder(), m.store.CountByFolder, m.store.CountAll())
	mainWidth := m.width - lipgloss.Width(side) - 2

	var body string
	switch m.store.SelectedCategory() {
	case date.ThisWeek:
		body = RenderWeek(todo.WeekDays(now), m.store.Visible(), lookup, selectedID, date.Of(now), mainWidth)
	case date.Later:
		body = RenderMonth(m.month, m.store.Visible(), lookup, selectedID, date.Of(now), mainWidth)
	default:
		body = RenderList(m.store.Visible(), lookup, selectedID)
	}

	main := lipgloss.JoinVertical(lipgloss.Left,
		RenderDashboard(todo.Summarize(m.store.Todos(), now), now, lookup),
		RenderTabs(m.store.SelectedCategory()),
		"",
		body,
	)

	var b strings.Builder
	b.WriteString(appTitle.Render("할일"))
	b.WriteString(muted.Render(fmt.Sprintf("미완료 %d", m.store.CountAll())))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, side, main))
	b.WriteString("\n\n")

	switch m.mode {
	case modeForm:
		b.WriteString(panel.Render(m.form.render(m.input.View())))
		b.WriteString("\n")
	case modeFolder:
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(faded.Render(renderHelp(m.cfg.Keys, m.store.SelectedCategory())))
	return b.String()
}

func renderHelp(k config.Keymap, c date.Category) string {
	help := fmt.Sprintf("%s/%s 이동 • %s/%s/%s 보기 • %s/%s 폴더 • %s 추가 • %s 수정 • %s 완료 • %s 삭제 • %s/%s/%s 폴더 추가/이름/삭제 • %s 종료",
		k.Up, k.Down, k.Today, k.Week, k.Later, k.PrevFolder, k.NextFolder,
		k.Add, k.Edit, keyName(k.Toggle), k.Delete, k.AddFolder, k.RenameFolder, k.DeleteFolder, k.Quit)
	if c == date.Later {
		help += fmt.Sprintf(" • %s/%s 이전/다음 달 • %s 이번 달", k.PrevMonth, k.NextMonth, k.ThisMonth)
	}
	return help
}

func keyName(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

func doneLabel(done bool) string {
	if done {
		return "완료"
	}
	return "미완료로 변경"
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
