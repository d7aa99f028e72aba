package ui

import "github.com/charmbracelet/lipgloss"

const (
	Primary   = lipgloss.Color("#fff")
	Secondary = lipgloss.Color("#888")
	Faded     = lipgloss.Color("#555")
	Ink       = lipgloss.Color("#222")

	Blue   = lipgloss.Color("#4db7ff")
	Green  = lipgloss.Color("#00a352")
	Red    = lipgloss.Color("#c42912")
	Orange = lipgloss.Color("#c27510")
)

var (
	appTitle = lipgloss.NewStyle().Bold(true).Foreground(Primary).Padding(0, 1)
	muted    = lipgloss.NewStyle().Foreground(Secondary)
	faded    = lipgloss.NewStyle().Foreground(Faded)
	errText  = lipgloss.NewStyle().Foreground(Red)

	activeTab   = lipgloss.NewStyle().Foreground(Primary).Bold(true).Underline(true)
	inactiveTab = lipgloss.NewStyle().Foreground(Secondary)
	tabDivider  = faded.Render(" | ")

	checkbox     = lipgloss.NewStyle().Foreground(Secondary).Render("○")
	checkboxDone = lipgloss.NewStyle().Foreground(Green).Render("✓")

	title      = lipgloss.NewStyle().Bold(true)
	titleDone  = lipgloss.NewStyle().Foreground(Secondary).Strikethrough(true)
	cursorLine = lipgloss.NewStyle().Background(Faded)

	memo    = lipgloss.NewStyle().Foreground(Secondary).PaddingLeft(4)
	due     = lipgloss.NewStyle().Foreground(Orange)
	divider = faded.Render(" ∙ ")

	sidebar = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), false, true, false, false).
		BorderForeground(Faded).
		PaddingRight(1).
		MarginRight(1)
	sidebarActive = lipgloss.NewStyle().Foreground(Blue).Bold(true)

	panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Faded).
		Padding(0, 1)

	dayHeader      = lipgloss.NewStyle().Bold(true).Foreground(Secondary)
	dayHeaderToday = lipgloss.NewStyle().Bold(true).Foreground(Blue)
	cell           = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(Faded)
	cellToday = cell.BorderForeground(Blue)
)

// folderTag renders a folder name on its pastel color.
func folderTag(name, color string) string {
	if color == "" {
		color = "#ddd"
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(color)).
		Foreground(Ink).
		Padding(0, 1).
		Render(name)
}

// folderDot is a one-cell marker in the folder's color.
func folderDot(color string) string {
	if color == "" {
		color = "#ddd"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●")
}
