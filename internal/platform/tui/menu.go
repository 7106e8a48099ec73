package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// MenuChoice is what the player picked on the main menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceLevels
	ChoiceScores
	ChoiceQuit
)

type menuItem struct {
	title  string
	desc   string
	choice MenuChoice
}

// MenuModel is the main menu.
type MenuModel struct {
	items     []menuItem
	cursor    int
	width     int
	height    int
	theme     Theme
	keyMapper *KeyMapper
	summary   string
	choice    MenuChoice
}

// NewMenuModel creates the main menu. summary is a one-line progress
// report shown under the title.
func NewMenuModel(theme Theme, summary string, width, height int) MenuModel {
	return MenuModel{
		items: []menuItem{
			{"Play", "Continue from the first level short of three stars", ChoicePlay},
			{"Levels", "Pick any level", ChoiceLevels},
			{"High Scores", "Best runs per level", ChoiceScores},
			{"Quit", "", ChoiceQuit},
		},
		width:     width,
		height:    height,
		theme:     theme,
		keyMapper: NewKeyMapper(),
		summary:   summary,
	}
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (MenuModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			m.choice = ChoiceScores
			return m, nil
		case "l":
			m.choice = ChoiceLevels
			return m, nil
		}
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit, MenuActionBack:
			m.choice = ChoiceQuit
		case MenuActionUp:
			if m.cursor > 0 {
				m.cursor--
			}
		case MenuActionDown:
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case MenuActionSelect:
			m.choice = m.items[m.cursor].choice
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("T I L E C H A I N"), m.width))
	b.WriteString("\n\n")
	if m.summary != "" {
		b.WriteString(centerText(m.theme.MenuStars.Render(m.summary), m.width))
		b.WriteString("\n\n")
	}

	for i, item := range m.items {
		cursor := "  "
		style := m.theme.MenuItemNormal
		if i == m.cursor {
			cursor = "> "
			style = m.theme.MenuItemActive
		}
		b.WriteString(centerText(style.Render(fmt.Sprintf("%s%-12s", cursor, item.title)), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if desc := m.items[m.cursor].desc; desc != "" {
		b.WriteString(centerText(m.theme.MenuDescription.Render(desc), m.width))
	}
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.Controls.Render("Up/Down: Navigate  |  Enter: Select  |  L: Levels  |  Tab: Scores  |  Q: Quit"), m.width))
	b.WriteString("\n")
	return b.String()
}

// Choice returns the pick, or ChoiceNone while the menu is open.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// centerText centers text within width, measuring styled text by its
// printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
