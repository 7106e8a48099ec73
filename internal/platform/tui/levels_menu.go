package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tilechain/internal/games/tilechain"
	"github.com/vovakirdan/tilechain/internal/games/tilechain/levels"
)

// LevelsModel is the level picker. Each row shows the level's best star
// rating.
type LevelsModel struct {
	entries      []levels.Level
	stars        map[string]int
	cursor       int
	scrollOffset int
	width        int
	height       int
	theme        Theme
	keyMapper    *KeyMapper
	picked       string
	back         bool
}

// NewLevelsModel creates a picker over catalogue with the cursor on
// focusID, if present.
func NewLevelsModel(catalogue []levels.Level, stars map[string]int, theme Theme, focusID string, width, height int) LevelsModel {
	m := LevelsModel{
		entries:   catalogue,
		stars:     stars,
		width:     width,
		height:    height,
		theme:     theme,
		keyMapper: NewKeyMapper(),
	}
	if i := levels.Index(catalogue, focusID); i >= 0 {
		m.cursor = i
		m.updateScroll()
	}
	return m
}

// Update handles messages.
func (m LevelsModel) Update(msg tea.Msg) (LevelsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit, MenuActionBack:
			m.back = true
		case MenuActionUp:
			if m.cursor > 0 {
				m.cursor--
				m.updateScroll()
			}
		case MenuActionDown:
			if m.cursor < len(m.entries)-1 {
				m.cursor++
				m.updateScroll()
			}
		case MenuActionSelect:
			if len(m.entries) > 0 {
				m.picked = m.entries[m.cursor].ID
			}
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateScroll()
	}
	return m, nil
}

func (m LevelsModel) visibleItems() int {
	return max(m.height-10, 3)
}

// updateScroll adjusts scroll offset to keep cursor visible.
func (m *LevelsModel) updateScroll() {
	visible := m.visibleItems()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

// View renders the level list.
func (m LevelsModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("S E L E C T   L E V E L"), m.width))
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(centerText(m.theme.Muted.Render("No levels found."), m.width))
		b.WriteString("\n")
	}

	end := min(m.scrollOffset+m.visibleItems(), len(m.entries))
	if m.scrollOffset > 0 {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}
	for i := m.scrollOffset; i < end; i++ {
		lvl := m.entries[i]
		cursor := "  "
		style := m.theme.MenuItemNormal
		if i == m.cursor {
			cursor = "> "
			style = m.theme.MenuItemActive
		}
		name := fmt.Sprintf("%s%2d. %-22s", cursor, i+1, truncate(lvl.Name, 22))
		line := style.Render(name) + " " + m.theme.MenuStars.Render(tilechain.StarString(m.stars[lvl.ID]))
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	if end < len(m.entries) {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	if len(m.entries) > 0 {
		lvl := m.entries[m.cursor]
		desc := fmt.Sprintf("%dx%d  target %d  moves %d  chain %d+",
			lvl.Rows, lvl.Cols, lvl.Target, lvl.Moves, lvl.MinMatch)
		b.WriteString("\n")
		b.WriteString(centerText(m.theme.MenuDescription.Render(desc), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Controls.Render("Up/Down: Navigate  |  Enter: Play  |  Esc: Back"), m.width))
	b.WriteString("\n")
	return b.String()
}

// Picked returns the chosen level ID, or "" while choosing.
func (m LevelsModel) Picked() string {
	return m.picked
}

// WantsBack returns true if user pressed back.
func (m LevelsModel) WantsBack() bool {
	return m.back
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}
