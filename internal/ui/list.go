package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/crumb/internal/mealdb"
	"github.com/five82/crumb/internal/state"
)

// handleListKey processes keyboard input for the list screen.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.list.stop()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Reload):
		cmd := m.loadList()
		return m, cmd
	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		cmd := m.filter.Focus()
		return m, cmd
	}

	items := m.visibleRecipes()
	count := len(items)
	if count == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selected < count-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selected = count - 1
	case key.Matches(msg, m.keys.Open):
		m.clampSelection()
		cmd := m.openDetail(items[m.selected])
		return m, cmd
	}
	m.clampSelection()
	return m, nil
}

// handleFilterKey routes input to the filter box while it is focused. The
// list narrows as the user types.
func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.filtering = false
		m.filter.Blur()
		m.clampSelection()
		return m, nil
	case key.Matches(msg, m.keys.Clear):
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.clampSelection()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.selected = 0
	m.offset = 0
	return m, cmd
}

// visibleRecipes returns the loaded recipes that match the name filter.
func (m Model) visibleRecipes() []mealdb.RecipeSummary {
	snap := m.list.snapshot()
	if snap.Status != state.Loaded {
		return nil
	}
	return filterRecipes(snap.Value, m.filter.Value())
}

// filterRecipes keeps recipes whose name contains query, ignoring case.
func filterRecipes(recipes []mealdb.RecipeSummary, query string) []mealdb.RecipeSummary {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return recipes
	}
	out := make([]mealdb.RecipeSummary, 0, len(recipes))
	for _, r := range recipes {
		if strings.Contains(strings.ToLower(r.Name), query) {
			out = append(out, r)
		}
	}
	return out
}

// clampSelection keeps the cursor inside the visible rows and scrolls the
// window so the cursor stays on screen.
func (m *Model) clampSelection() {
	count := len(m.visibleRecipes())
	if count == 0 {
		m.selected = 0
		m.offset = 0
		return
	}
	if m.selected >= count {
		m.selected = count - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}

	rows := m.listRows()
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+rows {
		m.offset = m.selected - rows + 1
	}
	if m.offset > count-rows {
		m.offset = maxInt(count-rows, 0)
	}
}

// listRows is the number of recipe rows that fit on screen.
func (m Model) listRows() int {
	rows := m.bodyHeight()
	if m.filtering || m.filter.Value() != "" {
		rows--
	}
	return maxInt(rows, 1)
}

// renderList renders the list screen body.
func (m Model) renderList() string {
	styles := m.theme.Styles()
	snap := m.list.snapshot()

	var b strings.Builder
	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n")
	}

	switch snap.Status {
	case state.Idle:
		b.WriteString(styles.MutedText.Render("Press r to load recipes."))
		return b.String()
	case state.Loading:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(styles.Text.Render(fmt.Sprintf("Loading %s recipes...", m.category)))
		return b.String()
	case state.Failed:
		b.WriteString(m.renderFailure("Could not load recipes", snap.Err))
		return b.String()
	}

	items := m.visibleRecipes()
	if len(snap.Value) == 0 {
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("No recipes in %s.", m.category)))
		return b.String()
	}
	if len(items) == 0 {
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("No recipes match %q.", strings.TrimSpace(m.filter.Value()))))
		return b.String()
	}

	rows := m.listRows()
	end := minInt(m.offset+rows, len(items))
	nameWidth := m.width - 4
	showID := m.width >= LayoutIDWidth
	if showID {
		nameWidth -= 10
	}
	for i := m.offset; i < end; i++ {
		item := items[i]
		name := padRight(truncate(item.Name, maxInt(nameWidth, 8)), maxInt(nameWidth, 8))
		line := "  " + name
		if showID {
			line += "  " + padRight(item.ID, 8)
		}
		if i == m.selected {
			line = "> " + strings.TrimPrefix(line, "  ")
			b.WriteString(styles.Selected.Width(m.width).Render(line))
		} else {
			b.WriteString(styles.Text.Render(line))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
