package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/crumb/internal/mealdb"
	"github.com/five82/crumb/internal/state"
)

// handleDetailKey processes keyboard input for the detail screen.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit):
		m.closeDetail()
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		cmd := m.loadDetail()
		return m, cmd
	}

	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

// updateDetailViewport re-renders the loaded recipe into the viewport.
func (m *Model) updateDetailViewport() {
	if !m.ready {
		return
	}
	snap := m.detail.snapshot()
	if snap.Status != state.Loaded || !snap.Value.Found {
		m.detailViewport.SetContent("")
		return
	}
	m.detailViewport.SetContent(renderRecipe(snap.Value.Detail, m.theme.Styles(), m.bodyWidth()))
}

// renderDetail renders the detail screen body for the current request state.
func (m Model) renderDetail() string {
	styles := m.theme.Styles()
	snap := m.detail.snapshot()

	switch snap.Status {
	case state.Loading:
		title := m.detailName
		if title == "" {
			title = "recipe " + m.detailID
		}
		return m.spinner.View() + " " + styles.Text.Render(fmt.Sprintf("Loading %s...", title))
	case state.Failed:
		return m.renderFailure("Could not load recipe", snap.Err)
	case state.Loaded:
		if !snap.Value.Found {
			return m.renderPanel(
				styles.WarningText.Bold(true).Render("Recipe is unavailable"),
				styles.MutedText.Render(fmt.Sprintf("No recipe with id %s was found.", m.detailID)),
				styles.FaintText.Render("esc to go back, r to retry"),
			)
		}
		return m.detailViewport.View()
	default:
		return ""
	}
}

// renderRecipe formats a recipe as plain sections for the viewport.
func renderRecipe(d mealdb.RecipeDetail, styles Styles, width int) string {
	wrap := lipgloss.NewStyle().Width(maxInt(width-2, 20))

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render(d.Name))
	b.WriteString("\n")
	if meta := recipeMeta(d); meta != "" {
		b.WriteString(styles.MutedText.Render(meta))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.WarningText.Bold(true).Render("Ingredients"))
	b.WriteString("\n")
	if len(d.Ingredients) == 0 {
		b.WriteString(styles.FaintText.Render("No ingredients listed."))
		b.WriteString("\n")
	}
	for _, line := range ingredientLines(d.Ingredients) {
		b.WriteString(styles.Text.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.WarningText.Bold(true).Render("Instructions"))
	b.WriteString("\n")
	if d.HasInstructions() {
		b.WriteString(wrap.Inherit(styles.Text).Render(d.Instructions))
	} else {
		b.WriteString(styles.FaintText.Render("No instructions provided."))
	}
	b.WriteString("\n")

	links := make([]string, 0, 2)
	if d.SourceURL != "" {
		links = append(links, "Source: "+d.SourceURL)
	}
	if d.YouTubeURL != "" {
		links = append(links, "Video: "+d.YouTubeURL)
	}
	if len(links) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.InfoText.Render(strings.Join(links, "\n")))
		b.WriteString("\n")
	}
	return b.String()
}

// recipeMeta joins category, area and tags with separators.
func recipeMeta(d mealdb.RecipeDetail) string {
	parts := make([]string, 0, 3)
	if d.Category != "" {
		parts = append(parts, d.Category)
	}
	if d.Area != "" {
		parts = append(parts, d.Area)
	}
	if len(d.Tags) > 0 {
		parts = append(parts, strings.Join(d.Tags, ", "))
	}
	return strings.Join(parts, " · ")
}

// ingredientLines renders ingredients as "- name: measure", in order.
func ingredientLines(ingredients []mealdb.Ingredient) []string {
	lines := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		if ing.Measure == "" {
			lines = append(lines, "- "+ing.Name)
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s: %s", ing.Name, ing.Measure))
	}
	return lines
}

// renderFailure renders the failure panel for a request error.
func (m Model) renderFailure(title string, err error) string {
	styles := m.theme.Styles()
	return m.renderPanel(
		styles.DangerText.Render(title),
		styles.Text.Render(describeError(err)),
		styles.FaintText.Render("r to retry"),
	)
}

func (m Model) renderPanel(lines ...string) string {
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(0, 2)
	return panel.Render(strings.Join(lines, "\n"))
}
