package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderLogs renders the log overlay in place of the active screen.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)
	hdr := styles.WithBackground(m.theme.Surface)

	title := bg.Join([]string{
		bg.Render("crumb", hdr.Logo),
		bg.Render("log", hdr.AccentText),
		bg.Render(truncate(m.logPath, maxInt(m.width-20, 10)), hdr.MutedText),
	}, "  ")

	var b strings.Builder
	b.WriteString(bg.FillLine(" "+title, m.width))
	b.WriteString("\n")
	b.WriteString(" " + styles.MutedText.Render("<esc> close  <r> refresh  <j/k> scroll"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Height(m.bodyHeight()).MaxHeight(m.bodyHeight()).Render(m.logViewport.View()))
	b.WriteString("\n")
	if m.logErr != nil {
		b.WriteString(styles.DangerText.Render(" " + m.logErr.Error()))
	}
	return b.String()
}

// renderLogContent colors formatted log lines by level.
func (m Model) renderLogContent(lines []string) string {
	styles := m.theme.Styles()
	if len(lines) == 0 {
		return styles.MutedText.Render("Log is empty.")
	}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, logLineStyle(styles, line).Render(line))
	}
	return strings.Join(out, "\n")
}

func logLineStyle(styles Styles, line string) lipgloss.Style {
	switch {
	case strings.Contains(line, " ERROR ") || strings.Contains(line, " FATAL "):
		return styles.DangerText
	case strings.Contains(line, " WARNING "):
		return styles.WarningText
	case strings.Contains(line, " DEBUG ") || strings.Contains(line, " TRACE "):
		return styles.FaintText
	default:
		return styles.Text
	}
}
