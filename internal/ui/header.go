package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/crumb/internal/state"
)

// renderHeader renders the title bar: app name, category and request badge.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)
	hdr := styles.WithBackground(m.theme.Surface)

	parts := []string{
		bg.Render("crumb", hdr.Logo),
		bg.Render(m.category, hdr.AccentText),
	}

	snap := m.list.snapshot()
	if m.screen == ScreenDetail {
		snap := m.detail.snapshot()
		title := m.detailName
		if title == "" {
			title = m.detailID
		}
		parts = append(parts, bg.Render(truncate(title, 40), hdr.Text))
		parts = append(parts, styles.StatusStyle(snap.Status.String()).Render(snap.Status.String()))
	} else {
		if snap.Status == state.Loaded {
			shown := len(m.visibleRecipes())
			count := fmt.Sprintf("%d recipes", len(snap.Value))
			if shown != len(snap.Value) {
				count = fmt.Sprintf("%d of %d recipes", shown, len(snap.Value))
			}
			parts = append(parts, bg.Render(count, hdr.MutedText))
		}
		parts = append(parts, styles.StatusStyle(snap.Status.String()).Render(snap.Status.String()))
	}

	return bg.FillLine(" "+bg.Join(parts, "  "), m.width)
}

// renderCommandBar lists the keys that apply to the active screen.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()
	type hint struct{ key, desc string }

	var hints []hint
	switch {
	case m.filtering:
		hints = []hint{{"enter", "apply"}, {"esc", "clear"}}
	case m.screen == ScreenDetail:
		hints = []hint{{"esc", "back"}, {"j/k", "scroll"}, {"r", "reload"}, {"L", "log"}, {"?", "help"}}
	default:
		hints = []hint{{"enter", "open"}, {"/", "filter"}, {"r", "reload"}, {"T", "theme"}, {"L", "log"}, {"?", "help"}, {"q", "quit"}}
	}
	if m.width > 0 && m.width < LayoutCompactWidth && len(hints) > 4 {
		hints = hints[:4]
	}

	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Warning))
	out := make([]string, 0, len(hints))
	for _, h := range hints {
		out = append(out, keyStyle.Render("<"+h.key+">")+" "+styles.MutedText.Render(h.desc))
	}
	return " " + strings.Join(out, "  ")
}

// renderStatusLine shows how long the active screen's request took.
func (m Model) renderStatusLine() string {
	styles := m.theme.Styles()
	var status state.Status
	var took time.Duration
	if m.screen == ScreenDetail {
		snap := m.detail.snapshot()
		status, took = snap.Status, snap.Elapsed()
	} else {
		snap := m.list.snapshot()
		status, took = snap.Status, snap.Elapsed()
	}
	elapsed := formatElapsed(took)

	switch status {
	case state.Loaded:
		if took > SlowRequestThreshold {
			return styles.WarningText.Render(" loaded in " + elapsed + " (slow)")
		}
		return styles.FaintText.Render(" loaded in " + elapsed)
	case state.Failed:
		return styles.DangerText.Render(" failed after " + elapsed)
	case state.Loading:
		return styles.FaintText.Render(" waiting " + elapsed)
	default:
		return ""
	}
}
