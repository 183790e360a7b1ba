package ui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/crumb/internal/logging"
	"github.com/five82/crumb/internal/mealdb"
	"github.com/five82/crumb/internal/state"
)

// detailResult is the value held by the detail screen's request. Found is
// false when the recipe is absent upstream.
type detailResult struct {
	Detail mealdb.RecipeDetail
	Found  bool
}

// Messages

type listLoadedMsg struct {
	ticket  state.Ticket
	recipes []mealdb.RecipeSummary
	err     error
}

type detailLoadedMsg struct {
	ticket state.Ticket
	result detailResult
	err    error
}

type logsLoadedMsg struct {
	lines []string
	err   error
}

type prefsSavedMsg struct {
	err error
}

// Commands

func fetchListCmd(ctx context.Context, src mealdb.ListingClient, category string, ticket state.Ticket) tea.Cmd {
	return func() tea.Msg {
		recipes, err := src.FetchByCategory(ctx, category)
		return listLoadedMsg{ticket: ticket, recipes: recipes, err: err}
	}
}

func fetchDetailCmd(ctx context.Context, src mealdb.DetailClient, id string, ticket state.Ticket) tea.Cmd {
	return func() tea.Msg {
		detail, found, err := src.FetchByID(ctx, id)
		return detailLoadedMsg{ticket: ticket, result: detailResult{Detail: detail, Found: found}, err: err}
	}
}

func readLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		raw, err := logging.Tail(path, LogTailLines)
		if err != nil {
			return logsLoadedMsg{err: err}
		}
		lines := make([]string, 0, len(raw))
		for _, line := range raw {
			if strings.TrimSpace(line) == "" {
				continue
			}
			lines = append(lines, logging.FormatLine(line))
		}
		return logsLoadedMsg{lines: lines}
	}
}
