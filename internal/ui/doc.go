// Package ui provides the interactive recipe browser for crumb.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model is the root tea.Model; every fetch
// runs as a tea.Cmd and reports back through a message, so the model is only
// mutated on the Bubble Tea event loop.
//
// # Screens
//
//   - List: recipes of the configured category with a name filter
//   - Detail: one recipe with ingredients and scrollable instructions
//
// A help overlay and a log overlay can be opened from either screen.
//
// # Request State
//
// Each screen owns one state.Request. Starting a fetch issues a ticket and a
// cancellable context; the result message carries the ticket back. Leaving
// the detail screen cancels the context and resets the request, so a late
// response is dropped instead of overwriting whatever the user looks at now.
//
// # Package Structure
//
//   - app.go: Model, Update/View and Run
//   - list.go, detail.go: screen input and rendering
//   - commands.go: fetch commands and their messages
//   - header.go, help.go, logs.go: chrome and overlays
//   - errors.go: short failure reasons for the failure panel
//   - theme.go, style_helpers.go: palettes and lipgloss helpers
//
// # Usage Example
//
//	err := ui.Run(ui.Options{
//		Context:   ctx,
//		Source:    client,
//		Category:  cfg.Category,
//		ThemeName: p.Theme,
//		LogPath:   cfg.LogFile,
//		Logger:    logger,
//	})
package ui
