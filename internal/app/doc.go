// Package app is crumb's composition root.
//
// # Overview
//
// Setup loads configuration (file, then CRUMB_* environment, then the
// caller's overrides), builds the logrus logger and the recipe API client.
// The modes then share that Env:
//
//   - Run: the interactive browser (package ui), logging to the log file
//   - List: one category as a table or JSON array
//   - Show: one recipe as text or JSON; ErrUnavailable when absent
//   - Export: every recipe of a category as JSON lines
//
// # Export
//
// Export lists the category, then looks recipes up through an errgroup
// limited to export_workers concurrent requests. Results are buffered and
// written in listing order once every lookup succeeded. The first failure
// cancels the group's context, which aborts the lookups still in flight.
// Recipes that were listed but are absent on lookup are skipped and logged.
//
// # Data Flow
//
//	config.Load ──> logging.Setup ──> mealdb.NewClient
//	                                      │
//	           ┌──────────────┬───────────┼────────────┐
//	           v              v           v            v
//	        ui.Run          List        Show        Export
package app
