// Package state provides per-screen request state for the crumb UI.
//
// # Overview
//
// Each screen owns exactly one Request. A Request moves through four states:
//
//	Idle ──Begin()──> Loading ──Resolve(ok)──> Loaded
//	                     │
//	                     └──Resolve(err)──> Failed
//
//	any ──Cancel()──> Idle
//
// Begin hands out a Ticket. The asynchronous fetch carries the ticket and
// presents it to Resolve when the response arrives. Resolve ignores tickets
// from an earlier Begin and tickets issued before a Cancel, so a response that
// lands after its screen was dismissed or reloaded never writes into the
// screen's state.
//
// # Concurrency Model
//
// Request guards its state with a sync.RWMutex. Fetches run on goroutines
// started by the UI runtime while the UI reads snapshots from its own loop.
//
// # Usage Example
//
//	var req state.Request[[]mealdb.RecipeSummary]
//	ticket := req.Begin()
//	go func() {
//		list, err := client.FetchByCategory(ctx, "Dessert")
//		if !req.Resolve(ticket, list, err) {
//			// screen moved on; result discarded
//		}
//	}()
//
//	snap := req.Snapshot()
//	switch snap.Status {
//	case state.Loading:
//	case state.Loaded:
//	case state.Failed:
//	}
package state
