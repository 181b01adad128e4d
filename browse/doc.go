// Package browse orchestrates catalog requests into a single view state.
//
// # Overview
//
// The user either searches (a non-empty settled term) or browses one of the
// fixed categories. The mode is never stored; it is derived from the settled
// term.
//
//	SetRawTerm ──> Debouncer ──> settled term ──> SearchFetcher ─┐
//	Start ───────> CategoryFetcher.LoadAll (one goroutine each) ─┤
//	SelectCategory / Retry ──> CategoryFetcher.Refresh ──────────┤
//	                                                              v
//	                                   Store: Reduce, one event at a time
//	                                                              │
//	                                                       Snapshot()
//
// # Ordering
//
// Every request carries a Ticket from the Sequencer. A response is applied
// only if its ticket is still the newest for its class, so the last issued
// request wins regardless of completion order. Leaving search mode retires
// the outstanding search ticket.
//
// # Failures
//
// Results are classified with tmdb.Classify before they reach the store.
// Bulk-load failures are contained: the category shows an empty list and the
// failure is kept in Snapshot.BulkFailures for diagnostics. Search and
// refresh failures populate Snapshot.Err; Retry re-issues the fetch. A
// successful empty result is reported through Snapshot.Empty, not as an
// error.
//
// # Testing
//
// Reduce is a pure function, so most behaviour can be checked without
// goroutines:
//
//	s, cmds := browse.Reduce(browse.NewState(), browse.SettledTermChanged{Term: "bat"})
package browse
