// Package reconcile keeps the remote calendar in step with the scraped page.
//
// An Engine run takes the parsed events, a snapshot of the remote entries
// listed at the start of the run and a reference day, and then:
//
//   - creates or patches every event starting on or after today (add modes),
//     matching existing entries by UID and falling back to title similarity
//     on identical dates;
//   - deletes owned entries whose last day is before today, or all owned
//     entries for ModeRemoveAll.
//
// Only entries carrying the ownership tag and a UID in their private
// metadata are ever touched. Each remote call is isolated: a failure is
// counted and logged, and the run continues.
package reconcile
