// Package gcal adapts the Google Calendar v3 API to the reconcile package.
//
// Client discovers or creates the target calendar and lists its entries as
// reconcile.RemoteEvent values; Calendar implements reconcile.Store for one
// calendar id. All-day dates cross the boundary as civil.Date with the API's
// exclusive end date kept as-is.
package gcal
