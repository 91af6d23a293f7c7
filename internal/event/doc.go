// Package event provides the scraped calendar entry type and the helpers that
// give it a stable identity across runs.
//
// A ParsedEvent carries the raw title and an inclusive civil date range. Its
// identity is a truncated SHA-256 over the ISO range and the normalized title,
// so the same row scraped on different days maps to the same remote event.
// ParseDateRange turns the free-form date cells of the source page into ranges.
package event
