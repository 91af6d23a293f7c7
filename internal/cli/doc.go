// Package cli implements the command-line interface for acal-sync.
//
// The cli package provides the Cobra-based CLI with the sync, scrape, export
// and last-run commands, text and JSON output, and sorting by date, title or
// category. It coordinates the config, scraper, reconcile, gcal and storage
// packages; tests swap the Google client and the page fetcher for fakes.
package cli
