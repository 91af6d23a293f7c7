// Package scraper fetches the academic calendar page and extracts its
// undergraduate events.
//
// Every <table> on the page is reduced to header and row text. Tables whose
// header names an "UNDER G." column yield one event per row: the first cell is
// the title and the undergraduate cell is parsed with event.ParseDateRange.
// Rows that cannot be parsed are reported as warnings rather than errors.
package scraper
