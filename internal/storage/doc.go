// Package storage provides JSON-based persistence for sync run history.
//
// The record of the most recent sync is kept in last_run.json inside the data
// directory (default ~/.acal-sync). It holds the mode, the date used as
// "today", the resulting counters and the UIDs of the scraped events, which
// lets later runs tell which events are new on the page.
package storage
