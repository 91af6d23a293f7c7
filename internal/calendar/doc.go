// Package calendar exports parsed academic calendar events as iCalendar data.
package calendar
