// Package calendar defines weekdays, calendar dates and date ranges.
//
// A calendar date is represented as a time.Time at midnight UTC carrying the
// local year, month and day. Wall-clock instants such as dinner start times
// are built from a date and a *time.Location when needed.
package calendar
