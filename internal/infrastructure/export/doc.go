// Package export renders invoices for the payment service and the dinner
// calendar as an iCalendar feed.
package export
