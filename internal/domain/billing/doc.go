// Package billing defines the transactions created from closed orders and the
// billing periods that collect them into per-household invoices.
package billing
