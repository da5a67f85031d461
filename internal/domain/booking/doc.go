// Package booking defines dinner orders, their audit history and the
// scaffold reconciliation that turns weekly dinner preferences into orders.
//
// Order lifecycle:
//
//	BOOKED   -> CLOSED     dinner has been served, the order is billed
//	BOOKED   -> RELEASED   cancelled after the cancellation deadline, still billed unless claimed
//	RELEASED -> CLOSED     nobody claimed it, billed to the original household
//	RELEASED -> CANCELLED  claimed by another household, not billed
//	BOOKED   -> CANCELLED  cancelled in time or the dinner was cancelled, not billed
package booking
