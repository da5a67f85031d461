// Package season defines dinner seasons: their cooking calendar, ticket prices
// and the booking deadlines derived from them.
package season
