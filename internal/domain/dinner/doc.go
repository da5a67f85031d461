// Package dinner defines dinner events, their lifecycle and the dinner modes
// an inhabitant can attend in.
package dinner
