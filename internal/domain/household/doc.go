// Package household defines households, their inhabitants with weekly dinner
// preferences, and the allergies tracked for inhabitants.
package household
