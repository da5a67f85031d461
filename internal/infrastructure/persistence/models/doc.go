// Package models contains the GORM database models of the persistence layer.
// They are kept apart from the domain entities; every model converts with
// ToDomain and FromDomain. Instants are stored in UTC and calendar dates as
// UTC midnight.
package models
