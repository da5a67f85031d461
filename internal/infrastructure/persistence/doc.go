// Package persistence provides the GORM repositories of every aggregate and
// the unit of work that groups their writes into one transaction. SQLite
// backs tests and small installations; PostgreSQL backs production.
package persistence
