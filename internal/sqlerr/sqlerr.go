// Package sqlerr handles database driver errors.
//
// It parses PostgreSQL error codes returned through pgx and
// converts them into client-facing errors (e.g. a unique
// violation on categories.name becomes a 400 Bad Request).
package sqlerr
