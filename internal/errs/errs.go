// Package errs defines custom error types and utilities.
//
// It gives every failure a consistent JSON shape (HTTPError) so clients
// receive meaningful, actionable error messages:
//
//   - Return consistent error shapes to API clients (JSON).
//   - Support field-level validation errors.
//   - Support extra details (e.g. conflicting ids) and "action hints".
//   - Play nicely with Go's standard errors package.
package errs
