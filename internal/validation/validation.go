// Package validation contains the logic for binding and
// validating request data.
//
// It uses the `validator` library to enforce rules (required
// fields, maximum lengths) defined in struct tags and turns
// validation errors into a format the client can understand.
package validation
