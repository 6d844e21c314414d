// Package pkgtenant holds the "current user" of a unit of work.
//
// The holder is a single slot stored in context.Context. Request middleware sets
// it once per request; background tasks receive a copy through the task
// decorator in pkgroutine.
package pkgtenant
