// Package pkgrouter wraps HTTP routing and common middleware used by the API.
//
// It provides a small router abstraction over httprouter plus shared concerns
// like JSON encoding, error mapping, logging and recovery. It is also the
// request boundary: each request opens a pkglog scope with its correlation id
// and start time, and carries the resolved principal as its pkgtenant.
package pkgrouter
