// Package pkglog contains logging helpers used across the application.
//
// It is built around slog and keeps logs consistent by:
//   - Initializing a JSON handler with stable keys.
//   - Keeping a per-scope diagnostic field store (correlation id, request start
//     time) inside context.Context, with Snapshot/Restore to carry a copy of it
//     into background work.
//   - Attaching those fields and the current tenant to each log record.
package pkglog
