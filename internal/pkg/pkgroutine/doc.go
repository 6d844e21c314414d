// Package pkgroutine runs background work on a bounded worker pool.
//
// Tasks are submitted from request handlers and executed later on pool
// workers. Every task passes through a Decorator at submission time; the
// default one, PropagateContext, copies the submitter's diagnostic fields
// (pkglog) and tenant (pkgtenant) into the task and installs them on the
// worker for the duration of the run only.
//
// The pool also limits concurrency, recovers and logs panics, and collects
// task errors so that background work does not fail silently.
package pkgroutine
