package pkglog

import "context"

const invalidCorrelationID = "[invalid_chain_id]"

// GetCorrelationID returns the correlation ID stored in the context.
//
// Middleware is expected to set this value early in the request lifecycle so
// it can be attached to logs and handed over to background tasks.
func GetCorrelationID(ctx context.Context) string {
	cid, ok := Get(ctx, KeyCorrelationID)
	if !ok {
		return invalidCorrelationID
	}
	return cid
}

// SetCorrelationID stores a correlation ID into the context's diagnostic scope.
func SetCorrelationID(ctx context.Context, cid string) context.Context {
	return Put(ctx, KeyCorrelationID, cid)
}
