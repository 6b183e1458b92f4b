package response

import (
	"net/http"

	appctx "github.com/craftline/shopfront/internal/pkg/context"
)

// RequestIDFromRequest extracts the request id set by the middleware, if any.
func RequestIDFromRequest(r *http.Request) string {
	if id, ok := appctx.RequestID(r.Context()); ok {
		return id
	}
	return ""
}
