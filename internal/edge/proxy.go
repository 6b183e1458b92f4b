package edge

import (
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/craftline/shopfront/internal/logger"
	"github.com/craftline/shopfront/internal/pkg/context"
	"github.com/craftline/shopfront/internal/transport/http/middleware"
)

// NewProxy builds the reverse proxy that forwards gated page requests to the
// frontend origin, propagating the request id downstream.
func NewProxy(targetHost string) (*httputil.ReverseProxy, error) {
	target, err := url.Parse(targetHost)
	if err != nil {
		return nil, err
	}

	proxy := httputil.NewSingleHostReverseProxy(target)
	originalDirector := proxy.Director

	proxy.Director = func(req *http.Request) {
		originalDirector(req)

		// Upstream should see itself as the addressed host.
		req.Host = target.Host

		if reqID, ok := context.RequestID(req.Context()); ok {
			req.Header.Set(middleware.HeaderXRequestID, reqID)
		}
	}

	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		reqID, _ := context.RequestID(r.Context())

		logger.Logger.Error().
			Err(err).
			Str("target", targetHost).
			Str("request_id", reqID).
			Msg("upstream_proxy_error")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":{"code":"upstream_unavailable","message":"upstream service unreachable","request_id":"` + reqID + `"}}`))
	}

	return proxy, nil
}
