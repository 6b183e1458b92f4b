package bootstrap

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/craftline/shopfront/internal/config"
	"github.com/craftline/shopfront/internal/domain"
	"github.com/craftline/shopfront/internal/edge"
	"github.com/craftline/shopfront/internal/transport/http/middleware"
)

// NewWebServer assembles the edge gateway: request-id middleware, the gate,
// and a reverse proxy to the page frontend. The gateway holds the same
// allow-list configuration as the API so the two recomputation sites agree.
func NewWebServer() (*http.Server, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return newWebServer(cfg)
}

func newWebServer(cfg *config.Config) (*http.Server, error) {
	gate := edge.NewGate(edge.GateConfig{
		Admins: domain.ParseAdminList(cfg.AdminEmails),
	})

	proxy, err := edge.NewProxy(cfg.FrontendOrigin)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(gate.Middleware)
	r.Handle("/*", proxy)

	return &http.Server{
		Addr:         cfg.WebAddr,
		Handler:      r,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}, nil
}
