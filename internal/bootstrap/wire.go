package bootstrap

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/craftline/shopfront/internal/application/session"
	"github.com/craftline/shopfront/internal/config"
	"github.com/craftline/shopfront/internal/domain"
	"github.com/craftline/shopfront/internal/infrastructure/db/postgres"
	"github.com/craftline/shopfront/internal/infrastructure/memory"
	"github.com/craftline/shopfront/internal/infrastructure/messaging/rabbitmq"
	"github.com/craftline/shopfront/internal/infrastructure/redis"
	"github.com/craftline/shopfront/internal/infrastructure/security"
	"github.com/craftline/shopfront/internal/logger"
	"github.com/craftline/shopfront/internal/transport/http/handlers"
	"github.com/craftline/shopfront/internal/transport/http/middleware"
	"github.com/craftline/shopfront/internal/transport/http/response"
	"github.com/craftline/shopfront/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing.
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)

	NewDB func(addr string) (*sql.DB, error)

	NewRedis func(addr string) RedisClient

	NewPublisher func(rabbitURL string) (session.EventPublisher, error)

	NewRouter func(router.Deps) (http.Handler, error)
}

type RedisClient interface {
	Ping(ctx context.Context) error
	Close() error
}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	// 1) db + user repo
	db, err := deps.NewDB(cfg.DBAddr)
	if err != nil {
		return nil, nil, err
	}

	cleanupFns := []func(){
		func() { _ = db.Close() },
	}

	userRepo := postgres.NewUserRepo(db)

	// 2) redis (best-effort; rate limiting only)
	var limiter *redis.FixedWindowLimiter
	if cfg.RedisAddr != "" && deps.NewRedis != nil {
		c := deps.NewRedis(cfg.RedisAddr)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := c.Ping(ctx); err != nil {
			logger.Logger.Warn().Err(err).Msg("redis unavailable; rate limiting disabled")
			_ = c.Close()
		} else {
			logger.Logger.Info().Msg("redis connected")
			cleanupFns = append(cleanupFns, func() { _ = c.Close() })
			if rc, ok := c.(*redis.Client); ok {
				limiter = redis.NewFixedWindowLimiter(rc)
			}
		}
	}

	// 3) publisher (best-effort in dev, required elsewhere)
	var pub session.EventPublisher = memory.NewNoopPublisher()
	if cfg.RabbitURL != "" && deps.NewPublisher != nil {
		p, err := deps.NewPublisher(cfg.RabbitURL)
		if err != nil {
			if cfg.Env == "dev" {
				logger.Logger.Warn().Err(err).Msg("rabbitmq unavailable; using noop publisher")
			} else {
				runCleanup(cleanupFns)
				return nil, nil, err
			}
		} else {
			pub = p
			if c, ok := p.(interface{ Close() error }); ok {
				cleanupFns = append(cleanupFns, func() { _ = c.Close() })
			}
		}
	}

	// 4) security + role resolver
	hasher := security.NewBcryptHasher(12)
	codec := security.NewJWTCodec(cfg.JWTSecret, cfg.JWTIssuer)
	admins := domain.ParseAdminList(cfg.AdminEmails)

	// 5) service
	svc := session.NewService(userRepo, hasher, codec, admins, pub, session.Config{
		SessionTTL: cfg.SessionTTL,
	})

	svc = svc.WithAudit(func(action string, fields map[string]string) {
		evt := logger.Logger.Info().
			Bool("audit", true).
			Str("action", action)
		for k, v := range fields {
			evt = evt.Str(k, v)
		}
		evt.Msg("audit")
	})

	// 6) handlers + middleware
	authH := handlers.NewAuthHandler(svc, cfg.SecureCookies())
	healthH := handlers.NewHealthHandler(db)

	authMW := middleware.Auth(codec, response.WriteError)

	rl := func(key string, limit int, window time.Duration) func(http.Handler) http.Handler {
		if limiter == nil {
			return nil
		}
		return middleware.RateLimitFixedWindow(
			limiter,
			middleware.FixedWindowConfig{
				RouteKey: key,
				Limit:    limit,
				Window:   window,
			},
			response.WriteError,
		)
	}

	// 7) router
	mux, err := deps.NewRouter(router.Deps{
		Health:      healthH,
		Auth:        authH,
		RequestIDMW: middleware.RequestID,
		CORSMW:      middleware.CORS(cfg.FrontendOrigin),
		AuthMW:      authMW,
		RLRegister:  rl("auth.register", 3, time.Minute),
		RLLogin:     rl("auth.login", 5, time.Minute),
	})
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 8) server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	cleanup := func() {
		runCleanup(cleanupFns)
	}

	return srv, cleanup, nil
}

/*
========================
 Default deps (prod)
========================
*/

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewDB:      config.NewDB,
		NewRedis: func(addr string) RedisClient {
			return redis.New(addr, "", 0)
		},
		NewPublisher: func(url string) (session.EventPublisher, error) {
			return rabbitmq.NewPublisher(url)
		},
		NewRouter: router.New,
	}
}

func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
