package main

import (
	"net/http"

	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/craftline/shopfront/internal/bootstrap"
	"github.com/craftline/shopfront/internal/logger"
)

func main() {
	_ = godotenv.Load()
	logger.Init()

	srv, err := bootstrap.NewWebServer()
	if err != nil {
		zlog.Fatal().Err(err).Msg("edge gateway bootstrap failed")
	}

	zlog.Info().Str("addr", srv.Addr).Msg("edge gateway starting")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		zlog.Fatal().Err(err).Msg("edge gateway failed")
	}
}
