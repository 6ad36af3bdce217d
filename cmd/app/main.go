package main

import (
	"context"

	"guesthouse/config"
	"guesthouse/di"
	"guesthouse/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	app := di.InitializeApp()

	ctx := context.Background()

	if err := app.Accounts.Bootstrap(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to bootstrap admin accounts")
	}

	if err := app.SiteContent.EnsureDefaults(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed default site content")
	}

	app.HTTP.Serve()
}
