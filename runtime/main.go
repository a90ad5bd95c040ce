package main

import (
	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/skillbites-ai/bites_api/middleware"
	"github.com/skillbites-ai/bites_api/services"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Warn().Err(err).Msg("No .env file loaded")
	}

	ctx, err := context.NewCtx(
		&services.JWTService{},
		&services.SqliteService{},
		&services.RedisService{},

		&services.StorageService{},
		&services.StateService{},
		&services.LibraryService{},
		&services.NavigationService{},
		&services.GeneratorService{},
		&services.ProgressService{},
		&services.SessionService{},

		&services.RateLimitService{},
		&middleware.SessionMiddleware{},
		&services.MonitoringService{},

		&services.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err)
		return
	}

	err = ctx.Run()
	if err != nil {
		log.Fatal().Err(err)
		return
	}
}
