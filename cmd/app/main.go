package main

import (
	"videotube/internal/app"
	"videotube/pkg/config"
)

// @title           Videotube API
// @version         1.0
// @description     Video sharing backend: accounts, videos, comments, likes, subscriptions, playlists, tweets and channel dashboards.

// @host      localhost:8000
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token. The accessToken cookie is accepted as well.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		panic(err)
	}

	if err := application.Run(); err != nil {
		panic(err)
	}

	application.Wait()

	if err := application.Shutdown(); err != nil {
		panic(err)
	}
}
