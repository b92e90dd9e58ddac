package main

import (
	"os"

	"github.com/skillbridge/skillbridge/internal/pkg/logger"
	"github.com/skillbridge/skillbridge/internal/server"
)

// @title SkillBridge API
// @version 1.0
// @description API for the SkillBridge skill-sharing marketplace

// @host localhost:8080
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed")
		os.Exit(1)
	}
}
