package main

import (
	"os"

	"github.com/Atharvasurya/punjab-alumni-sih/internal/pkg/logger"
)

// @title Alumni Portal API
// @version 1.0
// @description Role based alumni, student and college portal

// @host localhost:8080
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name auth-role
// @description Session token issued by /auth/login

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
