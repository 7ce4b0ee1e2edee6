package main

import (
	"os"

	"github.com/yigit/portaladmin/internal/pkg/logger"
	"github.com/yigit/portaladmin/internal/server"
)

// @title Portal Admin API
// @version 1.0
// @description Admin API over the learning portal's users, courses, lectures and announcements.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name portal_session
// @description Session cookie issued by POST /auth/login

func main() {
	srv, err := server.NewServer()
	if err != nil {
		// details are logged by the bootstrap steps
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
