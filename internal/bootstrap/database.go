package bootstrap

import (
	"fmt"

	"github.com/jonesrussell/gotools/internal/config"
	"github.com/jonesrussell/gotools/internal/database"
	"github.com/jonesrussell/gotools/internal/logger"
)

// SetupDatabase creates the PostgreSQL connection.
func SetupDatabase(cfg *config.Config, log logger.Logger) (*database.DB, error) {
	db, err := database.New(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("database connection: %w", err)
	}
	return db, nil
}
