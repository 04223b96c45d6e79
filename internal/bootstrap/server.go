package bootstrap

import (
	"fmt"
	"net/http"

	"github.com/jonesrussell/gotools/internal/adapters"
	"github.com/jonesrussell/gotools/internal/api"
	"github.com/jonesrussell/gotools/internal/config"
	"github.com/jonesrussell/gotools/internal/crawler"
	"github.com/jonesrussell/gotools/internal/database"
	"github.com/jonesrussell/gotools/internal/events"
	"github.com/jonesrussell/gotools/internal/ingest"
	"github.com/jonesrussell/gotools/internal/logger"
	"github.com/jonesrussell/gotools/internal/repository"
)

// SetupHTTPServer wires the pipeline and returns the configured server.
func SetupHTTPServer(
	cfg *config.Config,
	db *database.DB,
	publisher *events.Publisher,
	log logger.Logger,
) *http.Server {
	repo := repository.NewToolRepository(db.DB(), log)
	registry := adapters.NewDefaultRegistry()

	// events.Publisher is nil-safe, but a typed nil must not end up in the
	// EventPublisher interface.
	var eventSink ingest.EventPublisher
	if publisher != nil {
		eventSink = publisher
	}
	service := ingest.NewService(registry, repo, eventSink, log)

	scraper := crawler.NewScraper(cfg.Crawler, log)
	scheduler := crawler.NewScheduler(scraper, service, cfg.Crawler, log)

	router := api.NewRouter(api.Deps{
		Importer:    service,
		Scheduler:   scheduler,
		Store:       repo,
		Logger:      log,
		CORSOrigins: cfg.Server.CORSOrigins,
	})

	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
