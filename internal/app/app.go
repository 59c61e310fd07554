package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/omarvega/rescuehq/external/marvel"
	"github.com/omarvega/rescuehq/external/renderpdf"
	"github.com/omarvega/rescuehq/internal/config"
	"github.com/omarvega/rescuehq/internal/domain/character"
	"github.com/omarvega/rescuehq/internal/domain/team"
	cacherepo "github.com/omarvega/rescuehq/internal/infrastructure/repository/cache"
	"github.com/omarvega/rescuehq/internal/infrastructure/repository/memory"
	"github.com/omarvega/rescuehq/internal/infrastructure/repository/postgres"
	"github.com/omarvega/rescuehq/internal/interfaces/httpapi"
	"github.com/omarvega/rescuehq/internal/platform/cache"
	"github.com/omarvega/rescuehq/internal/platform/logging"
	"github.com/omarvega/rescuehq/internal/platform/resilience"
	"github.com/omarvega/rescuehq/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	otelsqlx "github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
)

func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, func() error, error) {
	characterRepo, teamRepo, closeDB, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	characterSvc := usecase.NewCharacterService(characterRepo, teamRepo, logger)
	teamSvc := usecase.NewTeamService(teamRepo, characterRepo, logger)

	marvelClient := marvel.NewClient(marvel.ClientConfig{
		BaseURL:    cfg.MarvelBaseURL,
		PublicKey:  cfg.MarvelPublicKey,
		PrivateKey: cfg.MarvelPrivateKey,
		Timeout:    cfg.MarvelTimeout,
		MaxRetries: cfg.MarvelMaxRetries,
		Logger:     logging.Default(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.MarvelCircuitEnabled,
			FailureThreshold: cfg.MarvelCircuitFailureCount,
			OpenTimeout:      cfg.MarvelCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.MarvelCircuitHalfOpenMaxReq,
		},
	})

	rendererClient := renderpdf.NewClient(renderpdf.ClientConfig{
		BaseURL: cfg.PDFRendererBaseURL,
		Timeout: cfg.PDFRendererTimeout,
		Logger:  logging.Default(),
	})

	var searchCache *cache.Store
	if cfg.CacheEnabled {
		searchCache = cache.NewStore(cfg.CacheTTL)
	}

	catalogSvc := usecase.NewCatalogService(marvelClient, rendererClient, searchCache, logger)

	handler := httpapi.NewHandler(characterSvc, teamSvc, catalogSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		closeDB()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, func() error { closeDB(); return nil }, nil
}

// buildRepositories picks the storage backend. Without DB_URL the service
// runs on the seeded in-memory roster.
func buildRepositories(cfg config.Config, logger *slog.Logger) (character.Repository, team.Repository, func(), error) {
	if cfg.DBURL == "" {
		logger.Info("storage backend", "driver", "memory")
		characterRepo := memory.NewCharacterRepository(memory.SeedCharacters())
		teamRepo := memory.NewTeamRepository(memory.SeedTeams(), characterRepo)
		return characterRepo, teamRepo, func() {}, nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open database: %w", err)
	}

	logger.Info("storage backend", "driver", "postgres", "database", dbNameFromURL(cfg.DBURL))

	var (
		characterRepo character.Repository = postgres.NewCharacterRepository(db)
		teamRepo      team.Repository      = postgres.NewTeamRepository(db)
	)
	if cfg.CacheEnabled {
		store := cache.NewStore(cfg.CacheTTL)
		characterRepo = cacherepo.NewCharacterRepository(characterRepo, store)
		teamRepo = cacherepo.NewTeamRepository(teamRepo, store)
	}

	return characterRepo, teamRepo, func() { _ = db.Close() }, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithDBName(dbNameFromURL(dbURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}
