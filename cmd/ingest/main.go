package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/panjf2000/ants/v2"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/gislobo/matchvault/external/apifootball"
	"github.com/gislobo/matchvault/external/geocode"
	"github.com/gislobo/matchvault/internal/config"
	"github.com/gislobo/matchvault/internal/infrastructure/repository/postgres"
	"github.com/gislobo/matchvault/internal/platform/logging"
	"github.com/gislobo/matchvault/internal/usecase"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := otelsqlx.Connect("postgres", cfg.DBURL,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL))
	if err != nil {
		logger.Error("connect database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()
	db.SetMaxOpenConns(cfg.IngestConcurrency * 2)

	store := postgres.NewStore(db)

	client := apifootball.NewClient(apifootball.ClientConfig{
		HTTPClient:       &http.Client{Timeout: cfg.APIFootballTimeout},
		BaseURL:          cfg.APIFootballBaseURL,
		APIKey:           cfg.APIFootballKey,
		MaxRetries:       cfg.APIFootballMaxRetries,
		Logger:           logger,
		FailureThreshold: cfg.APIFootballCircuitFailures,
		OpenTimeout:      cfg.APIFootballCircuitOpenWindow,
	})

	geocoder := geocode.NewNominatim(geocode.NominatimConfig{
		BaseURL:   cfg.NominatimBaseURL,
		UserAgent: cfg.NominatimUserAgent,
		Logger:    logger,
	})

	resolver := usecase.NewResolverService(geocoder, cfg.Overrides(), logger)
	ingestion, err := usecase.NewIngestionService(store, client, resolver, cfg.MarketTimezone, logger)
	if err != nil {
		logger.Error("build ingestion service", "error", err)
		os.Exit(1)
	}

	switch cmd := strings.ToLower(strings.TrimSpace(os.Args[1])); cmd {
	case "fixtures":
		ids, err := parseFixtureIDs(os.Args[2:])
		if err != nil {
			logger.Error("parse fixture ids", "error", err)
			os.Exit(2)
		}
		if failed := ingestFixtures(ctx, ingestion, logger, cfg.IngestConcurrency, ids); failed > 0 {
			logger.Error("ingestion finished with failures", "failed", failed, "total", len(ids))
			os.Exit(1)
		}
	case "repair-substitutes":
		flipped, err := ingestion.RepairSubstituteFlags(ctx)
		if err != nil {
			logger.Error("repair substitute flags", "error", err)
			os.Exit(1)
		}
		logger.Info("repair complete", "flipped", flipped)
	default:
		printUsage()
		os.Exit(2)
	}
}

func ingestFixtures(ctx context.Context, ingestion *usecase.IngestionService, logger *logging.Logger, concurrency int, ids []int64) int {
	workers, err := ants.NewPool(concurrency)
	if err != nil {
		logger.Error("create worker pool", "error", err)
		return len(ids)
	}
	defer workers.Release()

	var wg sync.WaitGroup
	var failed atomic.Int64

	for _, id := range ids {
		wg.Add(1)
		submitErr := workers.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				failed.Add(1)
				return
			}
			if err := ingestion.IngestFixture(ctx, id); err != nil {
				logger.ErrorContext(ctx, "ingest fixture failed", "fixture", id, "error", err)
				failed.Add(1)
			}
		})
		if submitErr != nil {
			wg.Done()
			logger.Error("submit fixture", "fixture", id, "error", submitErr)
			failed.Add(1)
		}
	}
	wg.Wait()

	return int(failed.Load())
}

func parseFixtureIDs(args []string) ([]int64, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("at least one fixture id is required")
	}

	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		for _, field := range strings.FieldsFunc(arg, func(r rune) bool { return r == ',' }) {
			id, err := strconv.ParseInt(strings.TrimSpace(field), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid fixture id %q: %w", field, err)
			}
			if id <= 0 {
				return nil, fmt.Errorf("fixture id must be > 0, got %d", id)
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func printUsage() {
	fmt.Println("usage:")
	fmt.Println("  ingest fixtures <id> [id ...]    load fixtures by provider id")
	fmt.Println("  ingest repair-substitutes        flip substitute flags from substitution events")
}
