package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"visit-schedule-service/internal/adapters/cache"
	"visit-schedule-service/internal/adapters/googlemaps"
	"visit-schedule-service/internal/adapters/repositories"
	"visit-schedule-service/internal/api"
	"visit-schedule-service/internal/config"
	"visit-schedule-service/internal/platform/db"
	"visit-schedule-service/internal/ports"
	"visit-schedule-service/internal/services"
	"visit-schedule-service/migrations"
)

// main is the application composition root.
// It wires concrete adapters (Postgres or SQLite, Redis, Google Maps) behind
// ports and starts the HTTP server.
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// storage groups the persistence adapters selected at startup.
type storage struct {
	db        *sql.DB
	places    ports.PlaceCache
	durations ports.DurationCache
	origins   ports.OriginRepository
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.db.Close()

	if cfg.RedisURL != "" {
		client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer closeRedis(client)
		st.durations = cache.NewRedisDurationCache(client, cfg.DurationCacheTTL)
		log.Printf("duration cache backend=redis ttl=%s", cfg.DurationCacheTTL)
	}

	planner := newPlanner(cfg, st)
	router := api.NewRouter(planner, cfg.CORSOrigins)

	// Timeouts are tuned for cold-cache recomputation (one oracle chain per leg).
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server listening addr=:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Println("Server stopped")
	return nil
}

// openStorage uses Postgres when DATABASE_URL is set and SQLite otherwise.
func openStorage(ctx context.Context, cfg config.Config) (storage, error) {
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return storage{}, err
		}
		if err := migrations.Up(ctx, conn); err != nil {
			conn.Close()
			return storage{}, err
		}
		log.Println("storage backend=postgres")
		return storage{
			db:        conn,
			places:    cache.NewSQLPlaceCache(conn),
			durations: cache.NewSQLDurationCache(conn, cfg.DurationCacheTTL),
			origins:   repositories.NewSQLOriginRepository(conn),
		}, nil
	}

	conn, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		return storage{}, err
	}
	if err := repositories.InitSchema(conn); err != nil {
		conn.Close()
		return storage{}, err
	}
	log.Printf("storage backend=sqlite path=%s", cfg.DBPath)
	return storage{
		db:        conn,
		places:    cache.NewSqlitePlaceCache(conn),
		durations: cache.NewSqliteDurationCache(conn, cfg.DurationCacheTTL),
		origins:   repositories.NewSqliteOriginRepository(conn),
	}, nil
}

// newPlanner wires the services. Without an API key the oracle collaborators
// stay nil: text is used verbatim and every leg is reported unavailable.
func newPlanner(cfg config.Config, st storage) *services.Planner {
	var (
		geocoder   ports.Geocoder
		finder     ports.PlaceFinder
		directions ports.DirectionsProvider
		matrix     ports.DistanceMatrixProvider
	)

	client := googlemaps.NewClient(cfg.GoogleMapsAPIKey, googlemaps.Options{
		BaseURL:  cfg.MapsBaseURL,
		Language: cfg.MapsLanguage,
		Timeout:  cfg.OracleTimeout,
	})
	if client.Configured() {
		geocoder, finder, directions, matrix = client, client, client, client
	} else {
		log.Println("GOOGLE_MAPS_API_KEY is not set: durations will be unavailable")
	}

	resolver := services.NewLocationResolver(geocoder, finder, st.places, cfg.OracleTimeout)

	var oracle services.DurationLookup
	if directions != nil {
		oracle = services.NewDurationOracle(directions, matrix, st.durations, cfg.OracleTimeout)
	}

	return services.NewPlanner(
		services.NewSessionStore(),
		services.NewTimelineEngine(resolver, oracle),
		services.NewCandidateSelector(directions, cfg.OracleTimeout),
		resolver,
		st.origins,
	)
}

func closeRedis(client *redis.Client) {
	if err := client.Close(); err != nil {
		log.Printf("redis close failed: %v", err)
	}
}
