package internal

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/2beens/trainerdash/internal/config"
	"github.com/2beens/trainerdash/internal/db"
	"github.com/2beens/trainerdash/internal/records"
	"github.com/2beens/trainerdash/internal/session"
	"github.com/2beens/trainerdash/internal/store"
	"github.com/2beens/trainerdash/internal/strava"
	"github.com/2beens/trainerdash/internal/syncer"
	"github.com/2beens/trainerdash/internal/telemetry/metrics"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Components are the collaborators shared by the http service, the cli and the backup job.
type Components struct {
	DBPool       *pgxpool.Pool
	RedisClient  *redis.Client
	Store        *store.Store
	Sessions     *session.RedisRepository
	StravaClient *strava.Client
	TokenManager *strava.TokenManager
	Orchestrator *syncer.Orchestrator
	Analyzer     *records.Analyzer
}

func NewComponents(
	ctx context.Context,
	cfg *config.Config,
	metricsManager *metrics.Manager,
) (*Components, error) {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         cfg.PostgresUser,
		DBPassword:     cfg.PostgresPassword,
		TracingEnabled: cfg.HoneycombEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	// store calls cannot succeed without the schema, so an unreachable db fails startup
	if err := dbPool.Ping(ctx); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	if err := db.Migrate(ctx, dbPool); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("migrate db: %w", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	sessions, err := session.NewRedisRepository(rdb, cfg.SessionSecret)
	if err != nil {
		dbPool.Close()
		_ = rdb.Close()
		return nil, fmt.Errorf("new session repository: %w", err)
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   strava.DefaultHTTPTimeout,
	}

	stravaClient := strava.NewClient(strava.ClientConfig{
		BaseURL:     cfg.StravaBaseURL,
		PageSize:    cfg.StravaPageSize,
		PageDelay:   cfg.StravaPageDelay(),
		MaxAttempts: cfg.StravaMaxAttempts,
	}, tracedHttpClient, metricsManager)

	tokenManager := strava.NewTokenManager(strava.OAuthConfig{
		ClientID:     cfg.StravaClientID,
		ClientSecret: cfg.StravaClientSecret,
		RedirectURL:  cfg.StravaRedirectURL,
		AuthURL:      cfg.StravaAuthURL,
		TokenURL:     cfg.StravaTokenURL,
	}, tracedHttpClient)

	documentStore := store.NewStore(dbPool)

	return &Components{
		DBPool:       dbPool,
		RedisClient:  rdb,
		Store:        documentStore,
		Sessions:     sessions,
		StravaClient: stravaClient,
		TokenManager: tokenManager,
		Orchestrator: syncer.NewOrchestrator(stravaClient, tokenManager, sessions, documentStore, metricsManager),
		Analyzer:     records.NewAnalyzer(documentStore),
	}, nil
}

func (c *Components) Close() {
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if c.DBPool != nil {
		log.Debugln("closing db pool ...")
		c.DBPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}
}
