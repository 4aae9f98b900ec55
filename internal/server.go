package internal

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/2beens/trainerdash/internal/auth"
	"github.com/2beens/trainerdash/internal/cache"
	"github.com/2beens/trainerdash/internal/config"
	"github.com/2beens/trainerdash/internal/dashboard"
	"github.com/2beens/trainerdash/internal/middleware"
	"github.com/2beens/trainerdash/internal/syncer"
	"github.com/2beens/trainerdash/internal/telemetry/metrics"
	"github.com/2beens/trainerdash/internal/telemetry/tracing"
	"github.com/2beens/trainerdash/pkg"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

type autoSyncer interface {
	AutoSync(ctx context.Context, maxAge time.Duration) (*syncer.Result, error)
}

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config     *config.Config
	components *Components
	handler    *dashboard.Handler

	// background auto sync
	autoSyncCancel context.CancelFunc
	autoSyncDone   sync.WaitGroup

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config      *config.Config
	VersionInfo string
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	promRegistry := metrics.SetupPrometheus()
	metricsManager := metrics.NewManager("trainerdash", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	components, err := NewComponents(ctx, params.Config, metricsManager)
	if err != nil {
		return nil, err
	}

	promRegistry.MustRegister(pgxpoolprometheus.NewCollector(
		components.DBPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	))

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.Config.HoneycombEnabled, "trainerdash-backend", components.RedisClient)
	if err != nil {
		components.Close()
		return nil, err
	}

	handler := dashboard.NewHandler(dashboard.HandlerParams{
		Store:         components.Store,
		Syncer:        components.Orchestrator,
		Analyzer:      components.Analyzer,
		OAuth:         components.TokenManager,
		States:        auth.NewStateService(auth.DefaultStateTTL, components.RedisClient),
		Sessions:      components.Sessions,
		RecordsCache:  cache.NewRecordsCache(20, params.Config.RecordsCacheExpire()),
		DashboardURL:  params.Config.DashboardURL,
		DefaultMaxAge: params.Config.AutoSyncMaxAge(),
		VersionInfo:   params.VersionInfo,
	})

	return &Server{
		config:      params.Config,
		components:  components,
		handler:     handler,
		versionInfo: params.VersionInfo,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	s.handler.SetupRoutes(r)

	// sync routes call strava, keep them behind a per client rate limit
	syncRouter := r.PathPrefix("/sync").Subrouter()
	s.handler.SetupSyncRoutes(syncRouter)
	syncRouter.Use(middleware.RateLimit(
		redis_rate.NewLimiter(s.components.RedisClient),
		"sync",
		s.config.SyncAllowedPerMin,
		s.metricsManager,
	))

	// all the rest - unhandled paths
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteJSONError(w, http.StatusNotFound, "not found")
	})

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.components.Sessions)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(authMiddleware.SessionCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:     router,
		Addr:        ipAndPort,
		ReadTimeout: time.Minute,
		// syncs with a long activities history can take a while
		WriteTimeout: 11 * time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	if s.config.AutoSyncEnabled {
		autoSyncCtx, cancel := context.WithCancel(ctx)
		s.autoSyncCancel = cancel
		s.autoSyncDone.Add(1)
		go func() {
			defer s.autoSyncDone.Done()
			runAutoSync(autoSyncCtx, s.handler, s.config.AutoSyncInterval(), s.config.AutoSyncMaxAge())
		}()
	}

	s.metricsManager.GaugeLifeSignal.Set(1)
}

// runAutoSync triggers an auto sync on every tick until ctx is done.
func runAutoSync(ctx context.Context, autoSync autoSyncer, interval, maxAge time.Duration) {
	log.Infof("auto sync every %s, max data age %s", interval, maxAge)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debugln("auto sync stopped")
			return
		case <-ticker.C:
			autoSyncOnce(ctx, autoSync, maxAge)
		}
	}
}

func autoSyncOnce(ctx context.Context, autoSync autoSyncer, maxAge time.Duration) {
	result, err := autoSync.AutoSync(ctx, maxAge)
	switch {
	case errors.Is(err, syncer.ErrMissingSession), errors.Is(err, syncer.ErrMissingAthleteID):
		log.Debugf("auto sync skipped: %s", err)
	case errors.Is(err, syncer.ErrSyncInProgress):
		log.Debugln("auto sync skipped, sync in progress")
	case err != nil:
		log.Errorf("auto sync: %s", err)
	case result == nil:
		log.Tracef("auto sync: data fresh")
	default:
		log.WithField("run_id", result.RunID).Infof("auto sync done, success: %t, errors: %d", result.Success, len(result.Errors))
	}
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	if s.autoSyncCancel != nil {
		s.autoSyncCancel()
		s.autoSyncDone.Wait()
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	s.components.Close()

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
