package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/2beens/coachdesk/internal/apierror"
	"github.com/2beens/coachdesk/internal/config"
	"github.com/2beens/coachdesk/internal/db"
	"github.com/2beens/coachdesk/internal/health"
	"github.com/2beens/coachdesk/internal/middleware"
	"github.com/2beens/coachdesk/internal/profiles"
	"github.com/2beens/coachdesk/internal/programs"
	"github.com/2beens/coachdesk/internal/sessions"
	"github.com/2beens/coachdesk/internal/telemetry/metrics"
	"github.com/2beens/coachdesk/internal/telemetry/tracing"
)

const apiRouterName = "api-v1"

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config      *config.Config
	connManager *db.ConnectionManager
	redisClient *redis.Client
	rateLimiter middleware.RequestRateLimiter

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config      *config.Config
	VersionInfo string
}

// NewServer prepares the database (migrations, startup check, connection
// profile) and the redis backed caches. It fails when the database cannot be
// reached at startup.
func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	promRegistry := metrics.SetupPrometheus()
	metricsManager := metrics.NewManager("coachdesk", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	if cfg.RunMigrations {
		if err := db.RunMigrations(cfg.DatabaseURL); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	connManager := db.NewConnectionManager(
		db.PoolDialer(db.NewDBPoolParams{
			ConnString:     cfg.DatabaseURL,
			MaxConns:       cfg.DBMaxConns,
			TracingEnabled: cfg.Secrets.HoneycombEnabled,
		}),
		metricsManager,
	)
	if _, err := db.ValidateConnection(ctx, connManager); err != nil {
		return nil, err
	}

	// the collector reads the latest pool, so it is registered once connected
	promRegistry.MustRegister(pgxpoolprometheus.NewCollector(
		connManager,
		map[string]string{"db_name": "coachdesk"},
	))

	profile := cfg.ConnectionProfile
	if err := health.NewRepo(connManager).UpsertProfile(ctx, health.Profile{
		Environment:           profile.Environment,
		Host:                  profile.Host,
		Port:                  profile.Port,
		Schema:                profile.Schema,
		CredentialRef:         profile.CredentialRef,
		RotationIntervalHours: profile.RotationIntervalHours,
	}); err != nil {
		log.Errorf("failed to upsert connection profile [%s]: %s", profile.Environment, err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: cfg.Secrets.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(cfg.Secrets.HoneycombEnabled, "coachdesk-api", rdb)
	if err != nil {
		return nil, err
	}

	return &Server{
		versionInfo:    params.VersionInfo,
		config:         cfg,
		connManager:    connManager,
		redisClient:    rdb,
		rateLimiter:    redis_rate.NewLimiter(rdb),
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) retryPolicy() db.RetryPolicy {
	return db.RetryPolicy{
		Retries:    s.config.Retry.Retries,
		MinTimeout: s.config.Retry.MinTimeout(),
		MaxTimeout: s.config.Retry.MaxTimeout(),
		Factor:     s.config.Retry.Factor,
	}
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))
	r.Use(middleware.CorrelationID())
	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(middleware.DrainAndCloseRequest())

	healthService := health.NewService(health.ServiceParams{
		Prober:         s.connManager,
		Repo:           health.NewRepo(s.connManager),
		Environment:    s.config.ConnectionProfile.Environment,
		RetryPolicy:    s.retryPolicy(),
		MetricsManager: s.metricsManager,
	})
	healthHandler := health.NewHandler(healthService, s.connManager)
	r.HandleFunc("/health/db", healthHandler.HandleDatabase).Methods("GET", "OPTIONS").Name("health-db")
	r.HandleFunc("/health/ready", healthHandler.HandleReady).Methods("GET", "OPTIONS").Name("health-ready")
	r.HandleFunc("/health/events", healthHandler.HandleEvents).Methods("GET", "OPTIONS").Name("health-events")

	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.NewAdminAuthHandler(s.config.Secrets.AdminTokenHash).AuthCheck())
	admin.HandleFunc("/db/reload", healthHandler.HandleReload).Methods("POST", "OPTIONS").Name("admin-db-reload")

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Actor(s.config.DefaultActorID))
	api.Use(middleware.RateLimit(s.rateLimiter, s.metricsManager, apiRouterName, s.config.WriteRateLimitPerMin))

	profilesHandler := profiles.NewHandler(
		profiles.NewService(profiles.NewRepo(s.connManager), s.config.ProfileCacheSizeMB, s.retryPolicy()),
	)
	api.HandleFunc("/profiles/{athleteId}", profilesHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-profile")

	programsHandler := programs.NewHandler(
		programs.NewService(programs.NewRepo(s.connManager), s.redisClient, s.config.ProgramCacheTTL(), s.retryPolicy()),
	)
	api.HandleFunc("/programs/{athleteId}/current", programsHandler.HandleGetCurrent).Methods("GET", "OPTIONS").Name("get-current-program")

	sessionsService := sessions.NewService(sessions.NewRepo(s.connManager), s.retryPolicy(), s.metricsManager)
	sessionsHandler := sessions.NewHandler(sessionsService, sessions.NewAnalyzer(sessionsService))
	api.HandleFunc("/sessions", sessionsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-sessions")
	api.HandleFunc("/sessions", sessionsHandler.HandleCreate).Methods("POST", "OPTIONS").Name("create-session")
	api.HandleFunc("/sessions/{id}", sessionsHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-session")
	api.HandleFunc("/sessions/{id}", sessionsHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-session")
	api.HandleFunc("/sessions/{id}/status", sessionsHandler.HandleUpdateStatus).Methods("PATCH", "OPTIONS").Name("update-session-status")
	api.HandleFunc("/metrics/completion", sessionsHandler.HandleCompletion).Methods("GET", "OPTIONS").Name("completion-metrics")

	// all the rest - unhandled paths
	r.NotFoundHandler = middleware.CorrelationID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apierror.Write(w, middleware.CorrelationIDFrom(r.Context()), apierror.NotFound("NOT_FOUND", "Route not found."))
	}))

	return r
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s], version: [%s]", ipAndPort, s.versionInfo)
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

	s.metricsManager.GaugeLifeSignal.Set(1)
}

// GracefulShutdown stops taking requests first, then releases the database
// pool and the other backends.
func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")
	s.metricsManager.GaugeLifeSignal.Set(0)

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

	s.connManager.Disconnect(ctx, "shutdown")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}
