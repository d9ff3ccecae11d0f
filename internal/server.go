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
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/multierr"

	"github.com/2beens/fitxp/internal/auth"
	"github.com/2beens/fitxp/internal/calendar"
	"github.com/2beens/fitxp/internal/config"
	"github.com/2beens/fitxp/internal/db"
	"github.com/2beens/fitxp/internal/docstore"
	"github.com/2beens/fitxp/internal/entries"
	"github.com/2beens/fitxp/internal/middleware"
	"github.com/2beens/fitxp/internal/nutrition"
	"github.com/2beens/fitxp/internal/profile"
	"github.com/2beens/fitxp/internal/progression"
	"github.com/2beens/fitxp/internal/recipes"
	"github.com/2beens/fitxp/internal/streak"
	"github.com/2beens/fitxp/internal/telemetry/metrics"
	"github.com/2beens/fitxp/internal/telemetry/tracing"
	"github.com/2beens/fitxp/internal/weights"
	"github.com/2beens/fitxp/internal/xp"
	"github.com/2beens/fitxp/pkg"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config      *config.Config
	clock       calendar.Clock
	dbPool      *pgxpool.Pool
	store       docstore.Store
	redisClient *redis.Client

	authService    *auth.Service
	sessionJanitor *auth.SessionJanitor
	nutrition      *nutrition.Client

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	JWTSecret               string
	RedisPassword           string
	NutritionixAppID        string
	NutritionixAPIKey       string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	var (
		dbPool     *pgxpool.Pool
		store      docstore.Store
		collectors []prometheus.Collector
	)
	switch cfg.Storage {
	case config.StorageMemory:
		log.Warnln("using in-memory document store, nothing will be persisted")
		store = docstore.NewMemoryStore()
	default:
		var err error
		dbPool, err = db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         cfg.PostgresHost,
			DBPort:         cfg.PostgresPort,
			DBName:         cfg.PostgresDBName,
			TracingEnabled: params.HoneycombTracingEnabled,
		})
		if err != nil {
			return nil, fmt.Errorf("new db pool: %w", err)
		}

		if err := dbPool.Ping(ctx); err != nil {
			log.Warnf("failed to ping db: %s", err)
		}

		psqlStore := docstore.NewPsqlStore(dbPool)
		if err := psqlStore.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("migrate document store: %w", err)
		}
		store = psqlStore

		collectors = append(collectors, pgxpoolprometheus.NewCollector(
			dbPool,
			map[string]string{"db_name": cfg.PostgresDBName},
		))
	}

	promRegistry := metrics.SetupPrometheus(collectors...)
	metricsManager := metrics.NewManager("fitxp", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "fitxp-backend", rdb)
	if err != nil {
		return nil, err
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   15 * time.Second,
	}

	if params.JWTSecret == "" {
		return nil, errors.New("jwt secret not set")
	}

	clock := calendar.SystemClock{Location: cfg.Location()}
	authService := auth.NewService(
		store,
		rdb,
		profile.NewRepo(store),
		params.JWTSecret,
		cfg.SessionTTL.Duration,
		clock,
	)

	return &Server{
		versionInfo: params.VersionInfo,
		config:      cfg,
		clock:       clock,
		dbPool:      dbPool,
		store:       store,
		redisClient: rdb,

		authService:    authService,
		sessionJanitor: auth.NewSessionJanitor(authService, cfg.SessionCleanInterval.Duration),
		nutrition: nutrition.NewClient(
			cfg.NutritionBaseURL,
			params.NutritionixAppID,
			params.NutritionixAPIKey,
			cfg.NutritionCacheMB,
			tracedHttpClient,
		),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	r.HandleFunc("/", s.handleVersion).Methods("GET").Name("root")
	r.HandleFunc("/version", s.handleVersion).Methods("GET").Name("version")

	profiles := profile.NewRepo(s.store)
	ledger := xp.NewLedger(s.store, s.config.LedgerScanLimit)
	entriesRepo := entries.NewRepo(s.store)
	streaks := streak.NewCalculator(entriesRepo, s.config.StreakWindow)
	engine := progression.NewEngine(profiles, ledger, streaks, entriesRepo, s.metricsManager)
	entriesService := entries.NewService(entriesRepo, engine, s.metricsManager)

	authHandler := auth.NewHandler(s.authService)
	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	loginRateLimit := middleware.RateLimit(
		reqRateLimiter,
		"login",
		s.config.LoginRateLimitAllowedPerMin,
		s.metricsManager,
	)
	r.HandleFunc("/a/register", authHandler.HandleRegister).Methods("POST", "OPTIONS").Name("register")
	r.Handle("/a/login", loginRateLimit(http.HandlerFunc(authHandler.HandleLogin))).Methods("POST", "OPTIONS").Name("login")
	r.HandleFunc("/a/logout", authHandler.HandleLogout).Methods("POST", "OPTIONS").Name("logout")
	r.HandleFunc("/a/refresh", authHandler.HandleRefresh).Methods("POST", "OPTIONS").Name("refresh")

	progressionHandler := progression.NewHandler(engine, profiles, ledger, streaks, s.clock)
	r.HandleFunc("/profile", progressionHandler.HandleGetProfile).Methods("GET", "OPTIONS").Name("get-profile")
	r.HandleFunc("/profile", progressionHandler.HandleUpdateSettings).Methods("PATCH", "OPTIONS").Name("update-profile")
	r.HandleFunc("/profile/progress", progressionHandler.HandleGetProgress).Methods("GET", "OPTIONS").Name("get-progress")
	r.HandleFunc("/profile/prestige", progressionHandler.HandlePrestige).Methods("POST", "OPTIONS").Name("prestige")
	r.HandleFunc("/streak/{date}", progressionHandler.HandleGetStreak).Methods("GET", "OPTIONS").Name("get-streak")
	r.HandleFunc("/xp/events", progressionHandler.HandleListEvents).Methods("GET", "OPTIONS").Name("list-xp-events")

	entriesHandler := entries.NewHandler(entriesService)
	r.HandleFunc("/entries", entriesHandler.HandleList).Methods("GET", "OPTIONS").Name("list-entries")
	r.HandleFunc("/entries", entriesHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-entry")
	r.HandleFunc("/entries/{id}", entriesHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-entry")
	r.HandleFunc("/entries/{id}", entriesHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-entry")
	r.HandleFunc("/entries/date/{date}/totals", entriesHandler.HandleDayTotals).Methods("GET", "OPTIONS").Name("day-totals")

	weightsHandler := weights.NewHandler(
		weights.NewService(weights.NewRepo(s.store), engine, s.metricsManager),
	)
	r.HandleFunc("/weights", weightsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-weights")
	r.HandleFunc("/weights", weightsHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-weight")
	r.HandleFunc("/weights/{id}", weightsHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-weight")
	r.HandleFunc("/weights/{id}", weightsHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-weight")
	r.HandleFunc("/weights/date/{date}", weightsHandler.HandleGetByDate).Methods("GET", "OPTIONS").Name("get-weight-by-date")

	recipesHandler := recipes.NewHandler(
		recipes.NewService(recipes.NewRepo(s.store), entriesService),
	)
	r.HandleFunc("/recipes", recipesHandler.HandleList).Methods("GET", "OPTIONS").Name("list-recipes")
	r.HandleFunc("/recipes", recipesHandler.HandleCreate).Methods("POST", "OPTIONS").Name("new-recipe")
	r.HandleFunc("/recipes/{id}", recipesHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-recipe")
	r.HandleFunc("/recipes/{id}/log", recipesHandler.HandleLogServing).Methods("POST", "OPTIONS").Name("log-recipe")

	nutritionHandler := nutrition.NewHandler(s.nutrition)
	r.HandleFunc("/nutrition/search", nutritionHandler.HandleSearch).Methods("GET", "OPTIONS").Name("search-food")
	r.HandleFunc("/nutrition/nutrients", nutritionHandler.HandleNutrients).Methods("POST", "OPTIONS").Name("food-nutrients")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteJSONError(w, http.StatusNotFound, "not found")
	}).Methods("GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.authService)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteJSON(w, http.StatusOK, map[string]string{
		"service": "fitxp",
		"version": s.versionInfo,
	})
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      s.routerSetup(),
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
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

	s.sessionJanitor.Start(ctx)
	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	if s.sessionJanitor != nil {
		s.sessionJanitor.Stop()
		log.Trace("session janitor stopped ...")
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	var shutdownErr error
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			shutdownErr = multierr.Append(shutdownErr, fmt.Errorf("http server: %w", err))
		} else {
			log.Warnln("server shut down")
		}
	}
	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			shutdownErr = multierr.Append(shutdownErr, fmt.Errorf("metrics http server: %w", err))
		} else {
			log.Warnln("metrics server shut down")
		}
	}

	if s.otelShutdown != nil {
		s.otelShutdown()
		log.Trace("otel shut down ...")
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			shutdownErr = multierr.Append(shutdownErr, fmt.Errorf("redis client: %w", err))
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	for _, err := range multierr.Errors(shutdownErr) {
		log.Errorf(" >>> graceful shutdown: %s", err)
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}
