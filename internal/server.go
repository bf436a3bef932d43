package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/lucasmr/fitdiario/internal/config"
	"github.com/lucasmr/fitdiario/internal/diet"
	"github.com/lucasmr/fitdiario/internal/home"
	"github.com/lucasmr/fitdiario/internal/middleware"
	"github.com/lucasmr/fitdiario/internal/persistence"
	"github.com/lucasmr/fitdiario/internal/telemetry/metrics"
	"github.com/lucasmr/fitdiario/internal/training"
	"github.com/lucasmr/fitdiario/internal/water"
	"github.com/lucasmr/fitdiario/internal/weight"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config *config.Config
	store  *persistence.FileStore

	dietStore     *diet.Store
	waterStore    *water.Store
	trainingStore *training.Store
	weightStore   *weight.Store

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
}

type NewServerParams struct {
	Config      *config.Config
	VersionInfo string
}

func NewServer(params NewServerParams) (*Server, error) {
	store, err := persistence.NewFileStore(params.Config.StorePath)
	if err != nil {
		return nil, fmt.Errorf("new file store: %w", err)
	}

	promRegistry := metrics.SetupPrometheus()
	metricsManager := metrics.NewManager("fitdiario", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	s := &Server{
		config:      params.Config,
		versionInfo: params.VersionInfo,
		store:       store,

		dietStore:     diet.NewStore(store),
		waterStore:    water.NewStore(store),
		trainingStore: training.NewStore(store),
		weightStore:   weight.NewStore(store),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
	}

	return s, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	dietHandler := diet.NewHandler(s.dietStore, s.metricsManager)
	dietHandler.SetupRoutes(r)

	waterHandler := water.NewHandler(s.waterStore, s.metricsManager)
	waterHandler.SetupRoutes(r)

	trainingHandler := training.NewHandler(s.trainingStore, s.metricsManager)
	trainingHandler.SetupRoutes(r)

	weightHandler := weight.NewHandler(s.weightStore, s.metricsManager)
	weightHandler.SetupRoutes(r)

	homeHandler := home.NewHandler(home.NewAggregator(
		s.dietStore,
		s.waterStore,
		s.trainingStore,
		s.weightStore,
	))
	homeHandler.SetupRoutes(r)

	r.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(s.versionInfo))
	}).Methods("GET").Name("version")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(_ context.Context, host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.MetricsHost, strconv.Itoa(s.config.MetricsPort))
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

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if err := s.store.Flush(ctx); err != nil {
		log.Errorf("failed to flush store: %s", err)
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")

	if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown metrics http server")
	}
	log.Warnln("metrics server shut down")
}
