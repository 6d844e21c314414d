package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/shandysiswandi/gomdc/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/gomdc/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/gomdc/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/gomdc/internal/pkg/pkgtenant"
	"github.com/shandysiswandi/gomdc/internal/pkg/pkguid"
)

func (a *App) initConfig() {
	path := "/config/config.yaml"
	if os.Getenv("LOCAL") == "true" {
		path = "./config/config.yaml"
	}

	cfg, err := pkgconfig.NewViper(path)
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	//nolint:errcheck,gosec // ignore error
	os.Setenv("TZ", cfg.GetString("tz"))

	a.config = cfg
}

func (a *App) initLibraries() {
	a.cid = pkguid.NewCorrelation()

	snowflake, err := pkguid.NewSnowflake()
	if err != nil {
		slog.Error("failed to init snowflake", "error", err)
		os.Exit(1)
	}
	a.snowflake = snowflake

	a.registry = prometheus.NewRegistry()
	a.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	poolCfg, err := poolConfig(a.config)
	if err != nil {
		slog.Error("failed to init worker pool", "error", err)
		os.Exit(1)
	}
	poolCfg.Metrics = pkgroutine.NewMetrics(a.registry)

	a.pool = pkgroutine.NewPool(a.ctx, poolCfg)
	slog.Info("worker pool ready",
		"core_size", poolCfg.CoreSize,
		"max_size", poolCfg.MaxSize,
		"queue_capacity", poolCfg.QueueCapacity,
		"rejection", poolCfg.Rejection.String(),
	)
}

func poolConfig(cfg pkgconfig.Config) (pkgroutine.Config, error) {
	rejection, err := pkgroutine.ParseRejectPolicy(cfg.GetString("pool.rejection"))
	if err != nil {
		return pkgroutine.Config{}, err
	}

	return pkgroutine.Config{
		CoreSize:      int(cfg.GetInt("pool.core_size")),
		MaxSize:       int(cfg.GetInt("pool.max_size")),
		QueueCapacity: int(cfg.GetInt("pool.queue_capacity")),
		KeepAlive:     cfg.GetDuration("pool.keep_alive"),
		Rejection:     rejection,
		Decorator:     pkgroutine.PropagateContext,
	}, nil
}

// principalSource stands in for real authentication: every request runs as
// the principal configured under auth.principal, or anonymously when unset.
func principalSource(cfg pkgconfig.Config) pkgrouter.PrincipalSource {
	return pkgrouter.StaticPrincipal(pkgtenant.Info{
		UserID:   cfg.GetInt("auth.principal.user_id"),
		UserName: cfg.GetString("auth.principal.user_name"),
		RealmID:  cfg.GetInt("auth.principal.realm_id"),
		Role:     cfg.GetString("auth.principal.role"),
	})
}

func (a *App) initHTTPServer() {
	a.router = pkgrouter.NewRouter(a.cid, principalSource(a.config))
	a.router.Handle(http.MethodGet, "/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{pkgrouter.HeaderCorrelationID},
		AllowCredentials: true,
	})

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("server.address.http"),
		Handler:           corsHandler.Handler(a.router),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// initClosers registers resources released after the HTTP server and the
// worker pool, which Stop shuts down first and in that order.
func (a *App) initClosers() {
	if a.closerFn == nil {
		a.closerFn = map[string]func(context.Context) error{}
	}

	a.closerFn["Config"] = func(context.Context) error {
		return a.config.Close()
	}
}
