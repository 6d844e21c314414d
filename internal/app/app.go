package app

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shandysiswandi/gomdc/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/gomdc/internal/pkg/pkglog"
	"github.com/shandysiswandi/gomdc/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/gomdc/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/gomdc/internal/pkg/pkguid"
)

type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config pkgconfig.Config

	// libraries
	cid       pkguid.StringID
	snowflake pkguid.NumberID
	registry  *prometheus.Registry
	pool      *pkgroutine.Pool

	// resources

	// server
	router     *pkgrouter.Router
	httpServer *http.Server

	//
	closerFn map[string]func(context.Context) error
}

func New() *App {
	pkglog.InitLogging()

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initLibraries()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
