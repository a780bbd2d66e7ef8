package restserver

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/chrissnell/bikeshare/internal/chart"
	"github.com/chrissnell/bikeshare/internal/dashboard"
	"github.com/chrissnell/bikeshare/internal/log"
	"github.com/chrissnell/bikeshare/pkg/config"
)

// Controller represents the REST server controller
type Controller struct {
	ctx          context.Context
	wg           *sync.WaitGroup
	serverConfig config.ServerData
	Server       http.Server
	FS           fs.FS
	Dashboard    *dashboard.Dashboard
	Renderer     *chart.Renderer
	handlers     *Handlers
}

// NewController creates a new REST server controller
func NewController(ctx context.Context, wg *sync.WaitGroup, sc config.ServerData, dash *dashboard.Dashboard) (*Controller, error) {
	if dash == nil {
		return nil, fmt.Errorf("REST server needs a dashboard")
	}

	if sc.ListenAddr == "" {
		log.Info("server.listen-addr not provided; defaulting to 0.0.0.0 (all interfaces)")
		sc.ListenAddr = config.DefaultListenAddr
	}
	if sc.Port == 0 {
		log.Infof("server.port not provided; defaulting to %d", config.DefaultPort)
		sc.Port = config.DefaultPort
	}

	ctrl := &Controller{
		ctx:          ctx,
		wg:           wg,
		serverConfig: sc,
		FS:           GetAssets(),
		Dashboard:    dash,
		Renderer:     chart.NewRenderer(),
	}
	ctrl.Renderer.NoDataText = dash.NoDataText()
	ctrl.handlers = NewHandlers(ctrl)

	ctrl.Server.Addr = fmt.Sprintf("%v:%v", sc.ListenAddr, sc.Port)
	ctrl.Server.Handler = ctrl.Handler()
	ctrl.Server.ReadHeaderTimeout = 10 * time.Second

	return ctrl, nil
}

// StartController starts the REST server
func (c *Controller) StartController() error {
	log.Infof("Starting REST server on %s", c.Server.Addr)
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		if c.serverConfig.Cert != "" && c.serverConfig.Key != "" {
			if err := c.Server.ListenAndServeTLS(c.serverConfig.Cert, c.serverConfig.Key); err != http.ErrServerClosed {
				log.Errorf("REST server error: %v", err)
			}
		} else {
			if err := c.Server.ListenAndServe(); err != http.ErrServerClosed {
				log.Errorf("REST server error: %v", err)
			}
		}
	}()

	go func() {
		<-c.ctx.Done()
		log.Info("Shutting down the REST server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c.Server.Shutdown(shutdownCtx)
	}()

	return nil
}

// Handler returns the complete HTTP handler: router plus middleware
func (c *Controller) Handler() http.Handler {
	router := c.setupRouter()
	return handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{}),
		handlers.PrintRecoveryStack(true),
	)(handlers.CompressHandler(router))
}

// setupRouter configures the HTTP router with all endpoints
func (c *Controller) setupRouter() *mux.Router {
	router := mux.NewRouter()
	router.Use(requestLogger)

	router.HandleFunc("/api/dashboard", c.handlers.GetDashboard).Methods(http.MethodGet)
	router.HandleFunc("/api/options", c.handlers.GetOptions).Methods(http.MethodGet)
	router.HandleFunc("/chart/{panel:[a-z-]+}.{format:png|svg}", c.handlers.GetChart).Methods(http.MethodGet)
	router.HandleFunc("/healthz", c.handlers.GetHealth).Methods(http.MethodGet)

	router.HandleFunc("/", c.handlers.ServeIndexTemplate).Methods(http.MethodGet)

	router.PathPrefix("/static/").Handler(http.FileServer(http.FS(c.FS)))

	return router
}
