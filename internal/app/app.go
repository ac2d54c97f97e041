package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/hintsweeper/internal/config"
	"github.com/vancomm/hintsweeper/internal/loop"
	"github.com/vancomm/hintsweeper/internal/middleware"
	"github.com/vancomm/hintsweeper/internal/session"
)

const loopBacklog = 256

type App struct {
	log      *logrus.Logger
	config   *config.Config
	router   *mux.Router
	loop     *loop.Loop
	registry *session.Registry
	jwt      *config.JWT
	ws       *config.WebSocket
}

func New(log *logrus.Logger, cfg *config.Config) (*App, error) {
	j, err := config.NewJWT(cfg.JWT)
	if err != nil {
		return nil, err
	}

	l := loop.New(log.WithField("component", "loop"), loopBacklog)

	app := &App{
		log:    log,
		config: cfg,
		router: mux.NewRouter(),
		loop:   l,
		registry: session.NewRegistry(
			log.WithField("component", "session"),
			session.Options{
				MaxSessions:  cfg.Board.MaxSessions,
				UndoDepth:    cfg.Board.UndoDepth,
				HintDuration: cfg.Board.HintDuration,
				IdleTTL:      cfg.Board.IdleTTL,
				Scheduler:    l,
			},
		),
		jwt: j,
		ws:  config.NewWebSocket(),
	}
	app.loadRoutes()

	return app, nil
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Logging(a.log.WithField("component", "http")),
		middleware.Cors(a.config.CorsOrigins),
	)
}

// Start serves until ctx is cancelled or the server fails, then shuts down
// within the configured timeout.
func (a *App) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:    a.config.Addr,
		Handler: a.Handler(),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.loop.Run(gCtx)
	})
	g.Go(func() error {
		a.log.WithField("addr", a.config.Addr).Info("server listening")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("unable to listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.ShutdownTimeout)
		defer cancel()
		a.log.Info("shutting down")
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
