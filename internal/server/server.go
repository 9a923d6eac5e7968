// Package server exposes the storybook pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/thywilljoshua/storyviz/internal/ai"
	"github.com/thywilljoshua/storyviz/internal/config"
	"github.com/thywilljoshua/storyviz/internal/storybook"
)

const shutdownTimeout = 10 * time.Second

// Deps are the long-lived collaborators shared by every request.
type Deps struct {
	Loader  storybook.Loader
	Text    ai.TextModel
	Images  ai.ImageModel
	Limiter *rate.Limiter
}

type Server struct {
	engine *gin.Engine
	cfg    config.Config
	log    zerolog.Logger
}

func NewServer(cfg config.Config, deps Deps, log zerolog.Logger) (*Server, error) {
	if deps.Text == nil || deps.Images == nil {
		return nil, errors.New("server needs a text and an image model")
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestID())
	engine.Use(RequestLogger(log))
	engine.Use(MaxBodySize(cfg.MaxUploadBytes()))
	engine.Use(CORS())

	api := NewAPI(deps, log)
	registerRoutes(engine, api)

	return &Server{engine: engine, cfg: cfg, log: log}, nil
}

func (s *Server) Handler() http.Handler { return s.engine }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", s.cfg.Server.Port),
		Handler: s.engine,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}
