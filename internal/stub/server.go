// Package stub serves a local stand-in for the remote classification
// service, scoring text against the keyword table.
package stub

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Veraticus/biblio/internal/model"
	"github.com/Veraticus/biblio/internal/predictor"
	"github.com/Veraticus/biblio/internal/presenter"
)

const shutdownTimeout = 5 * time.Second

// Catalog supplies the titles returned by /suggest.
type Catalog interface {
	BooksByCategory(ctx context.Context, category model.Category) ([]model.Book, error)
}

type staticCatalog []model.Book

func (s staticCatalog) BooksByCategory(_ context.Context, category model.Category) ([]model.Book, error) {
	return presenter.FilterCatalog(s, category), nil
}

// Config configures the stub server.
type Config struct {
	Catalog Catalog
	Addr    string
	// ResponseField names the prediction field: "category" or "cluster".
	ResponseField predictor.CategoryField
}

// Server is the stub HTTP service.
type Server struct {
	engine  *gin.Engine
	catalog Catalog
	addr    string
	field   string
}

// NewServer builds the router.
func NewServer(cfg Config) (*Server, error) {
	field, err := predictor.ParseCategoryField(string(cfg.ResponseField))
	if err != nil {
		return nil, err
	}
	if field == predictor.FieldAuto {
		field = predictor.FieldCategory
	}

	catalog := cfg.Catalog
	if catalog == nil {
		catalog = staticCatalog(presenter.DefaultCatalog())
	}

	s := &Server{
		catalog: catalog,
		addr:    cfg.Addr,
		field:   string(field),
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger())
	engine.Use(cors.New(cors.Config{
		AllowOriginFunc: func(string) bool { return true },
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:    []string{"Content-Type", "Accept"},
	}))

	engine.GET("/health", s.handleHealth)
	engine.POST("/predict", s.handlePredict)
	engine.POST("/suggest", s.handleSuggest)

	s.engine = engine
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Stub service listening", "addr", s.addr, "field", s.field)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("stub server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down stub server: %w", err)
	}
	return nil
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		slog.Info("Request handled",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}
