package cli

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	httpadapter "svw.info/gridsolve/internal/adapters/http"
	"svw.info/gridsolve/internal/hint"
	"svw.info/gridsolve/internal/infrastructure/storage"
	"svw.info/gridsolve/internal/solver"
	"svw.info/gridsolve/internal/usecase"
	"svw.info/gridsolve/internal/validator"
)

var serveAddr string

func init() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON API server",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides env)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := serveAddr
	if addr == "" {
		addr = cfg.Addr
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return err
	}

	// Wire providers → use cases → HTTP adapter
	s := solver.New(solver.WithWorkers(cfg.Workers), solver.WithMaxNodes(cfg.MaxNodes))
	uc := usecase.NewService(s, validator.New(), hint.NewSingles(), storage.NewFS(cfg.DataDir))
	h := httpadapter.New(uc)

	gin.SetMode(gin.ReleaseMode)
	e := gin.New()
	e.Use(gin.Recovery(), requestLogger())
	h.Register(e)

	log.Info().Str("addr", addr).Str("data", cfg.DataDir).Msg("listening")
	return e.Run(addr)
}

// requestLogger logs method, path, status, and duration per request.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("dur", time.Since(start).Round(time.Millisecond)).
			Msg("http")
	}
}

func contextWithTimeout(d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), d)
}
