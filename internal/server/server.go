package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"makeupsales/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

func New(log *slog.Logger, metrics *middleware.Metrics) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(log))
	e.Use(metrics.Prometheus())
	return e
}

// Start はctxが終わるまで待ち受け、その後リクエストを捌き切ってから止まる
func Start(ctx context.Context, e *echo.Echo, addr string, log *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("http server started", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info("http server shutting down")
	return e.Shutdown(shutdownCtx)
}
