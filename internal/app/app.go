package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"archject/internal/buildinfo"
	"archject/internal/config"
	"archject/internal/httpserver"
	"archject/internal/i18n"
	"archject/internal/security/ratelimit"
)

type App struct {
	cfg    config.Config
	logger *log.Logger
}

func New(cfg config.Config, logger *log.Logger) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
	}
}

// Handler builds the HTTP handler tree without binding a listener.
func (a *App) Handler() (http.Handler, error) {
	lang, ok := i18n.ParseTag(a.cfg.DefaultLang)
	if !ok {
		return nil, fmt.Errorf("unsupported default language %q", a.cfg.DefaultLang)
	}
	limiter := ratelimit.NewLimiter(a.cfg.RateLimit, a.cfg.RateWindow)
	api := httpserver.NewAPI(limiter, lang, a.cfg.ProxyPrefixes())
	a.logger.Printf(
		"password api rate_limit=%d window=%s default_lang=%s trusted_proxies=%d",
		a.cfg.RateLimit, a.cfg.RateWindow, lang, len(a.cfg.TrustedProxies),
	)
	return httpserver.NewRouter(api, a.logger, a.cfg.Debug()), nil
}

func (a *App) Run() error {
	a.logger.Printf("version=%s commit=%s built=%s", buildinfo.Version, buildinfo.Commit, buildinfo.BuildTime)

	handler, err := a.Handler()
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         a.cfg.Address,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Printf("archjectd listening on %s", a.cfg.Address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(a.cfg.ShutdownSecs)*time.Second)
	defer cancel()

	a.logger.Printf("shutting down")
	return server.Shutdown(shutdownCtx)
}
