package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/subahan00/portfolio/config"
	"github.com/subahan00/portfolio/internal/admin"
	"github.com/subahan00/portfolio/internal/analytics"
	"github.com/subahan00/portfolio/internal/contact"
	"github.com/subahan00/portfolio/internal/content"
	"github.com/subahan00/portfolio/internal/web"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	site, err := content.Load()
	if err != nil {
		return fmt.Errorf("content: %w", err)
	}
	if missing := site.Layout.Dangling(site.Catalog); len(missing) > 0 {
		log.Printf("Warning: grid slots reference unknown projects %v, rendering them empty", missing)
	}

	provider := contact.NewProvider(cfg)
	if cfg.Contact.Provider == "emailjs" {
		if missing := cfg.EmailJS.Missing(); len(missing) > 0 {
			log.Printf("Warning: %v not set, contact form submissions will fail", missing)
		}
	}

	deps := web.RouterDeps{
		ServiceName:     cfg.App.ServiceName,
		Version:         cfg.App.Version,
		CORSOrigins:     cfg.Server.CORSAllowedOrigins,
		TrustedProxies:  cfg.Server.TrustedProxies,
		RetentionMonths: cfg.Analytics.RetentionMonths,
		Site:            site,
		Relay:           contact.NewRelay(provider),
		Limiter:         contact.NewLimiter(cfg.Contact.RatePerMinute, cfg.Contact.Burst),
	}

	if cfg.Analytics.Enabled() {
		store, err := analytics.Open(cfg.Analytics.DatabasePath)
		if err != nil {
			return fmt.Errorf("analytics: %w", err)
		}
		defer store.Close()

		retention, err := analytics.StartRetention(store, cfg.Analytics.CleanupSchedule, cfg.Analytics.RetentionMonths)
		if err != nil {
			return fmt.Errorf("analytics retention: %w", err)
		}
		defer retention.Stop()
		deps.Store = store
		deps.Admin = admin.New(store, cfg)
		log.Println("Privacy: visitor tracking enabled with hashed IP addresses")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           web.BuildRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("Server is running on http://localhost:%s (contact via %s)", cfg.Server.Port, provider.Name())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	return serve(srv, quit)
}

// serve runs srv until quit fires or the listener fails, then shuts it down.
func serve(srv *http.Server, quit <-chan os.Signal) error {
	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	return nil
}
