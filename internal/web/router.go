// Package web wires the portfolio's pages, fragments and API routes.
package web

import (
	"embed"
	"io/fs"
	"log"
	"net/http"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/subahan00/portfolio/internal/admin"
	"github.com/subahan00/portfolio/internal/analytics"
	"github.com/subahan00/portfolio/internal/contact"
	"github.com/subahan00/portfolio/internal/content"
	"github.com/subahan00/portfolio/internal/metrics"
	"github.com/subahan00/portfolio/internal/templates"
)

//go:embed static
var staticFiles embed.FS

type RouterDeps struct {
	ServiceName string
	Version     string
	CORSOrigins []string

	// TrustedProxies may set X-Forwarded-For. Nil trusts no proxy.
	TrustedProxies []string

	// RetentionMonths is shown on the privacy page.
	RetentionMonths int

	Site    *content.Site
	Relay   *contact.Relay
	Limiter *contact.Limiter

	// Store and Admin are nil when analytics is disabled.
	Store *analytics.Store
	Admin *admin.Handler
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(dep.TrustedProxies); err != nil {
		log.Printf("Warning: ignoring TRUSTED_PROXIES: %v", err)
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(metrics.Middleware())
	if dep.Store != nil {
		r.Use(analytics.Middleware(dep.Store))
	}

	r.SetHTMLTemplate(templates.MustLoad())

	static, _ := fs.Sub(staticFiles, "static")
	r.StaticFS("/static", http.FS(static))

	var pinger Pinger
	if dep.Store != nil {
		pinger = dep.Store
	}
	health := NewHealthHandler(dep.ServiceName, dep.Version, pinger)
	health.RegisterRoutes(r)
	r.GET("/metrics", metrics.Handler())

	pages := &pageHandler{
		site:            dep.Site,
		relay:           dep.Relay,
		limiter:         dep.Limiter,
		store:           dep.Store,
		retentionMonths: dep.RetentionMonths,
	}
	r.GET("/", pages.home)
	r.GET("/projects/select", pages.selectProject)
	r.POST("/contact", pages.submitContact)
	r.GET("/privacy", pages.privacy)

	api := r.Group("/api")
	api.Use(cors.New(corsConfig(dep.CORSOrigins)))
	api.GET("/test", health.ConnectivityCheck)
	api.POST("/contact", pages.submitContactJSON)

	if dep.Admin != nil {
		dep.Admin.RegisterRoutes(r)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-Id"},
		ExposeHeaders: []string{"X-Request-Id"},
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
