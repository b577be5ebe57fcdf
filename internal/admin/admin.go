// Package admin serves the private statistics dashboard.
package admin

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/subahan00/portfolio/config"
	"github.com/subahan00/portfolio/internal/analytics"
)

const cookieName = "admin_token"

type Handler struct {
	store           *analytics.Store
	username        string
	password        string
	token           string
	secureCookie    bool
	retentionMonths int
}

// New builds the admin handler. Outside production, missing credentials fall
// back to development defaults; in production they disable login.
func New(store *analytics.Store, cfg *config.Config) *Handler {
	h := &Handler{
		store:           store,
		username:        cfg.Admin.Username,
		password:        cfg.Admin.Password,
		token:           generateToken(),
		secureCookie:    cfg.IsProduction(),
		retentionMonths: cfg.Analytics.RetentionMonths,
	}

	if h.username == "" || h.password == "" {
		if cfg.IsProduction() {
			log.Println("[admin] ADMIN_USERNAME/ADMIN_PASSWORD not set, admin login disabled")
			h.username, h.password = "", ""
		} else {
			log.Println("[admin] WARNING: using default admin credentials. Set ADMIN_USERNAME and ADMIN_PASSWORD.")
			h.username, h.password = "admin", "admin123"
		}
	}

	log.Printf("[admin] access available at /admin/login")
	return h
}

func generateToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Fatal("Failed to generate admin token:", err)
	}
	return hex.EncodeToString(b)
}

func (h *Handler) authorized(c *gin.Context) bool {
	token, err := c.Cookie(cookieName)
	return err == nil && subtle.ConstantTimeCompare([]byte(token), []byte(h.token)) == 1
}

func (h *Handler) checkCredentials(username, password string) bool {
	if h.username == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(h.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(h.password)) == 1
	return userOK && passOK
}

// AuthMiddleware redirects unauthenticated requests to the login page.
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !h.authorized(c) {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/admin/login", h.loginPage)
	r.POST("/admin/login", h.login)
	r.GET("/admin/logout", h.logout)

	g := r.Group("/admin")
	g.Use(h.AuthMiddleware())
	g.GET("/dashboard", h.dashboard)
	g.GET("/visitors", h.visitors)
	g.GET("/api/stats", h.statsJSON)
	g.GET("/export/stats", h.exportStats)
	g.POST("/privacy/cleanup", h.cleanup)
}

func (h *Handler) loginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "admin-login.html", gin.H{})
}

func (h *Handler) login(c *gin.Context) {
	who := h.store.HashIP(c.ClientIP())

	if !h.checkCredentials(c.PostForm("username"), c.PostForm("password")) {
		log.Printf("[admin] failed login attempt from %s", who)
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
			"error": "Invalid credentials",
		})
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(cookieName, h.token, 3600*24, "/admin", "", h.secureCookie, true)
	log.Printf("[admin] login from %s", who)
	c.Redirect(http.StatusFound, "/admin/dashboard")
}

func (h *Handler) logout(c *gin.Context) {
	c.SetCookie(cookieName, "", -1, "/admin", "", h.secureCookie, true)
	c.Redirect(http.StatusFound, "/admin/login")
}

func (h *Handler) dashboard(c *gin.Context) {
	stats, err := h.store.Stats(c.Request.Context())
	if err != nil {
		log.Printf("[admin] loading stats: %v", err)
		c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
			"error": "Failed to load statistics",
		})
		return
	}
	c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
		"stats":           stats,
		"retentionMonths": h.retentionMonths,
	})
}

func (h *Handler) visitors(c *gin.Context) {
	visitors, err := h.store.RecentVisitors(c.Request.Context(), 200)
	if err != nil {
		log.Printf("[admin] loading visitors: %v", err)
		c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
			"error": "Failed to load visitors",
		})
		return
	}
	c.HTML(http.StatusOK, "admin-visitors.html", gin.H{
		"visitors": visitors,
	})
}

func (h *Handler) statsJSON(c *gin.Context) {
	stats, err := h.store.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load statistics"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) exportStats(c *gin.Context) {
	stats, err := h.store.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load statistics"})
		return
	}
	c.Header("Content-Disposition", "attachment; filename=portfolio-stats.json")
	log.Printf("[admin] stats exported by %s", h.store.HashIP(c.ClientIP()))
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) cleanup(c *gin.Context) {
	n, err := h.store.Cleanup(c.Request.Context(), h.retentionMonths)
	if err != nil {
		log.Printf("[admin] privacy cleanup: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cleanup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup complete", "deleted": n})
}
