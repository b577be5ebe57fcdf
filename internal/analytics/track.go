package analytics

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

var untrackedPrefixes = []string{
	"/static/",
	"/admin/",
	"/api/",
	"/health",
	"/metrics",
	"/favicon",
	"/privacy",
	"/projects/",
}

// Middleware records page visits in the background. Static assets, admin
// pages, probes, showcase fragments and Do-Not-Track requests are skipped.
// Tile clicks are counted as selections instead.
func Middleware(s *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.Request.Method != http.MethodGet || !Trackable(path) || c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		ip, ua := c.ClientIP(), c.GetHeader("User-Agent")
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.RecordVisit(ctx, ip, ua, path); err != nil {
				log.Printf("[analytics] %v", err)
			}
		}()
		c.Next()
	}
}

func Trackable(path string) bool {
	for _, p := range untrackedPrefixes {
		if strings.HasPrefix(path, p) {
			return false
		}
	}
	return true
}

// Retention runs Cleanup on a cron schedule.
type Retention struct {
	cron *cron.Cron
}

// StartRetention schedules cleanup of rows older than months. The schedule
// uses standard cron syntax or descriptors such as "@daily".
func StartRetention(s *Store, schedule string, months int) (*Retention, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		n, err := s.Cleanup(ctx, months)
		if err != nil {
			log.Printf("[analytics] retention cleanup failed: %v", err)
			return
		}
		if n > 0 {
			log.Printf("[analytics] privacy cleanup removed %d rows older than %d months", n, months)
		}
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	log.Printf("[analytics] retention cleanup scheduled (%s, keep %d months)", schedule, months)
	return &Retention{cron: c}, nil
}

// Stop halts the scheduler and waits for a running cleanup to finish.
func (r *Retention) Stop() {
	if r == nil {
		return
	}
	<-r.cron.Stop().Done()
}
