package analytics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore opens an in-memory store pinned to a fixed clock.
func newTestStore(t *testing.T, now time.Time) *Store {
	t.Helper()

	s, err := Open(":memory:")
	require.NoError(t, err, "failed to open test store")
	s.now = func() time.Time { return now }

	t.Cleanup(func() {
		s.Close()
	})
	return s
}

func TestMigrations(t *testing.T) {
	s := newTestStore(t, time.Now())

	for _, table := range []string{"visitors", "selections", "contact_submissions"} {
		var count int
		err := s.db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err)
		require.Equal(t, 1, count, "table %s not found", table)
	}
	require.NoError(t, s.migrate(), "migrations are idempotent")
}

func TestHashIP(t *testing.T) {
	s := newTestStore(t, time.Now())

	h := s.HashIP("203.0.113.7")
	assert.Len(t, h, 16)
	assert.Equal(t, h, s.HashIP("203.0.113.7"))
	assert.NotEqual(t, h, s.HashIP("203.0.113.8"))
	assert.NotContains(t, h, "203")
}

func TestStats(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	s := newTestStore(t, now)
	ctx := context.Background()

	s.now = func() time.Time { return now.AddDate(0, 0, -10) }
	require.NoError(t, s.RecordVisit(ctx, "1.1.1.1", "old", "/"))

	s.now = func() time.Time { return now.Add(-30 * time.Hour) }
	require.NoError(t, s.RecordVisit(ctx, "1.1.1.1", "ua", "/"))

	s.now = func() time.Time { return now }
	require.NoError(t, s.RecordVisit(ctx, "2.2.2.2", "ua", "/"))
	require.NoError(t, s.RecordSelection(ctx, "2.2.2.2", "leetcode"))
	require.NoError(t, s.RecordSelection(ctx, "1.1.1.1", "leetcode"))
	require.NoError(t, s.RecordSelection(ctx, "1.1.1.1", "newsapp"))
	require.NoError(t, s.RecordContact(ctx, "2.2.2.2", "sub-1", "emailjs", "success"))
	require.NoError(t, s.RecordContact(ctx, "2.2.2.2", "sub-2", "emailjs", "error"))

	stats, err := s.Stats(ctx)
	require.NoError(t, err)

	assert.EqualValues(t, 3, stats.TotalVisitors)
	assert.EqualValues(t, 2, stats.UniqueVisitors)
	assert.EqualValues(t, 1, stats.VisitorsToday)
	assert.EqualValues(t, 2, stats.VisitorsThisWeek)
	assert.EqualValues(t, 3, stats.TotalSelections)
	assert.EqualValues(t, 1, stats.ContactSent)
	assert.EqualValues(t, 1, stats.ContactFailed)
	assert.Equal(t, []ProjectStat{{"leetcode", 2}, {"newsapp", 1}}, stats.TopProjects)

	require.Len(t, stats.RecentVisitors, 3)
	assert.Equal(t, now, stats.RecentVisitors[0].Timestamp)
	assert.Equal(t, s.HashIP("2.2.2.2"), stats.RecentVisitors[0].HashedIP)
}

func TestCleanup(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	s := newTestStore(t, now)
	ctx := context.Background()

	s.now = func() time.Time { return now.AddDate(-2, 0, 0) }
	require.NoError(t, s.RecordVisit(ctx, "1.1.1.1", "ua", "/"))
	require.NoError(t, s.RecordSelection(ctx, "1.1.1.1", "official90"))
	require.NoError(t, s.RecordContact(ctx, "1.1.1.1", "old", "smtp", "success"))

	s.now = func() time.Time { return now }
	require.NoError(t, s.RecordVisit(ctx, "1.1.1.1", "ua", "/"))

	n, err := s.Cleanup(ctx, 12)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.TotalVisitors)
	assert.Zero(t, stats.TotalSelections)
}

func TestTrackable(t *testing.T) {
	assert.True(t, Trackable("/"))
	assert.False(t, Trackable("/projects/select"))
	assert.False(t, Trackable("/static/site.css"))
	assert.False(t, Trackable("/admin/dashboard"))
	assert.False(t, Trackable("/api/test"))
	assert.False(t, Trackable("/healthz"))
}

func TestMiddlewareRespectsDNT(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := newTestStore(t, time.Now())

	r := gin.New()
	r.Use(Middleware(s))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("DNT", "1")
	r.ServeHTTP(httptest.NewRecorder(), req)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Eventually(t, func() bool {
		var n int
		_ = s.db.QueryRow("SELECT COUNT(*) FROM visitors").Scan(&n)
		return n == 1
	}, time.Second, 10*time.Millisecond)
}

func TestStartRetention(t *testing.T) {
	s := newTestStore(t, time.Now())

	_, err := StartRetention(s, "not a schedule", 12)
	assert.Error(t, err)

	r, err := StartRetention(s, "@daily", 12)
	require.NoError(t, err)
	r.Stop()
}
