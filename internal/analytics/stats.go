package analytics

import (
	"context"
	"fmt"
	"time"
)

type Visitor struct {
	ID        int       `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

type ProjectStat struct {
	ProjectID  string `json:"project_id"`
	Selections int64  `json:"selections"`
}

type Stats struct {
	TotalVisitors    int64         `json:"total_visitors"`
	UniqueVisitors   int64         `json:"unique_visitors"`
	VisitorsToday    int64         `json:"visitors_today"`
	VisitorsThisWeek int64         `json:"visitors_this_week"`
	TotalSelections  int64         `json:"total_selections"`
	TopProjects      []ProjectStat `json:"top_projects"`
	ContactSent      int64         `json:"contact_sent"`
	ContactFailed    int64         `json:"contact_failed"`
	RecentVisitors   []Visitor     `json:"recent_visitors"`
}

// Stats gathers the admin dashboard numbers.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Format(timeLayout)
	weekAgo := now.AddDate(0, 0, -7).Format(timeLayout)

	stats := &Stats{}
	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{today}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{weekAgo}},
		{&stats.TotalSelections, `SELECT COUNT(*) FROM selections`, nil},
		{&stats.ContactSent, `SELECT COUNT(*) FROM contact_submissions WHERE outcome = 'success'`, nil},
		{&stats.ContactFailed, `SELECT COUNT(*) FROM contact_submissions WHERE outcome <> 'success'`, nil},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
	}

	top, err := s.TopProjects(ctx, 10)
	if err != nil {
		return nil, err
	}
	stats.TopProjects = top

	recent, err := s.RecentVisitors(ctx, 50)
	if err != nil {
		return nil, err
	}
	stats.RecentVisitors = recent

	return stats, nil
}

// TopProjects ranks projects by how often their tile was picked.
func (s *Store) TopProjects(ctx context.Context, limit int) ([]ProjectStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT project_id, COUNT(*) AS n
		FROM selections
		GROUP BY project_id
		ORDER BY n DESC, project_id ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("top projects: %w", err)
	}
	defer rows.Close()

	var out []ProjectStat
	for rows.Next() {
		var p ProjectStat
		if err := rows.Scan(&p.ProjectID, &p.Selections); err != nil {
			return nil, fmt.Errorf("scan project stat: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) RecentVisitors(ctx context.Context, limit int) ([]Visitor, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent visitors: %w", err)
	}
	defer rows.Close()

	var out []Visitor
	for rows.Next() {
		var v Visitor
		var ts string
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &ts); err != nil {
			return nil, fmt.Errorf("scan visitor: %w", err)
		}
		v.Timestamp, _ = time.Parse(timeLayout, ts)
		out = append(out, v)
	}
	return out, rows.Err()
}
