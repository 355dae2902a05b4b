package services

import (
	"context"
	"fmt"

	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/models"
)

const recentActivityLimit = 5

type statsSource interface {
	Stats(ctx context.Context) (database.DashboardStats, error)
}

type recentProjectsSource interface {
	FindRecent(ctx context.Context, limit int) ([]*models.Project, error)
}

// Activity is one line of the recent activity feed.
type Activity struct {
	ID     string `json:"id"`
	User   string `json:"user"`
	Action string `json:"action"`
	Time   string `json:"time"`
}

type Dashboard struct {
	Stats          database.DashboardStats `json:"stats"`
	RecentActivity []Activity              `json:"recentActivity"`
}

type DashboardReader struct {
	stats  statsSource
	recent recentProjectsSource
}

func NewDashboardReader(stats statsSource, recent recentProjectsSource) *DashboardReader {
	return &DashboardReader{stats: stats, recent: recent}
}

// Load returns the counters and the five most recently created projects as activity lines.
func (d *DashboardReader) Load(ctx context.Context) (Dashboard, error) {
	stats, err := d.stats.Stats(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	recent, err := d.recent.FindRecent(ctx, recentActivityLimit)
	if err != nil {
		return Dashboard{}, err
	}

	return Dashboard{Stats: stats, RecentActivity: RecentActivity(recent)}, nil
}

func RecentActivity(projects []*models.Project) []Activity {
	activity := make([]Activity, 0, len(projects))
	for _, p := range projects {
		activity = append(activity, Activity{
			ID:     p.ID.String(),
			User:   "System",
			Action: fmt.Sprintf("Project '%s' was added/updated", p.Title),
			Time:   p.CreatedAt.Format("1/2/2006"),
		})
	}
	return activity
}
