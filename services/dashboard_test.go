package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedStats struct {
	stats database.DashboardStats
	err   error
}

func (f fixedStats) Stats(context.Context) (database.DashboardStats, error) { return f.stats, f.err }

type fixedRecent struct {
	projects []*models.Project
	limit    *int
}

func (f fixedRecent) FindRecent(_ context.Context, limit int) ([]*models.Project, error) {
	*f.limit = limit
	return f.projects, nil
}

func TestDashboardReader_Load(t *testing.T) {
	id := uuid.New()
	var limit int
	reader := NewDashboardReader(
		fixedStats{stats: database.DashboardStats{TotalProjects: 3, TotalSkills: 2, FeaturedProjects: 1, CategoriesCount: 2}},
		fixedRecent{limit: &limit, projects: []*models.Project{
			{ID: id, Title: "Demo", CreatedAt: time.Date(2024, 3, 7, 15, 0, 0, 0, time.UTC)},
		}},
	)

	dashboard, err := reader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, limit)
	assert.Equal(t, int64(3), dashboard.Stats.TotalProjects)
	assert.Equal(t, []Activity{{
		ID:     id.String(),
		User:   "System",
		Action: "Project 'Demo' was added/updated",
		Time:   "3/7/2024",
	}}, dashboard.RecentActivity)
}

func TestDashboardReader_StatsError(t *testing.T) {
	var limit int
	reader := NewDashboardReader(fixedStats{err: errors.New("db down")}, fixedRecent{limit: &limit})

	_, err := reader.Load(context.Background())
	assert.Error(t, err)
}

func TestRecentActivityEmpty(t *testing.T) {
	assert.Equal(t, []Activity{}, RecentActivity(nil))
}
