package database

import (
	"context"

	"gorm.io/gorm"
)

type DashboardStats struct {
	TotalProjects    int64 `json:"totalProjects"`
	TotalSkills      int64 `json:"totalSkills"`
	FeaturedProjects int64 `json:"featuredProjects"`
	CategoriesCount  int64 `json:"categoriesCount"`
}

type DashboardRepo struct {
	projects *ProjectRepo
	skills   *SkillRepo
}

func NewDashboardRepo(db *gorm.DB) *DashboardRepo {
	return &DashboardRepo{projects: NewProjectRepo(db), skills: NewSkillRepo(db)}
}

// Stats gathers the dashboard counters with one query each
func (r *DashboardRepo) Stats(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats
	var err error

	if stats.TotalProjects, err = r.projects.CountAll(ctx); err != nil {
		return stats, err
	}
	if stats.TotalSkills, err = r.skills.CountAll(ctx); err != nil {
		return stats, err
	}
	if stats.FeaturedProjects, err = r.projects.CountFeatured(ctx); err != nil {
		return stats, err
	}
	if stats.CategoriesCount, err = r.skills.CountCategories(ctx); err != nil {
		return stats, err
	}
	return stats, nil
}
