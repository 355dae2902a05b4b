package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/gorm"
)

type SkillRepo struct {
	db *gorm.DB
}

func NewSkillRepo(db *gorm.DB) *SkillRepo {
	return &SkillRepo{db}
}

// FindAll returns all skills, newest first
func (r *SkillRepo) FindAll(ctx context.Context) ([]*models.Skill, error) {
	skills := []*models.Skill{}
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&skills).Error
	return skills, err
}

func (r *SkillRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Skill, error) {
	var skill models.Skill
	err := r.db.WithContext(ctx).First(&skill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

func (r *SkillRepo) Add(ctx context.Context, skill *models.Skill) error {
	return r.db.WithContext(ctx).Create(skill).Error
}

func (r *SkillRepo) Update(ctx context.Context, skill *models.Skill) error {
	result := r.db.WithContext(ctx).
		Model(skill).
		Select("*").
		Omit("id", "created_at").
		Updates(skill)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewNotFound("skill")
	}
	return nil
}

// Delete removes a skill by id; deleting a missing id succeeds
func (r *SkillRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Skill{}, "id = ?", id).Error
}

func (r *SkillRepo) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Skill{}).Count(&n).Error
	return n, err
}

// CountCategories counts distinct categories, folding blank ones into "General"
func (r *SkillRepo) CountCategories(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Raw("SELECT COUNT(DISTINCT COALESCE(NULLIF(TRIM(category), ''), ?)) FROM skills", models.DefaultSkillCategory).
		Scan(&n).Error
	return n, err
}
