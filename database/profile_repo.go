package database

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) *ProfileRepo {
	return &ProfileRepo{db}
}

// Find returns the profile, or nil when it has never been saved
func (r *ProfileRepo) Find(ctx context.Context) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).Where("slot = ?", models.ProfileSlot).Take(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Upsert inserts the profile or overwrites the existing row in one statement, keyed on the
// singleton slot, so concurrent first saves cannot create a second row.
func (r *ProfileRepo) Upsert(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	row := *profile
	row.Slot = models.ProfileSlot
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	row.UpdatedAt = time.Now()

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot"}},
		DoUpdates: clause.AssignmentColumns(models.ProfileColumns),
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}

	return r.Find(ctx)
}
