package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"gorm.io/gorm"
)

const DefaultSkillCategory = "General"

// Skill is a technology shown in the skills section. IconName is either a plain icon key
// or "react:<IconName>". Percentage is kept as the numeric string the admin typed.
type Skill struct {
	ID         uuid.UUID `json:"id" gorm:"column:id;type:uuid;primaryKey;not null"`
	Name       string    `json:"name" gorm:"column:name;type:text;not null"`
	IconName   *string   `json:"iconName" gorm:"column:icon_name;type:text"`
	Category   *string   `json:"category" gorm:"column:category;type:text"`
	Percentage *string   `json:"percentage" gorm:"column:percentage;type:text"`
	CreatedAt  time.Time `json:"createdAt" gorm:"column:created_at;not null;index"`
	UpdatedAt  time.Time `json:"updatedAt" gorm:"column:updated_at;not null"`
}

func (Skill) TableName() string {
	return "skills"
}

func (s *Skill) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (s *Skill) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errs.NewMissingRequiredFieldError("name", "Name is required")
	}
	if strings.TrimSpace(Deref(s.IconName)) == "" {
		return errs.NewMissingRequiredFieldError("iconName", "Icon is required")
	}
	if p := strings.TrimSpace(Deref(s.Percentage)); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > 100 {
			return errs.NewInvalidFieldError("percentage", "must be an integer between 0 and 100")
		}
	}
	return nil
}

// CategoryOrDefault returns the category label, "General" when unset.
func (s *Skill) CategoryOrDefault() string {
	if c := strings.TrimSpace(Deref(s.Category)); c != "" {
		return c
	}
	return DefaultSkillCategory
}

// PercentageValue parses the proficiency, 0 when unset or unparsable.
func (s *Skill) PercentageValue() int {
	n, err := strconv.Atoi(strings.TrimSpace(Deref(s.Percentage)))
	if err != nil {
		return 0
	}
	return n
}
