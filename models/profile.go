package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"gorm.io/gorm"
)

// ProfileSlot is the only value the unique slot column ever holds, which makes
// the profile table a singleton and gives upserts a conflict target.
const ProfileSlot = 1

type Profile struct {
	ID           uuid.UUID `json:"id" gorm:"column:id;type:uuid;primaryKey;not null"`
	Slot         int       `json:"-" gorm:"column:slot;not null;uniqueIndex:idx_profile_slot"`
	Name         string    `json:"name" gorm:"column:name;type:text;not null"`
	Title        *string   `json:"title" gorm:"column:title;type:text"`
	Bio          *string   `json:"bio" gorm:"column:bio;type:text"`
	Email        *string   `json:"email" gorm:"column:email;type:text"`
	Phone        *string   `json:"phone" gorm:"column:phone;type:text"`
	Address      *string   `json:"address" gorm:"column:address;type:text"`
	ImageURL     *string   `json:"imageUrl" gorm:"column:image_url;type:text"`
	ResumeURL    *string   `json:"resumeUrl" gorm:"column:resume_url;type:text"`
	GithubURL    *string   `json:"githubUrl" gorm:"column:github_url;type:text"`
	LinkedinURL  *string   `json:"linkedinUrl" gorm:"column:linkedin_url;type:text"`
	TwitterURL   *string   `json:"twitterUrl" gorm:"column:twitter_url;type:text"`
	FacebookURL  *string   `json:"facebookUrl" gorm:"column:facebook_url;type:text"`
	InstagramURL *string   `json:"instagramUrl" gorm:"column:instagram_url;type:text"`
	WhatsappURL  *string   `json:"whatsappUrl" gorm:"column:whatsapp_url;type:text"`
	UpdatedAt    time.Time `json:"updatedAt" gorm:"column:updated_at;not null"`
}

func (Profile) TableName() string {
	return "profile"
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.Slot = ProfileSlot
	return nil
}

func (p *Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errs.NewMissingRequiredFieldError("name", "Name is required")
	}
	return nil
}

// ProfileColumns are the columns an upsert overwrites; id and slot never change.
var ProfileColumns = []string{
	"name", "title", "bio", "email", "phone", "address", "image_url", "resume_url",
	"github_url", "linkedin_url", "twitter_url", "facebook_url", "instagram_url",
	"whatsapp_url", "updated_at",
}
