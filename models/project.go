package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"gorm.io/gorm"
)

// Project is a portfolio entry. Tags are stored comma-delimited and the gallery as a
// JSON-encoded array of media URLs; both are decoded only by readers.
type Project struct {
	ID          uuid.UUID      `json:"id" gorm:"column:id;type:uuid;primaryKey;not null"`
	Title       string         `json:"title" gorm:"column:title;type:text;not null"`
	Description *string        `json:"description" gorm:"column:description;type:text"`
	ImageURL    *string        `json:"imageUrl" gorm:"column:image_url;type:text"`
	LiveURL     *string        `json:"liveUrl" gorm:"column:live_url;type:text"`
	GithubURL   *string        `json:"githubUrl" gorm:"column:github_url;type:text"`
	Tags        *string        `json:"tags" gorm:"column:tags;type:text"`
	Gallery     *string        `json:"gallery" gorm:"column:gallery;type:text"`
	Featured    bool           `json:"featured" gorm:"column:featured;type:boolean;not null;default:false"`
	CreatedAt   time.Time      `json:"createdAt" gorm:"column:created_at;not null;index"`
	UpdatedAt   time.Time      `json:"updatedAt" gorm:"column:updated_at;not null"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"column:deleted_at;index"`
}

func (Project) TableName() string {
	return "projects"
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Validate checks the fields every stored project must carry.
func (p *Project) Validate() error {
	if strings.TrimSpace(p.Title) == "" || strings.TrimSpace(Deref(p.ImageURL)) == "" {
		field := "title"
		if strings.TrimSpace(p.Title) != "" {
			field = "imageUrl"
		}
		return errs.NewMissingRequiredFieldError(field, "Title and Image are required")
	}
	return nil
}

// GalleryURLs decodes the stored gallery. A missing gallery decodes to nil.
func (p *Project) GalleryURLs() ([]string, error) {
	raw := strings.TrimSpace(Deref(p.Gallery))
	if raw == "" {
		return nil, nil
	}

	var urls []string
	if err := json.Unmarshal([]byte(raw), &urls); err != nil {
		return nil, err
	}
	return urls, nil
}

// TagList splits the comma-delimited tags, dropping blanks.
func (p *Project) TagList() []string {
	var tags []string
	for _, tag := range strings.Split(Deref(p.Tags), ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// MediaURLs lists the primary image followed by every gallery URL.
func (p *Project) MediaURLs() ([]string, error) {
	var urls []string
	if img := Deref(p.ImageURL); img != "" {
		urls = append(urls, img)
	}

	gallery, err := p.GalleryURLs()
	if err != nil {
		return urls, err
	}
	return append(urls, gallery...), nil
}

// EncodeGallery JSON-encodes urls for storage. An empty list is stored as NULL.
func EncodeGallery(urls []string) *string {
	if len(urls) == 0 {
		return nil
	}
	encoded, _ := json.Marshal(urls)
	s := string(encoded)
	return &s
}
