package api

import (
	"strings"

	"github.com/rpupo63/portfolio-site-backend/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler     projectHandler
	skillHandler       skillHandler
	profileHandler     profileHandler
	dashboardHandler   dashboardHandler
	authHandler        authHandler
	uploadHandler      uploadHandler
	contactHandler     contactHandler
	maintenanceHandler maintenanceHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
}

// projectRequest is the body of POST and PATCH /api/projects. Absent keys leave the
// stored value alone.
type projectRequest struct {
	ID          string              `json:"id"`
	Title       field[string]       `json:"title"`
	Description field[string]       `json:"description"`
	ImageURL    field[string]       `json:"imageUrl"`
	LiveURL     field[string]       `json:"liveUrl"`
	GithubURL   field[string]       `json:"githubUrl"`
	Tags        field[tagsInput]    `json:"tags"`
	Gallery     field[galleryInput] `json:"gallery"`
	Featured    field[truthy]       `json:"featured"`
}

func (req projectRequest) apply(p *models.Project) {
	if req.Title.Set {
		p.Title = strings.TrimSpace(req.Title.Value)
	}
	applyString(&p.Description, req.Description)
	applyString(&p.ImageURL, req.ImageURL)
	applyString(&p.LiveURL, req.LiveURL)
	applyString(&p.GithubURL, req.GithubURL)

	if req.Tags.Set {
		p.Tags = nil
		if !req.Tags.Null {
			p.Tags = models.StringPtr(strings.TrimSpace(string(req.Tags.Value)))
		}
	}
	if req.Gallery.Set {
		p.Gallery = nil
		if !req.Gallery.Null {
			p.Gallery = req.Gallery.Value.encoded
		}
	}
	if req.Featured.Set {
		p.Featured = bool(req.Featured.Value)
	}
}

type projectResponse struct {
	Success bool            `json:"success"`
	Project *models.Project `json:"project"`
}

type skillRequest struct {
	ID         string               `json:"id"`
	Name       field[string]        `json:"name"`
	IconName   field[string]        `json:"iconName"`
	Category   field[string]        `json:"category"`
	Percentage field[numericString] `json:"percentage"`
}

func (req skillRequest) apply(s *models.Skill) {
	if req.Name.Set {
		s.Name = strings.TrimSpace(req.Name.Value)
	}
	applyString(&s.IconName, req.IconName)
	applyString(&s.Category, req.Category)

	if req.Percentage.Set {
		s.Percentage = nil
		if !req.Percentage.Null {
			s.Percentage = models.StringPtr(strings.TrimSpace(string(req.Percentage.Value)))
		}
	}
}

type skillResponse struct {
	Success bool          `json:"success"`
	Skill   *models.Skill `json:"skill"`
}

type profileRequest struct {
	Name         field[string] `json:"name"`
	Title        field[string] `json:"title"`
	Bio          field[string] `json:"bio"`
	Email        field[string] `json:"email"`
	Phone        field[string] `json:"phone"`
	Address      field[string] `json:"address"`
	ImageURL     field[string] `json:"imageUrl"`
	ResumeURL    field[string] `json:"resumeUrl"`
	GithubURL    field[string] `json:"githubUrl"`
	LinkedinURL  field[string] `json:"linkedinUrl"`
	TwitterURL   field[string] `json:"twitterUrl"`
	FacebookURL  field[string] `json:"facebookUrl"`
	InstagramURL field[string] `json:"instagramUrl"`
	WhatsappURL  field[string] `json:"whatsappUrl"`
}

func (req profileRequest) apply(p *models.Profile) {
	if req.Name.Set {
		p.Name = strings.TrimSpace(req.Name.Value)
	}
	applyString(&p.Title, req.Title)
	applyString(&p.Bio, req.Bio)
	applyString(&p.Email, req.Email)
	applyString(&p.Phone, req.Phone)
	applyString(&p.Address, req.Address)
	applyString(&p.ImageURL, req.ImageURL)
	applyString(&p.ResumeURL, req.ResumeURL)
	applyString(&p.GithubURL, req.GithubURL)
	applyString(&p.LinkedinURL, req.LinkedinURL)
	applyString(&p.TwitterURL, req.TwitterURL)
	applyString(&p.FacebookURL, req.FacebookURL)
	applyString(&p.InstagramURL, req.InstagramURL)
	applyString(&p.WhatsappURL, req.WhatsappURL)
}

type profileResponse struct {
	Success bool            `json:"success"`
	Profile *models.Profile `json:"profile"`
}

type successResponse struct {
	Success bool `json:"success"`
}
