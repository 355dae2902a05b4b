package web

import (
	"net/http"
	"strings"

	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rpupo63/portfolio-site-backend/services"
)

// ProjectDraft is the editable state of the project form, seeded from the stored row when
// editing and from the submitted form afterwards.
type ProjectDraft struct {
	ID          string
	Title       string
	Description string
	ImageURL    string
	LiveURL     string
	GithubURL   string
	Tags        string
	Featured    bool
	Gallery     []MediaItem
}

func (d ProjectDraft) Editing() bool {
	return d.ID != ""
}

func newProjectDraft(p *models.Project) ProjectDraft {
	if p == nil {
		return ProjectDraft{}
	}
	draft := ProjectDraft{
		ID:          p.ID.String(),
		Title:       p.Title,
		Description: models.Deref(p.Description),
		ImageURL:    models.Deref(p.ImageURL),
		LiveURL:     models.Deref(p.LiveURL),
		GithubURL:   models.Deref(p.GithubURL),
		Tags:        models.Deref(p.Tags),
		Featured:    p.Featured,
	}
	gallery, _ := p.GalleryURLs()
	for _, url := range gallery {
		draft.Gallery = append(draft.Gallery, newMediaItem(url))
	}
	return draft
}

// readForm overwrites the text fields from the submitted form and drops the gallery
// entries ticked for removal.
func (d *ProjectDraft) readForm(r *http.Request) {
	d.Title = strings.TrimSpace(r.FormValue("title"))
	d.Description = strings.TrimSpace(r.FormValue("description"))
	d.LiveURL = strings.TrimSpace(r.FormValue("liveUrl"))
	d.GithubURL = strings.TrimSpace(r.FormValue("githubUrl"))
	d.Tags = normalizeTags(r.FormValue("tags"))
	d.Featured = r.FormValue("featured") != ""

	remove := make(map[string]bool)
	for _, url := range r.Form["removeGallery"] {
		remove[url] = true
	}
	kept := d.Gallery[:0:0]
	for _, item := range d.Gallery {
		if !remove[item.URL] {
			kept = append(kept, item)
		}
	}
	d.Gallery = kept
}

// merge applies freshly uploaded media: a new thumbnail replaces the current image and new
// gallery files are appended after the kept ones.
func (d *ProjectDraft) merge(thumbnail *services.UploadedFile, gallery []services.UploadedFile) {
	if thumbnail != nil {
		d.ImageURL = thumbnail.URL
	}
	for _, f := range gallery {
		d.Gallery = append(d.Gallery, newMediaItem(f.URL))
	}
}

func (d ProjectDraft) galleryURLs() []string {
	urls := make([]string, 0, len(d.Gallery))
	for _, item := range d.Gallery {
		urls = append(urls, item.URL)
	}
	return urls
}

func (d ProjectDraft) applyTo(p *models.Project) {
	p.Title = d.Title
	p.Description = models.StringPtr(d.Description)
	p.ImageURL = models.StringPtr(d.ImageURL)
	p.LiveURL = models.StringPtr(d.LiveURL)
	p.GithubURL = models.StringPtr(d.GithubURL)
	p.Tags = models.StringPtr(d.Tags)
	p.Featured = d.Featured
	p.Gallery = models.EncodeGallery(d.galleryURLs())
}

func normalizeTags(raw string) string {
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return strings.Join(tags, ", ")
}

type SkillDraft struct {
	ID         string
	Name       string
	IconName   string
	Category   string
	Percentage string
}

func (d SkillDraft) Editing() bool {
	return d.ID != ""
}

func (d SkillDraft) Icon() Icon {
	return ResolveIcon(d.IconName)
}

func newSkillDraft(s *models.Skill) SkillDraft {
	if s == nil {
		return SkillDraft{Category: models.DefaultSkillCategory}
	}
	return SkillDraft{
		ID:         s.ID.String(),
		Name:       s.Name,
		IconName:   models.Deref(s.IconName),
		Category:   models.Deref(s.Category),
		Percentage: models.Deref(s.Percentage),
	}
}

func (d *SkillDraft) readForm(r *http.Request) {
	d.Name = strings.TrimSpace(r.FormValue("name"))
	d.IconName = strings.TrimSpace(r.FormValue("iconName"))
	d.Category = strings.TrimSpace(r.FormValue("category"))
	d.Percentage = strings.TrimSpace(r.FormValue("percentage"))
}

func (d SkillDraft) applyTo(s *models.Skill) {
	s.Name = d.Name
	s.IconName = models.StringPtr(d.IconName)
	s.Category = models.StringPtr(d.Category)
	s.Percentage = models.StringPtr(d.Percentage)
	if s.Category == nil {
		s.Category = models.StringPtr(models.DefaultSkillCategory)
	}
}

type ProfileDraft struct {
	Name         string
	Title        string
	Bio          string
	Email        string
	Phone        string
	Address      string
	ImageURL     string
	ResumeURL    string
	GithubURL    string
	LinkedinURL  string
	TwitterURL   string
	FacebookURL  string
	InstagramURL string
	WhatsappURL  string
}

func newProfileDraft(p *models.Profile) ProfileDraft {
	if p == nil {
		return ProfileDraft{}
	}
	return ProfileDraft{
		Name:         p.Name,
		Title:        models.Deref(p.Title),
		Bio:          models.Deref(p.Bio),
		Email:        models.Deref(p.Email),
		Phone:        models.Deref(p.Phone),
		Address:      models.Deref(p.Address),
		ImageURL:     models.Deref(p.ImageURL),
		ResumeURL:    models.Deref(p.ResumeURL),
		GithubURL:    models.Deref(p.GithubURL),
		LinkedinURL:  models.Deref(p.LinkedinURL),
		TwitterURL:   models.Deref(p.TwitterURL),
		FacebookURL:  models.Deref(p.FacebookURL),
		InstagramURL: models.Deref(p.InstagramURL),
		WhatsappURL:  models.Deref(p.WhatsappURL),
	}
}

func (d *ProfileDraft) readForm(r *http.Request) {
	for key, dst := range map[string]*string{
		"name":         &d.Name,
		"title":        &d.Title,
		"bio":          &d.Bio,
		"email":        &d.Email,
		"phone":        &d.Phone,
		"address":      &d.Address,
		"githubUrl":    &d.GithubURL,
		"linkedinUrl":  &d.LinkedinURL,
		"twitterUrl":   &d.TwitterURL,
		"facebookUrl":  &d.FacebookURL,
		"instagramUrl": &d.InstagramURL,
		"whatsappUrl":  &d.WhatsappURL,
	} {
		*dst = strings.TrimSpace(r.FormValue(key))
	}
	if r.FormValue("removeResume") != "" {
		d.ResumeURL = ""
	}
}

func (d ProfileDraft) applyTo(p *models.Profile) {
	p.Name = d.Name
	p.Title = models.StringPtr(d.Title)
	p.Bio = models.StringPtr(d.Bio)
	p.Email = models.StringPtr(d.Email)
	p.Phone = models.StringPtr(d.Phone)
	p.Address = models.StringPtr(d.Address)
	p.ImageURL = models.StringPtr(d.ImageURL)
	p.ResumeURL = models.StringPtr(d.ResumeURL)
	p.GithubURL = models.StringPtr(d.GithubURL)
	p.LinkedinURL = models.StringPtr(d.LinkedinURL)
	p.TwitterURL = models.StringPtr(d.TwitterURL)
	p.FacebookURL = models.StringPtr(d.FacebookURL)
	p.InstagramURL = models.StringPtr(d.InstagramURL)
	p.WhatsappURL = models.StringPtr(d.WhatsappURL)
}
