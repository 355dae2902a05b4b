package web

import (
	"path"
	"strings"

	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rs/zerolog/log"
)

// Page carries what every template needs.
type Page struct {
	Title  string
	Admin  bool
	Notice string
	Error  string
}

type SocialLink struct {
	Label string
	URL   string
	Icon  Icon
}

type ProfileView struct {
	Name      string
	Title     string
	Bio       string
	Email     string
	Phone     string
	Address   string
	ImageURL  string
	ResumeURL string
	Socials   []SocialLink
}

func newProfileView(p *models.Profile) ProfileView {
	if p == nil {
		return ProfileView{}
	}

	view := ProfileView{
		Name:      p.Name,
		Title:     models.Deref(p.Title),
		Bio:       models.Deref(p.Bio),
		Email:     models.Deref(p.Email),
		Phone:     models.Deref(p.Phone),
		Address:   models.Deref(p.Address),
		ImageURL:  models.Deref(p.ImageURL),
		ResumeURL: models.Deref(p.ResumeURL),
	}

	for _, s := range []struct {
		label string
		url   *string
		icon  string
	}{
		{"GitHub", p.GithubURL, "Github"},
		{"LinkedIn", p.LinkedinURL, "Globe"},
		{"Twitter", p.TwitterURL, "Globe"},
		{"Facebook", p.FacebookURL, "Globe"},
		{"Instagram", p.InstagramURL, "Globe"},
		{"WhatsApp", p.WhatsappURL, "Send"},
	} {
		if url := models.Deref(s.url); url != "" {
			view.Socials = append(view.Socials, SocialLink{Label: s.label, URL: url, Icon: ResolveIcon(s.icon)})
		}
	}
	return view
}

type MediaItem struct {
	URL     string
	IsVideo bool
}

func newMediaItem(url string) MediaItem {
	return MediaItem{URL: url, IsVideo: isVideoURL(url)}
}

var videoExtensions = map[string]bool{".mp4": true, ".webm": true, ".mov": true, ".ogg": true, ".m4v": true}

func isVideoURL(url string) bool {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}
	return videoExtensions[strings.ToLower(path.Ext(url))]
}

type ProjectView struct {
	ID          string
	Title       string
	Description string
	Image       MediaItem
	LiveURL     string
	GithubURL   string
	Tags        []string
	Featured    bool
	Gallery     []MediaItem
	Created     string
}

func newProjectView(p *models.Project) ProjectView {
	view := ProjectView{
		ID:          p.ID.String(),
		Title:       p.Title,
		Description: models.Deref(p.Description),
		LiveURL:     models.Deref(p.LiveURL),
		GithubURL:   models.Deref(p.GithubURL),
		Tags:        p.TagList(),
		Featured:    p.Featured,
		Created:     p.CreatedAt.Format("Jan 2, 2006"),
	}
	if img := models.Deref(p.ImageURL); img != "" {
		view.Image = newMediaItem(img)
	}

	gallery, err := p.GalleryURLs()
	if err != nil {
		log.Warn().Err(err).Str("projectID", view.ID).Msg("project gallery is not valid JSON")
	}
	for _, url := range gallery {
		view.Gallery = append(view.Gallery, newMediaItem(url))
	}
	return view
}

type SkillItem struct {
	ID         string
	Name       string
	IconKey    string
	Icon       Icon
	Category   string
	Percentage int
}

type SkillGroup struct {
	Title  string
	Icon   Icon
	Skills []SkillItem
}

func newSkillItem(s *models.Skill) SkillItem {
	return SkillItem{
		ID:         s.ID.String(),
		Name:       s.Name,
		IconKey:    models.Deref(s.IconName),
		Icon:       ResolveIcon(models.Deref(s.IconName)),
		Category:   s.CategoryOrDefault(),
		Percentage: s.PercentageValue(),
	}
}

// groupSkills groups by category in order of first appearance.
func groupSkills(skills []*models.Skill) []SkillGroup {
	var groups []SkillGroup
	index := map[string]int{}

	for _, s := range skills {
		item := newSkillItem(s)
		i, ok := index[item.Category]
		if !ok {
			i = len(groups)
			index[item.Category] = i
			groups = append(groups, SkillGroup{Title: item.Category, Icon: CategoryIcon(item.Category)})
		}
		groups[i].Skills = append(groups[i].Skills, item)
	}
	return groups
}

type HomeView struct {
	Page
	Profile     ProfileView
	Featured    []ProjectView
	Projects    []ProjectView
	SkillGroups []SkillGroup
	Contact     ContactForm
}

type ContactForm struct {
	Name    string
	Email   string
	Message string
	Sent    bool
	Error   string
}

type ProjectDetailView struct {
	Page
	Profile ProfileView
	Project ProjectView
}

type LoginView struct {
	Page
	Email string
}
