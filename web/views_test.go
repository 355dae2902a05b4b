package web

import (
	"testing"

	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupSkills(t *testing.T) {
	skill := func(name, category string) *models.Skill {
		return &models.Skill{Name: name, Category: models.StringPtr(category), IconName: models.StringPtr("Code")}
	}

	groups := groupSkills([]*models.Skill{
		skill("Docker", ""),
		skill("React", "Frontend"),
		skill("Go", "Backend"),
		skill("Vue", "Frontend"),
		skill("Make", "  "),
	})

	require.Len(t, groups, 3)
	assert.Equal(t, "General", groups[0].Title)
	assert.Equal(t, "Frontend", groups[1].Title)
	assert.Equal(t, "Backend", groups[2].Title)

	assert.Equal(t, Icon{Set: "lucide", Name: "Wrench"}, groups[0].Icon)
	assert.Equal(t, Icon{Set: "lucide", Name: "Code2"}, groups[1].Icon)
	assert.Equal(t, Icon{Set: "lucide", Name: "Server"}, groups[2].Icon)

	var names []string
	for _, s := range groups[0].Skills {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Docker", "Make"}, names)
	assert.Len(t, groups[1].Skills, 2)

	assert.Empty(t, groupSkills(nil))
}

func TestIsVideoURL(t *testing.T) {
	tests := map[string]bool{
		"https://cdn.example.com/a.mp4":          true,
		"https://cdn.example.com/a.WEBM":         true,
		"https://cdn.example.com/a.mov?token=1":  true,
		"https://cdn.example.com/a.png":          false,
		"https://cdn.example.com/mp4/a.jpg#frag": false,
		"":                                       false,
	}
	for url, want := range tests {
		assert.Equal(t, want, isVideoURL(url), url)
	}
}

func TestNewProfileView(t *testing.T) {
	assert.Equal(t, ProfileView{}, newProfileView(nil))

	view := newProfileView(&models.Profile{
		Name:        "Ada",
		GithubURL:   models.StringPtr("https://github.com/ada"),
		WhatsappURL: models.StringPtr("https://wa.me/1"),
	})
	assert.Equal(t, "Ada", view.Name)
	require.Len(t, view.Socials, 2)
	assert.Equal(t, "GitHub", view.Socials[0].Label)
	assert.Equal(t, "WhatsApp", view.Socials[1].Label)
}

func TestNewProjectViewToleratesBadGallery(t *testing.T) {
	bad := "not json"
	view := newProjectView(&models.Project{Title: "X", Gallery: &bad, Tags: models.StringPtr("a, b")})
	assert.Empty(t, view.Gallery)
	assert.Equal(t, []string{"a", "b"}, view.Tags)
}

func TestProjectDraftMerge(t *testing.T) {
	draft := ProjectDraft{
		ImageURL: "old.png",
		Gallery:  []MediaItem{newMediaItem("a.png"), newMediaItem("b.mp4")},
	}

	draft.merge(nil, nil)
	assert.Equal(t, "old.png", draft.ImageURL)
	assert.Equal(t, []string{"a.png", "b.mp4"}, draft.galleryURLs())

	var p models.Project
	draft.applyTo(&p)
	urls, err := p.GalleryURLs()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.png", "b.mp4"}, urls)

	draft.Gallery = nil
	draft.applyTo(&p)
	assert.Nil(t, p.Gallery, "an empty gallery is stored as NULL")
}

func TestNormalizeTags(t *testing.T) {
	assert.Equal(t, "Go, Redis", normalizeTags(" Go,, Redis ,"))
	assert.Equal(t, "", normalizeTags(" , "))
}
