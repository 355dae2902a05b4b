package web

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectCreateUploadsThenSaves(t *testing.T) {
	env := newTestEnv(t)

	rec := env.postMultipart(t, "/admin/projects/new", url.Values{
		"title":       {"Demo"},
		"description": {"A demo"},
		"tags":        {" Go ,, Redis "},
		"featured":    {"true"},
	}, []formFile{
		{field: "thumbnail", name: "cover.PNG", content: "cover"},
		{field: "galleryFiles", name: "one.png", content: "one"},
		{field: "galleryFiles", name: "clip.mp4", content: "clip"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	assert.Equal(t, "/admin/projects?notice=saved", rec.Header().Get("Location"))

	require.Len(t, env.store.uploaded, 3)
	assert.True(t, strings.HasSuffix(env.store.uploaded[0], ".png"))
	assert.True(t, strings.HasSuffix(env.store.uploaded[2], ".mp4"))

	projects, err := env.db.ProjectRepo().FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 1)

	project := projects[0]
	assert.Equal(t, "Demo", project.Title)
	assert.Equal(t, env.store.uploaded[0], models.Deref(project.ImageURL))
	assert.Equal(t, "Go, Redis", models.Deref(project.Tags))
	assert.True(t, project.Featured)

	gallery, err := project.GalleryURLs()
	require.NoError(t, err)
	assert.Equal(t, env.store.uploaded[1:], gallery)

	rec = env.get("/admin/projects?notice=saved", true)
	assert.Contains(t, rec.Body.String(), "Changes saved.")
	assert.Contains(t, rec.Body.String(), "Demo")
}

func TestProjectCreateRequiresTitleAndImage(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		values url.Values
		files  []formFile
	}{
		{name: "no title", values: url.Values{"title": {"  "}}, files: []formFile{{field: "thumbnail", name: "a.png", content: "a"}}},
		{name: "no image", values: url.Values{"title": {"Demo"}}},
		{name: "gallery only", values: url.Values{"title": {"Demo"}}, files: []formFile{{field: "galleryFiles", name: "a.png", content: "a"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.postMultipart(t, "/admin/projects/new", tt.values, tt.files)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "Title and Image are required")
		})
	}

	assert.Empty(t, env.store.uploaded, "nothing is uploaded before validation passes")
	count, err := env.db.ProjectRepo().CountAll(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestProjectCreateUploadFailureKeepsForm(t *testing.T) {
	env := newTestEnv(t)
	env.store.failUpload = true

	rec := env.postMultipart(t, "/admin/projects/new", url.Values{"title": {"Demo"}, "description": {"kept text"}},
		[]formFile{{field: "thumbnail", name: "a.png", content: "a"}})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Blob store failed to upload")
	assert.Contains(t, rec.Body.String(), "kept text")

	count, err := env.db.ProjectRepo().CountAll(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestProjectEditMergesGallery(t *testing.T) {
	env := newTestEnv(t)
	project := env.addProject(t, "Engine", false, testBase+"uploads/a.png", testBase+"uploads/b.png")
	image := models.Deref(project.ImageURL)

	rec := env.get("/admin/projects/"+project.ID.String()+"/edit", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="Engine"`)

	rec = env.postMultipart(t, "/admin/projects/"+project.ID.String()+"/edit", url.Values{
		"title":         {"Engine v2"},
		"removeGallery": {testBase + "uploads/a.png"},
	}, []formFile{{field: "galleryFiles", name: "c.png", content: "c"}})
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())

	updated, err := env.db.ProjectRepo().FindByID(context.Background(), project.ID)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Engine v2", updated.Title)
	assert.Equal(t, image, models.Deref(updated.ImageURL), "thumbnail is kept when no new one is chosen")
	assert.False(t, updated.Featured)

	gallery, err := updated.GalleryURLs()
	require.NoError(t, err)
	require.Len(t, env.store.uploaded, 1)
	assert.Equal(t, []string{testBase + "uploads/b.png", env.store.uploaded[0]}, gallery)
}

func TestProjectEditUnknown(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get("/admin/projects/7c4e3e52-4a3a-4e8e-9b0d-7a4c0c3f1f10/edit", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.postMultipart(t, "/admin/projects/7c4e3e52-4a3a-4e8e-9b0d-7a4c0c3f1f10/edit", url.Values{"title": {"x"}}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProjectDelete(t *testing.T) {
	env := newTestEnv(t)
	project := env.addProject(t, "Engine", false, testBase+"uploads/a.png", "https://elsewhere.example.com/b.png")
	path := "/admin/projects/" + project.ID.String() + "/delete"

	rec := env.get(path, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Engine")

	rec = env.postForm(path, nil, true)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/projects?notice=deleted", rec.Header().Get("Location"))

	found, err := env.db.ProjectRepo().FindByID(context.Background(), project.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
	assert.ElementsMatch(t, []string{models.Deref(project.ImageURL), testBase + "uploads/a.png"}, env.store.deleted)

	rec = env.postForm(path, nil, true)
	assert.Equal(t, http.StatusSeeOther, rec.Code, "deleting twice is a no-op")
}

func TestProjectDeletePending(t *testing.T) {
	env := newTestEnv(t)
	project := env.addProject(t, "Engine", false, testBase+"uploads/a.png")
	path := "/admin/projects/" + project.ID.String() + "/delete"
	env.store.failDelete = true

	for i := 0; i < 2; i++ {
		rec := env.postForm(path, nil, true)
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/admin/projects?notice=pending", rec.Header().Get("Location"))
	}

	env.store.failDelete = false
	rec := env.postForm(path, nil, true)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/projects?notice=deleted", rec.Header().Get("Location"))

	found, err := env.db.ProjectRepo().FindByIDUnscoped(context.Background(), project.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestSkillForms(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	rec := env.get("/admin/skills/new", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "react:SiGo")

	t.Run("invalid percentage", func(t *testing.T) {
		rec := env.postForm("/admin/skills/new", url.Values{"name": {"Go"}, "iconName": {"react:SiGo"}, "percentage": {"150"}}, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "percentage must be an integer between 0 and 100")
	})

	t.Run("missing icon", func(t *testing.T) {
		rec := env.postForm("/admin/skills/new", url.Values{"name": {"Go"}}, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Icon is required")
	})

	rec = env.postForm("/admin/skills/new", url.Values{"name": {"Go"}, "iconName": {"react:SiGo"}, "percentage": {"90"}}, true)
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())

	skills, err := env.db.SkillRepo().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, models.DefaultSkillCategory, models.Deref(skills[0].Category))
	assert.Equal(t, 90, skills[0].PercentageValue())

	id := skills[0].ID.String()
	rec = env.postForm("/admin/skills/"+id+"/edit", url.Values{"name": {"Golang"}, "iconName": {"react:SiGo"}, "category": {"Backend"}}, true)
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())

	skill, err := env.db.SkillRepo().FindByID(ctx, skills[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Golang", skill.Name)
	assert.Equal(t, "Backend", models.Deref(skill.Category))
	assert.Nil(t, skill.Percentage)

	rec = env.postForm("/admin/skills/"+id+"/delete", nil, true)
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	count, err := env.db.SkillRepo().CountAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSettingsSave(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	rec := env.get("/admin/settings", true)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.postMultipart(t, "/admin/settings", url.Values{"name": {""}}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Name is required")

	rec = env.postMultipart(t, "/admin/settings", url.Values{
		"name":      {"Ada"},
		"email":     {"ada@example.com"},
		"githubUrl": {"https://github.com/ada"},
	}, []formFile{
		{field: "image", name: "me.jpg", content: "me"},
		{field: "resume", name: "cv.pdf", content: "cv"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	assert.Equal(t, "/admin/settings?notice=saved", rec.Header().Get("Location"))

	profile, err := env.db.ProfileRepo().Find(ctx)
	require.NoError(t, err)
	require.NotNil(t, profile)
	require.Len(t, env.store.uploaded, 2)
	assert.Equal(t, env.store.uploaded[0], models.Deref(profile.ImageURL))
	assert.Equal(t, env.store.uploaded[1], models.Deref(profile.ResumeURL))

	rec = env.postMultipart(t, "/admin/settings", url.Values{"name": {"Ada L."}, "removeResume": {"true"}}, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())

	profile, err = env.db.ProfileRepo().Find(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", profile.Name)
	assert.Equal(t, env.store.uploaded[0], models.Deref(profile.ImageURL), "image is kept")
	assert.Nil(t, profile.ResumeURL)
	assert.Nil(t, profile.Email, "cleared fields are stored as NULL")
}

func TestAdminDashboard(t *testing.T) {
	env := newTestEnv(t)
	env.addProject(t, "Engine", true)

	rec := env.get("/admin", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Project &#39;Engine&#39; was added")
}
