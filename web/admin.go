package web

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rpupo63/portfolio-site-backend/services"
)

const maxFormMemory = 32 << 20

var notices = map[string]string{
	"saved":   "Changes saved.",
	"deleted": "Deleted.",
	"pending": "Deleted. Removing its media failed and will be retried on the next sweep.",
}

type DashboardView struct {
	Page
	Dashboard services.Dashboard
}

type ProjectListView struct {
	Page
	Projects []ProjectView
}

type ProjectFormView struct {
	Page
	Draft ProjectDraft
}

type SkillListView struct {
	Page
	Skills []SkillItem
}

type SkillFormView struct {
	Page
	Draft      SkillDraft
	IconGroups []IconGroup
}

type SettingsView struct {
	Page
	Draft ProfileDraft
}

type ConfirmDeleteView struct {
	Page
	Kind   string
	Name   string
	Action string
	Cancel string
}

func adminPage(r *http.Request, title string) Page {
	return Page{Title: title, Admin: true, Notice: notices[r.URL.Query().Get("notice")]}
}

// parseForm accepts both multipart and urlencoded submissions.
func parseForm(r *http.Request) error {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return errs.NewMalformedPayloadError("form", err)
	}
	return nil
}

func formFiles(r *http.Request, key string) []services.UploadFile {
	if r.MultipartForm == nil {
		return nil
	}
	return services.FilesFromMultipart(r.MultipartForm.File[key])
}

func firstFile(files []services.UploadFile) []services.UploadFile {
	if len(files) > 1 {
		return files[:1]
	}
	return files
}

// upload sends files to the blob store one after another, logging the aggregate progress.
func (p *Pages) upload(r *http.Request, form string, files []services.UploadFile) ([]services.UploadedFile, error) {
	if len(files) == 0 {
		return nil, nil
	}

	logger := p.logger.With().Str("form", form).Int("files", len(files)).Logger()
	uploaded, err := p.uploader.UploadAll(r.Context(), files, func(progress float64) {
		logger.Debug().Float64("progress", progress).Msg("upload progress")
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Msg("uploads finished")
	return uploaded, nil
}

func (p *Pages) adminDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := p.dashboard.Load(r.Context())
	if err != nil {
		p.fail(w, r, errs.NewDatabaseError("load", "dashboard", err))
		return
	}
	p.render(w, http.StatusOK, "admin/dashboard.html", DashboardView{Page: adminPage(r, "Dashboard"), Dashboard: dashboard})
}

func (p *Pages) projectList(w http.ResponseWriter, r *http.Request) {
	projects, err := p.db.ProjectRepo().FindAll(r.Context())
	if err != nil {
		p.fail(w, r, errs.NewDatabaseError("find", "projects", err))
		return
	}

	view := ProjectListView{Page: adminPage(r, "Projects")}
	for _, project := range projects {
		view.Projects = append(view.Projects, newProjectView(project))
	}
	p.render(w, http.StatusOK, "admin/projects.html", view)
}

// findProject loads the project named by the route, rendering a 404 when there is none.
func (p *Pages) findProject(w http.ResponseWriter, r *http.Request) (*models.Project, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		p.notFound(w, r)
		return nil, false
	}

	project, err := p.db.ProjectRepo().FindByID(r.Context(), id)
	if err != nil {
		p.fail(w, r, errs.NewDatabaseError("find", "project", err))
		return nil, false
	}
	if project == nil {
		p.notFound(w, r)
		return nil, false
	}
	return project, true
}

func (p *Pages) projectNew(w http.ResponseWriter, r *http.Request) {
	p.render(w, http.StatusOK, "admin/project_form.html", ProjectFormView{Page: adminPage(r, "New Project")})
}

func (p *Pages) projectEdit(w http.ResponseWriter, r *http.Request) {
	project, ok := p.findProject(w, r)
	if !ok {
		return
	}
	p.render(w, http.StatusOK, "admin/project_form.html", ProjectFormView{
		Page:  adminPage(r, "Edit Project"),
		Draft: newProjectDraft(project),
	})
}

// projectSave handles both the new and the edit form. Required fields are checked before
// anything is uploaded; files then go up one at a time and their URLs are merged into the
// draft before the row is written.
func (p *Pages) projectSave(w http.ResponseWriter, r *http.Request) {
	project := &models.Project{}
	title := "New Project"
	draft := newProjectDraft(nil)
	if chi.URLParam(r, "projectID") != "" {
		existing, ok := p.findProject(w, r)
		if !ok {
			return
		}
		project = existing
		title = "Edit Project"
		draft = newProjectDraft(existing)
	}
	renderError := func(err error) {
		status, message := describeError(err)
		page := adminPage(r, title)
		page.Error = message
		p.render(w, status, "admin/project_form.html", ProjectFormView{Page: page, Draft: draft})
	}

	if err := parseForm(r); err != nil {
		renderError(err)
		return
	}
	draft.readForm(r)

	thumbnail := firstFile(formFiles(r, "thumbnail"))
	galleryFiles := formFiles(r, "galleryFiles")

	if draft.Title == "" || (draft.ImageURL == "" && len(thumbnail) == 0) {
		field := "title"
		if draft.Title != "" {
			field = "imageUrl"
		}
		renderError(errs.NewMissingRequiredFieldError(field, "Title and Image are required"))
		return
	}

	uploaded, err := p.upload(r, "project", append(append([]services.UploadFile(nil), thumbnail...), galleryFiles...))
	if err != nil {
		renderError(err)
		return
	}

	var newThumbnail *services.UploadedFile
	if len(thumbnail) == 1 {
		newThumbnail = &uploaded[0]
		uploaded = uploaded[1:]
	}
	draft.merge(newThumbnail, uploaded)
	draft.applyTo(project)

	if err := project.Validate(); err != nil {
		renderError(err)
		return
	}

	if draft.Editing() {
		err = p.db.ProjectRepo().Update(r.Context(), project)
	} else {
		err = p.db.ProjectRepo().Add(r.Context(), project)
	}
	if err != nil {
		if !errs.IsNotFound(err) {
			err = errs.NewDatabaseError("save", "project", err)
		}
		renderError(err)
		return
	}
	p.content.Invalidate(r.Context())

	p.logger.Info().Str("projectID", project.ID.String()).Msg("project saved")
	http.Redirect(w, r, "/admin/projects?notice=saved", http.StatusSeeOther)
}

func (p *Pages) projectConfirmDelete(w http.ResponseWriter, r *http.Request) {
	project, ok := p.findProject(w, r)
	if !ok {
		return
	}
	p.render(w, http.StatusOK, "admin/confirm_delete.html", ConfirmDeleteView{
		Page:   adminPage(r, "Delete Project"),
		Kind:   "project",
		Name:   project.Title,
		Action: "/admin/projects/" + project.ID.String() + "/delete",
		Cancel: "/admin/projects",
	})
}

func (p *Pages) projectDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		p.notFound(w, r)
		return
	}

	err = p.remover.Remove(r.Context(), id)
	if err != nil && !errs.IsPartialFailureError(err) {
		p.fail(w, r, err)
		return
	}
	p.content.Invalidate(r.Context())

	notice := "deleted"
	if err != nil {
		notice = "pending"
	}
	http.Redirect(w, r, "/admin/projects?notice="+notice, http.StatusSeeOther)
}

func (p *Pages) skillList(w http.ResponseWriter, r *http.Request) {
	skills, err := p.db.SkillRepo().FindAll(r.Context())
	if err != nil {
		p.fail(w, r, errs.NewDatabaseError("find", "skills", err))
		return
	}

	view := SkillListView{Page: adminPage(r, "Skills")}
	for _, skill := range skills {
		view.Skills = append(view.Skills, newSkillItem(skill))
	}
	p.render(w, http.StatusOK, "admin/skills.html", view)
}

func (p *Pages) findSkill(w http.ResponseWriter, r *http.Request) (*models.Skill, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "skillID"))
	if err != nil {
		p.notFound(w, r)
		return nil, false
	}

	skill, err := p.db.SkillRepo().FindByID(r.Context(), id)
	if err != nil {
		p.fail(w, r, errs.NewDatabaseError("find", "skill", err))
		return nil, false
	}
	if skill == nil {
		p.notFound(w, r)
		return nil, false
	}
	return skill, true
}

func (p *Pages) skillNew(w http.ResponseWriter, r *http.Request) {
	p.render(w, http.StatusOK, "admin/skill_form.html", SkillFormView{
		Page:       adminPage(r, "New Skill"),
		Draft:      newSkillDraft(nil),
		IconGroups: PopularIcons(),
	})
}

func (p *Pages) skillEdit(w http.ResponseWriter, r *http.Request) {
	skill, ok := p.findSkill(w, r)
	if !ok {
		return
	}
	p.render(w, http.StatusOK, "admin/skill_form.html", SkillFormView{
		Page:       adminPage(r, "Edit Skill"),
		Draft:      newSkillDraft(skill),
		IconGroups: PopularIcons(),
	})
}

func (p *Pages) skillSave(w http.ResponseWriter, r *http.Request) {
	skill := &models.Skill{}
	title := "New Skill"
	draft := newSkillDraft(nil)
	if chi.URLParam(r, "skillID") != "" {
		existing, ok := p.findSkill(w, r)
		if !ok {
			return
		}
		skill = existing
		title = "Edit Skill"
		draft = newSkillDraft(existing)
	}
	renderError := func(err error) {
		status, message := describeError(err)
		page := adminPage(r, title)
		page.Error = message
		p.render(w, status, "admin/skill_form.html", SkillFormView{Page: page, Draft: draft, IconGroups: PopularIcons()})
	}

	if err := parseForm(r); err != nil {
		renderError(err)
		return
	}
	draft.readForm(r)
	draft.applyTo(skill)

	if err := skill.Validate(); err != nil {
		renderError(err)
		return
	}

	var err error
	if draft.Editing() {
		err = p.db.SkillRepo().Update(r.Context(), skill)
	} else {
		err = p.db.SkillRepo().Add(r.Context(), skill)
	}
	if err != nil {
		if !errs.IsNotFound(err) {
			err = errs.NewDatabaseError("save", "skill", err)
		}
		renderError(err)
		return
	}
	p.content.Invalidate(r.Context())

	p.logger.Info().Str("skillID", skill.ID.String()).Msg("skill saved")
	http.Redirect(w, r, "/admin/skills?notice=saved", http.StatusSeeOther)
}

func (p *Pages) skillConfirmDelete(w http.ResponseWriter, r *http.Request) {
	skill, ok := p.findSkill(w, r)
	if !ok {
		return
	}
	p.render(w, http.StatusOK, "admin/confirm_delete.html", ConfirmDeleteView{
		Page:   adminPage(r, "Delete Skill"),
		Kind:   "skill",
		Name:   skill.Name,
		Action: "/admin/skills/" + skill.ID.String() + "/delete",
		Cancel: "/admin/skills",
	})
}

func (p *Pages) skillDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "skillID"))
	if err != nil {
		p.notFound(w, r)
		return
	}

	if err := p.db.SkillRepo().Delete(r.Context(), id); err != nil {
		p.fail(w, r, errs.NewDatabaseError("delete", "skill", err))
		return
	}
	p.content.Invalidate(r.Context())

	http.Redirect(w, r, "/admin/skills?notice=deleted", http.StatusSeeOther)
}

func (p *Pages) settings(w http.ResponseWriter, r *http.Request) {
	profile, err := p.db.ProfileRepo().Find(r.Context())
	if err != nil {
		p.fail(w, r, errs.NewDatabaseError("find", "profile", err))
		return
	}
	p.render(w, http.StatusOK, "admin/settings.html", SettingsView{Page: adminPage(r, "Settings"), Draft: newProfileDraft(profile)})
}

// settingsSave upserts the profile. A new image or resume file replaces the stored one.
func (p *Pages) settingsSave(w http.ResponseWriter, r *http.Request) {
	profile, err := p.db.ProfileRepo().Find(r.Context())
	if err != nil {
		p.fail(w, r, errs.NewDatabaseError("find", "profile", err))
		return
	}
	if profile == nil {
		profile = &models.Profile{}
	}

	draft := newProfileDraft(profile)
	renderError := func(err error) {
		status, message := describeError(err)
		page := adminPage(r, "Settings")
		page.Error = message
		p.render(w, status, "admin/settings.html", SettingsView{Page: page, Draft: draft})
	}

	if err := parseForm(r); err != nil {
		renderError(err)
		return
	}
	draft.readForm(r)
	draft.applyTo(profile)

	if err := profile.Validate(); err != nil {
		renderError(err)
		return
	}

	image := firstFile(formFiles(r, "image"))
	resume := firstFile(formFiles(r, "resume"))
	uploaded, err := p.upload(r, "settings", append(append([]services.UploadFile(nil), image...), resume...))
	if err != nil {
		renderError(err)
		return
	}
	if len(image) == 1 {
		draft.ImageURL = uploaded[0].URL
		uploaded = uploaded[1:]
	}
	if len(resume) == 1 {
		draft.ResumeURL = uploaded[0].URL
	}
	draft.applyTo(profile)

	if _, err := p.db.ProfileRepo().Upsert(r.Context(), profile); err != nil {
		renderError(errs.NewDatabaseError("save", "profile", err))
		return
	}
	p.content.Invalidate(r.Context())

	p.logger.Info().Msg("profile saved")
	http.Redirect(w, r, "/admin/settings?notice=saved", http.StatusSeeOther)
}
