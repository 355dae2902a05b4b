// Package web serves the server-rendered public site and the admin console.
package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-site-backend/auth"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

//go:embed templates static
var assets embed.FS

// Deps are the services the pages render from and write through.
type Deps struct {
	Database  database.Database
	Admin     *auth.Admin
	Content   *services.SiteContentReader
	Uploader  *services.MediaUploader
	Remover   *services.ProjectRemover
	Dashboard *services.DashboardReader
	Notifier  *services.ContactNotifier
}

type Pages struct {
	db        database.Database
	admin     *auth.Admin
	content   *services.SiteContentReader
	uploader  *services.MediaUploader
	remover   *services.ProjectRemover
	dashboard *services.DashboardReader
	notifier  *services.ContactNotifier
	templates map[string]*template.Template
	logger    zerolog.Logger
}

var pageFiles = []string{
	"home.html",
	"project.html",
	"login.html",
	"not_found.html",
	"admin/dashboard.html",
	"admin/projects.html",
	"admin/project_form.html",
	"admin/skills.html",
	"admin/skill_form.html",
	"admin/settings.html",
	"admin/confirm_delete.html",
}

var templateFuncs = template.FuncMap{
	"join": strings.Join,
	"iconHref": func(i Icon) string {
		return "/static/icons.svg#" + i.ID()
	},
	"inc": func(n int) int { return n + 1 },
}

// NewPages parses every page together with the shared layout. Each page gets its own
// template set so their "content" blocks do not collide.
func NewPages(d Deps) (*Pages, error) {
	templates := make(map[string]*template.Template, len(pageFiles))
	for _, name := range pageFiles {
		t, err := template.New(name).Funcs(templateFuncs).ParseFS(assets, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		templates[name] = t
	}

	return &Pages{
		db:        d.Database,
		admin:     d.Admin,
		content:   d.Content,
		uploader:  d.Uploader,
		remover:   d.Remover,
		dashboard: d.Dashboard,
		notifier:  d.Notifier,
		templates: templates,
		logger:    log.With().Str("handlerName", "pages").Logger(),
	}, nil
}

// Mount registers the public pages, the login flow and the gated admin console.
func (p *Pages) Mount(r chi.Router) {
	static, _ := fs.Sub(assets, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	r.Get("/", p.home)
	r.Get("/view", p.home)
	r.Get("/view/projects/{projectID}", p.projectDetail)
	r.Post("/contact", p.contact)

	r.Get("/login", p.loginForm)
	r.Post("/login", p.login)
	r.Post("/logout", p.logout)

	r.Route("/admin", func(r chi.Router) {
		r.Use(adminGate)

		r.Get("/", p.adminDashboard)

		r.Get("/projects", p.projectList)
		r.Get("/projects/new", p.projectNew)
		r.Post("/projects/new", p.projectSave)
		r.Get("/projects/{projectID}/edit", p.projectEdit)
		r.Post("/projects/{projectID}/edit", p.projectSave)
		r.Get("/projects/{projectID}/delete", p.projectConfirmDelete)
		r.Post("/projects/{projectID}/delete", p.projectDelete)

		r.Get("/skills", p.skillList)
		r.Get("/skills/new", p.skillNew)
		r.Post("/skills/new", p.skillSave)
		r.Get("/skills/{skillID}/edit", p.skillEdit)
		r.Post("/skills/{skillID}/edit", p.skillSave)
		r.Get("/skills/{skillID}/delete", p.skillConfirmDelete)
		r.Post("/skills/{skillID}/delete", p.skillDelete)

		r.Get("/settings", p.settings)
		r.Post("/settings", p.settingsSave)
	})

	r.NotFound(p.notFound)
}

// adminGate lets a request through only with a valid admin session cookie and sends
// everyone else to the login page.
func adminGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := auth.RequireSession(r); errs.IsMissingSessionError(err) {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// render writes the page only once it executed completely, so a template error
// never leaves a half-written 200 behind.
func (p *Pages) render(w http.ResponseWriter, status int, name string, data any) {
	t, ok := p.templates[name]
	if !ok {
		p.logger.Error().Str("template", name).Msg("unknown template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		p.logger.Error().Err(err).Str("template", name).Msg("failed to render template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// fail renders the error page for an unexpected failure.
func (p *Pages) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, message := describeError(err)
	if status >= http.StatusInternalServerError {
		p.logger.Error().Err(err).Str("path", r.URL.Path).Msg("page failed")
	}
	p.render(w, status, "not_found.html", Page{Title: http.StatusText(status), Admin: auth.HasSession(r), Error: message})
}

func (p *Pages) notFound(w http.ResponseWriter, r *http.Request) {
	p.render(w, http.StatusNotFound, "not_found.html", Page{Title: "Not Found", Admin: auth.HasSession(r)})
}

// describeError maps err to the status and the message shown on a page. Server-side failures
// only expose the details of blob store and notification errors.
func describeError(err error) (int, string) {
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) {
		return http.StatusInternalServerError, "Something went wrong. Please try again."
	}
	if apiErr.StatusCode >= http.StatusInternalServerError {
		if errs.IsBlobStoreError(err) || errs.IsBlobStoreDisabledError(err) || errors.Is(err, errs.ErrNotificationFailed) {
			return apiErr.StatusCode, apiErr.Details
		}
		return apiErr.StatusCode, "Something went wrong. Please try again."
	}

	switch {
	case errs.IsInvalidCredentialsError(err):
		return apiErr.StatusCode, "Invalid credentials"
	case errs.IsMissingSessionError(err):
		return apiErr.StatusCode, "Please sign in to continue."
	case errs.IsInvalidFieldError(err):
		return apiErr.StatusCode, fmt.Sprintf("%s %s", apiErr.Field, apiErr.Details)
	}

	message := apiErr.Message()
	if apiErr.Details != "" {
		message = fmt.Sprintf("%s (%s)", message, apiErr.Details)
	}
	return apiErr.StatusCode, message
}
