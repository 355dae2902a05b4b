package web

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/auth"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rpupo63/portfolio-site-backend/services"
)

func (p *Pages) homeView(r *http.Request, contact ContactForm) (HomeView, error) {
	content, err := p.content.Load(r.Context())
	if err != nil {
		return HomeView{}, err
	}

	view := HomeView{
		Profile:     newProfileView(content.Profile),
		SkillGroups: groupSkills(content.Skills),
		Contact:     contact,
	}
	view.Title = view.Profile.Name
	if view.Title == "" {
		view.Title = "Portfolio"
	}
	view.Admin = auth.HasSession(r)

	for _, project := range content.Projects {
		pv := newProjectView(project)
		view.Projects = append(view.Projects, pv)
		if pv.Featured {
			view.Featured = append(view.Featured, pv)
		}
	}
	return view, nil
}

func (p *Pages) home(w http.ResponseWriter, r *http.Request) {
	view, err := p.homeView(r, ContactForm{Sent: r.URL.Query().Get("sent") == "1"})
	if err != nil {
		p.fail(w, r, err)
		return
	}
	p.render(w, http.StatusOK, "home.html", view)
}

func (p *Pages) projectDetail(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		p.notFound(w, r)
		return
	}

	project, err := p.db.ProjectRepo().FindByID(r.Context(), id)
	if err != nil {
		p.fail(w, r, err)
		return
	}
	if project == nil {
		p.notFound(w, r)
		return
	}

	profile, err := p.db.ProfileRepo().Find(r.Context())
	if err != nil {
		p.fail(w, r, err)
		return
	}

	view := ProjectDetailView{
		Profile: newProfileView(profile),
		Project: newProjectView(project),
	}
	view.Title = project.Title
	view.Admin = auth.HasSession(r)
	p.render(w, http.StatusOK, "project.html", view)
}

// contact forwards the contact form and redirects back to the home page. Invalid input
// re-renders the page with the visitor's text kept.
func (p *Pages) contact(w http.ResponseWriter, r *http.Request) {
	msg := services.ContactMessage{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Message: r.PostFormValue("message"),
	}
	msg.Normalize()

	err := msg.Validate()
	if err == nil {
		var profile *models.Profile
		profile, err = p.db.ProfileRepo().Find(r.Context())
		if err == nil {
			var profileEmail string
			if profile != nil {
				profileEmail = models.Deref(profile.Email)
			}
			err = p.notifier.Notify(r.Context(), msg, profileEmail)
		}
	}

	if err == nil {
		http.Redirect(w, r, "/?sent=1#contact", http.StatusSeeOther)
		return
	}

	status, message := describeError(err)
	view, loadErr := p.homeView(r, ContactForm{Name: msg.Name, Email: msg.Email, Message: msg.Message, Error: message})
	if loadErr != nil {
		p.fail(w, r, loadErr)
		return
	}
	p.render(w, status, "home.html", view)
}

func (p *Pages) loginForm(w http.ResponseWriter, r *http.Request) {
	if auth.HasSession(r) {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	p.render(w, http.StatusOK, "login.html", LoginView{Page: Page{Title: "Admin Login"}})
}

func (p *Pages) login(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.PostFormValue("email"))
	if err := p.admin.Verify(email, r.PostFormValue("password")); err != nil {
		p.logger.Warn().Str("email", email).Msg("admin login rejected")
		status, message := describeError(err)
		p.render(w, status, "login.html", LoginView{
			Page:  Page{Title: "Admin Login", Error: message},
			Email: email,
		})
		return
	}

	p.admin.StartSession(w)
	p.logger.Info().Msg("admin logged in")
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (p *Pages) logout(w http.ResponseWriter, r *http.Request) {
	p.admin.EndSession(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
