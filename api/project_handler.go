package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contentInvalidator interface {
	Invalidate(ctx context.Context)
}

type projectRemover interface {
	Remove(ctx context.Context, id uuid.UUID) error
}

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
	remover     projectRemover
	content     contentInvalidator
}

func newProjectHandler(projectRepo *database.ProjectRepo, remover projectRemover, content contentInvalidator) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
		remover:     remover,
		content:     content,
	}
}

// getAllProjects retrieves all projects
// @Summary Get all projects
// @Description Retrieves all projects, newest first
// @Tags Projects
// @Produce json
// @Success 200 {array} models.Project "List of projects"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching projects"
// @Router /api/projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}

		h.responder.WriteJSON(w, projects)
	}
}

// getProject retrieves a specific project by ID
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} models.Project "Project details"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid projectID"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /api/projects/{projectID} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseID(chi.URLParam(r, "projectID"), "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.FindByID(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}

		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// createProject creates a new project
// @Summary Create project
// @Description Title and imageUrl are required. gallery may be an array of URLs or an already encoded string.
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body projectRequest true "Project data"
// @Success 201 {object} projectResponse "Created project"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Failure 401 {object} ErrorResponse "Unauthorized - Admin session required"
// @Router /api/projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req projectRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var project models.Project
		req.apply(&project)

		if err := project.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projectRepo.Add(r.Context(), &project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "project", err))
			return
		}
		h.content.Invalidate(r.Context())

		h.logger.Info().Str("projectID", project.ID.String()).Msg("project created")
		h.responder.WriteJSONStatus(w, http.StatusCreated, projectResponse{Success: true, Project: &project})
	}
}

// updateProject applies a partial update
// @Summary Update project
// @Description Only the fields present in the body are written. An explicit null clears a field.
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body projectRequest true "id plus the fields to change"
// @Success 200 {object} projectResponse "Updated project"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /api/projects [patch]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req projectRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		projectID, err := parseID(req.ID, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.FindByID(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		req.apply(project)
		if err := project.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projectRepo.Update(r.Context(), project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}
		h.content.Invalidate(r.Context())

		updated, err := h.projectRepo.FindByID(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated", "project", err))
			return
		}
		if updated == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		h.responder.WriteJSON(w, projectResponse{Success: true, Project: updated})
	}
}

// deleteProject removes a project and its media
// @Summary Delete project
// @Description Marks the project deleted, removes its media from the blob store, then purges the row.
// @Description Deleting an unknown id succeeds. pendingCleanup is true when some media could not be removed yet.
// @Tags Projects
// @Produce json
// @Param id query string true "Project ID" format(uuid)
// @Success 200 {object} map[string]bool "Success"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid id"
// @Router /api/projects [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseID(r.URL.Query().Get("id"), "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		err = h.remover.Remove(r.Context(), projectID)
		if err != nil && !errs.IsPartialFailureError(err) {
			h.responder.WriteError(w, err)
			return
		}
		h.content.Invalidate(r.Context())

		response := map[string]bool{"success": true}
		if err != nil {
			response["pendingCleanup"] = true
		}
		h.responder.WriteJSON(w, response)
	}
}
