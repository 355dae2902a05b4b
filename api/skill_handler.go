package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type skillHandler struct {
	responder Responder
	logger    zerolog.Logger
	skillRepo *database.SkillRepo
	content   contentInvalidator
}

func newSkillHandler(skillRepo *database.SkillRepo, content contentInvalidator) skillHandler {
	logger := log.With().Str("handlerName", "skillHandler").Logger()

	return skillHandler{
		responder: NewResponder(logger),
		logger:    logger,
		skillRepo: skillRepo,
		content:   content,
	}
}

// getAllSkills retrieves all skills
// @Summary Get all skills
// @Tags Skills
// @Produce json
// @Success 200 {array} models.Skill "List of skills"
// @Router /api/skills [get]
func (h skillHandler) getAllSkills() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skills, err := h.skillRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "skills", err))
			return
		}

		h.responder.WriteJSON(w, skills)
	}
}

// createSkill creates a new skill
// @Summary Create skill
// @Description name and iconName are required. category defaults to General. percentage must be 0-100 when set.
// @Tags Skills
// @Accept json
// @Produce json
// @Param skill body skillRequest true "Skill data"
// @Success 201 {object} skillResponse "Created skill"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid skill data"
// @Router /api/skills [post]
func (h skillHandler) createSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req skillRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var skill models.Skill
		req.apply(&skill)
		if skill.Category == nil {
			skill.Category = models.StringPtr(models.DefaultSkillCategory)
		}

		if err := skill.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.skillRepo.Add(r.Context(), &skill); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "skill", err))
			return
		}
		h.content.Invalidate(r.Context())

		h.responder.WriteJSONStatus(w, http.StatusCreated, skillResponse{Success: true, Skill: &skill})
	}
}

// updateSkill applies a partial update
// @Summary Update skill
// @Tags Skills
// @Accept json
// @Produce json
// @Param skill body skillRequest true "id plus the fields to change"
// @Success 200 {object} skillResponse "Updated skill"
// @Failure 404 {object} ErrorResponse "Not Found - Skill not found"
// @Router /api/skills [patch]
func (h skillHandler) updateSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req skillRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		skillID, err := parseID(req.ID, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		skill, err := h.skillRepo.FindByID(r.Context(), skillID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "skill", err))
			return
		}
		if skill == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("skill not found"))
			return
		}

		req.apply(skill)
		if err := skill.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.skillRepo.Update(r.Context(), skill); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "skill", err))
			return
		}
		h.content.Invalidate(r.Context())

		h.responder.WriteJSON(w, skillResponse{Success: true, Skill: skill})
	}
}

// deleteSkill deletes a skill by ID
// @Summary Delete skill
// @Tags Skills
// @Param id query string true "Skill ID" format(uuid)
// @Success 200 {object} successResponse "Success"
// @Router /api/skills [delete]
func (h skillHandler) deleteSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skillID, err := parseID(r.URL.Query().Get("id"), "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.skillRepo.Delete(r.Context(), skillID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "skill", err))
			return
		}
		h.content.Invalidate(r.Context())

		h.responder.WriteJSON(w, successResponse{Success: true})
	}
}
