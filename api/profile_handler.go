package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type profileHandler struct {
	responder   Responder
	logger      zerolog.Logger
	profileRepo *database.ProfileRepo
	content     contentInvalidator
}

func newProfileHandler(profileRepo *database.ProfileRepo, content contentInvalidator) profileHandler {
	logger := log.With().Str("handlerName", "profileHandler").Logger()

	return profileHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		profileRepo: profileRepo,
		content:     content,
	}
}

// getProfile returns the profile, or an empty object before the first save
// @Summary Get profile
// @Tags Profile
// @Produce json
// @Success 200 {object} models.Profile "Profile"
// @Router /api/profile [get]
func (h profileHandler) getProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := h.profileRepo.Find(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "profile", err))
			return
		}

		if profile == nil {
			h.responder.WriteJSON(w, struct{}{})
			return
		}
		h.responder.WriteJSON(w, profile)
	}
}

// saveProfile creates the profile on first save and updates it afterwards
// @Summary Save profile
// @Description Fields absent from the body keep their stored value. name is required.
// @Tags Profile
// @Accept json
// @Produce json
// @Param profile body profileRequest true "Profile fields"
// @Success 200 {object} profileResponse "Saved profile"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid profile data"
// @Router /api/profile [post]
func (h profileHandler) saveProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req profileRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		profile, err := h.profileRepo.Find(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "profile", err))
			return
		}
		if profile == nil {
			profile = &models.Profile{}
		}

		req.apply(profile)
		if err := profile.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		saved, err := h.profileRepo.Upsert(r.Context(), profile)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("save", "profile", err))
			return
		}
		h.content.Invalidate(r.Context())

		h.responder.WriteJSON(w, profileResponse{Success: true, Profile: saved})
	}
}
