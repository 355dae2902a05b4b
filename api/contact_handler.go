package api

import (
	"context"
	"net/http"

	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rpupo63/portfolio-site-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contactNotifier interface {
	Notify(ctx context.Context, msg services.ContactMessage, profileEmail string) error
}

type contactHandler struct {
	responder   Responder
	logger      zerolog.Logger
	profileRepo *database.ProfileRepo
	notifier    contactNotifier
}

func newContactHandler(profileRepo *database.ProfileRepo, notifier contactNotifier) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		profileRepo: profileRepo,
		notifier:    notifier,
	}
}

// sendMessage forwards a contact form submission to the site owner
// @Summary Send contact message
// @Tags Contact
// @Accept json
// @Produce json
// @Param message body services.ContactMessage true "Contact message"
// @Success 200 {object} successResponse "Delivered"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid message"
// @Failure 502 {object} ErrorResponse "Delivery failed"
// @Router /api/contact [post]
func (h contactHandler) sendMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var msg services.ContactMessage
		if err := decodeJSON(w, r, &msg); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		msg.Normalize()
		if err := msg.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		profile, err := h.profileRepo.Find(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "profile", err))
			return
		}
		var profileEmail string
		if profile != nil {
			profileEmail = models.Deref(profile.Email)
		}

		if err := h.notifier.Notify(r.Context(), msg, profileEmail); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, successResponse{Success: true})
	}
}
