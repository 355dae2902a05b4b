package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-site-backend/auth"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	admin     *auth.Admin
}

func newAuthHandler(admin *auth.Admin) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		admin:     admin,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// login starts an admin session
// @Summary Log in
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body loginRequest true "Admin credentials"
// @Success 200 {object} loginResponse "Logged in, admin_session cookie set"
// @Failure 401 {object} loginResponse "Invalid credentials"
// @Router /api/login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.admin.Verify(req.Email, req.Password); err != nil {
			if !errs.IsInvalidCredentialsError(err) {
				h.responder.WriteError(w, err)
				return
			}
			h.logger.Warn().Str("remote_addr", r.RemoteAddr).Msg("failed admin login")
			h.responder.WriteJSONStatus(w, http.StatusUnauthorized, loginResponse{
				Success: false,
				Message: "Invalid credentials",
			})
			return
		}

		h.admin.StartSession(w)
		h.responder.WriteJSON(w, loginResponse{Success: true})
	}
}

// logout clears the admin session cookie
// @Summary Log out
// @Tags Auth
// @Success 200 {object} loginResponse "Logged out"
// @Router /api/logout [post]
func (h authHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.admin.EndSession(w)
		h.responder.WriteJSON(w, loginResponse{Success: true})
	}
}
