package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"golang.org/x/crypto/bcrypt"
)

const (
	CookieName   = "admin_session"
	sessionValue = "authenticated"
)

// Admin holds the single shared admin credential and issues the session cookie.
type Admin struct {
	email        string
	password     string
	passwordHash string
	secureCookie bool
	sessionTTL   time.Duration
}

func NewAdmin(email, password, passwordHash string, secureCookie bool, sessionTTL time.Duration) *Admin {
	return &Admin{
		email:        strings.TrimSpace(email),
		password:     password,
		passwordHash: passwordHash,
		secureCookie: secureCookie,
		sessionTTL:   sessionTTL,
	}
}

func AdminFromConfig(c map[string]string) *Admin {
	return NewAdmin(
		config.GetString(c, "ADMIN_EMAIL", ""),
		config.GetString(c, "ADMIN_PASSWORD", ""),
		config.GetString(c, "ADMIN_PASSWORD_HASH", ""),
		config.GetBool(c, "COOKIE_SECURE", false),
		config.GetDuration(c, "ADMIN_SESSION_TTL", 7*24*time.Hour),
	)
}

// Configured reports whether login can ever succeed.
func (a *Admin) Configured() bool {
	return a.email != "" && (a.password != "" || a.passwordHash != "")
}

// CheckCredentials compares against ADMIN_EMAIL and either the bcrypt hash or the plain password.
func (a *Admin) CheckCredentials(email, password string) bool {
	if !a.Configured() {
		return false
	}

	emailOK := subtle.ConstantTimeCompare(
		[]byte(strings.ToLower(strings.TrimSpace(email))),
		[]byte(strings.ToLower(a.email)),
	) == 1

	var passwordOK bool
	if a.passwordHash != "" {
		passwordOK = bcrypt.CompareHashAndPassword([]byte(a.passwordHash), []byte(password)) == nil
	} else {
		passwordOK = subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	}

	return emailOK && passwordOK
}

// Verify is CheckCredentials as an error: nil on success, an invalid credentials error otherwise.
func (a *Admin) Verify(email, password string) error {
	if !a.CheckCredentials(email, password) {
		return errs.NewInvalidCredentialsError()
	}
	return nil
}

func (a *Admin) StartSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sessionValue,
		Path:     "/",
		MaxAge:   int(a.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   a.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (a *Admin) EndSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// HasSession reports whether the request carries the admin cookie with the exact session value.
func HasSession(r *http.Request) bool {
	cookie, err := r.Cookie(CookieName)
	return err == nil && cookie.Value == sessionValue
}

// RequireSession returns a missing session error unless HasSession holds.
func RequireSession(r *http.Request) error {
	if !HasSession(r) {
		return errs.NewMissingSessionError()
	}
	return nil
}

// SessionCookie returns the cookie a logged-in browser sends, for use in tests and tooling.
func SessionCookie() *http.Cookie {
	return &http.Cookie{Name: CookieName, Value: sessionValue}
}
