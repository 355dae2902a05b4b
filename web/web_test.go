package web

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-site-backend/auth"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rpupo63/portfolio-site-backend/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testBase = "https://cdn.example.com/"

type fakeStore struct {
	uploaded   []string
	deleted    []string
	failUpload bool
	failDelete bool
}

func (s *fakeStore) Upload(_ context.Context, key, _ string, r io.Reader, _ int64) (string, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	if s.failUpload {
		return "", errs.NewBlobStoreError("upload", errors.New("bucket unavailable"))
	}
	url := testBase + key
	s.uploaded = append(s.uploaded, url)
	return url, nil
}

func (s *fakeStore) Delete(_ context.Context, url string) error {
	if s.failDelete {
		return errs.NewBlobStoreError("delete", errors.New("bucket unavailable"))
	}
	s.deleted = append(s.deleted, url)
	return nil
}

func (s *fakeStore) Owns(url string) bool {
	return strings.HasPrefix(url, testBase)
}

type fakeEmail struct {
	sent []services.Email
}

func (f *fakeEmail) SendEmail(_ context.Context, email services.Email) error {
	f.sent = append(f.sent, email)
	return nil
}

type testEnv struct {
	router http.Handler
	db     database.Database
	store  *fakeStore
	email  *fakeEmail
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	gdb, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	db := database.New(gdb)
	require.NoError(t, db.Migrate())

	store := &fakeStore{}
	email := &fakeEmail{}
	pages, err := NewPages(Deps{
		Database:  db,
		Admin:     auth.NewAdmin("admin@example.com", "secret", "", false, time.Hour),
		Content:   services.NewSiteContentReader(db.ProfileRepo(), db.ProjectRepo(), db.SkillRepo(), nil, time.Minute),
		Uploader:  services.NewMediaUploader(store, "uploads"),
		Remover:   services.NewProjectRemover(db.ProjectRepo(), store),
		Dashboard: services.NewDashboardReader(db.DashboardRepo(), db.ProjectRepo()),
		Notifier:  services.NewContactNotifier(email),
	})
	require.NoError(t, err)

	r := chi.NewRouter()
	pages.Mount(r)
	return &testEnv{router: r, db: db, store: store, email: email}
}

func (e *testEnv) do(req *http.Request, admin bool) *httptest.ResponseRecorder {
	if admin {
		req.AddCookie(auth.SessionCookie())
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) get(path string, admin bool) *httptest.ResponseRecorder {
	return e.do(httptest.NewRequest(http.MethodGet, path, nil), admin)
}

func (e *testEnv) postForm(path string, values url.Values, admin bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(req, admin)
}

type formFile struct {
	field   string
	name    string
	content string
}

func (e *testEnv) postMultipart(t *testing.T, path string, values url.Values, files []formFile) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for key, vals := range values {
		for _, v := range vals {
			require.NoError(t, mw.WriteField(key, v))
		}
	}
	for _, f := range files {
		w, err := mw.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = io.WriteString(w, f.content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return e.do(req, true)
}

func (e *testEnv) addProject(t *testing.T, title string, featured bool, gallery ...string) *models.Project {
	t.Helper()
	project := &models.Project{
		Title:    title,
		ImageURL: models.StringPtr(testBase + "uploads/" + strings.ToLower(title) + ".png"),
		Tags:     models.StringPtr("Go, Redis"),
		Gallery:  models.EncodeGallery(gallery),
		Featured: featured,
	}
	require.NoError(t, e.db.ProjectRepo().Add(context.Background(), project))
	return project
}

func TestAdminGate(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/admin", "/admin/", "/admin/projects", "/admin/skills/new", "/admin/settings", "/admin/unknown"} {
		t.Run(path, func(t *testing.T) {
			rec := env.get(path, false)
			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, "/login", rec.Header().Get("Location"))
		})
	}

	t.Run("wrong cookie value", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "yes"})
		rec := env.do(req, false)
		assert.Equal(t, http.StatusFound, rec.Code)
	})

	t.Run("session passes through", func(t *testing.T) {
		rec := env.get("/admin", true)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Dashboard")
	})

	t.Run("public pages stay open", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, env.get("/", false).Code)
		assert.Equal(t, http.StatusOK, env.get("/login", false).Code)
	})
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	t.Run("rejects bad credentials", func(t *testing.T) {
		rec := env.postForm("/login", url.Values{"email": {"admin@example.com"}, "password": {"wrong"}}, false)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid credentials")
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("sets the session cookie", func(t *testing.T) {
		rec := env.postForm("/login", url.Values{"email": {"Admin@Example.com"}, "password": {"secret"}}, false)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/admin", rec.Header().Get("Location"))

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, auth.CookieName, cookies[0].Name)
		assert.Equal(t, "authenticated", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
	})

	t.Run("logged in users skip the form", func(t *testing.T) {
		rec := env.get("/login", true)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
	})

	t.Run("logout clears the cookie", func(t *testing.T) {
		rec := env.postForm("/logout", nil, true)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, -1, cookies[0].MaxAge)
	})
}

func TestHomePage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.db.ProfileRepo().Upsert(ctx, &models.Profile{
		Name:      "Ada Lovelace",
		Title:     models.StringPtr("Engineer"),
		GithubURL: models.StringPtr("https://github.com/ada"),
	})
	require.NoError(t, err)
	env.addProject(t, "Engine", true)
	env.addProject(t, "Notes", false)
	require.NoError(t, env.db.SkillRepo().Add(ctx, &models.Skill{Name: "Go", IconName: models.StringPtr("react:SiGo"), Category: models.StringPtr("Backend")}))
	require.NoError(t, env.db.SkillRepo().Add(ctx, &models.Skill{Name: "Vim", IconName: models.StringPtr("Terminal")}))

	for _, path := range []string{"/", "/view"} {
		rec := env.get(path, false)
		require.Equal(t, http.StatusOK, rec.Code)

		body := rec.Body.String()
		assert.Contains(t, body, "Ada Lovelace")
		assert.Contains(t, body, "https://github.com/ada")
		assert.Contains(t, body, "Engine")
		assert.Contains(t, body, "Notes")
		assert.Contains(t, body, "Backend")
		assert.Contains(t, body, "General")
		assert.Contains(t, body, "#si-SiGo")
		assert.Contains(t, body, `id="featured"`)
	}
}

func TestHomePageEmpty(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get("/", false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No projects yet.")
	assert.NotContains(t, rec.Body.String(), `id="featured"`)
}

func TestProjectDetailPage(t *testing.T) {
	env := newTestEnv(t)
	project := env.addProject(t, "Engine", false, testBase+"uploads/one.png", testBase+"uploads/demo.mp4")

	t.Run("renders gallery", func(t *testing.T) {
		rec := env.get("/view/projects/"+project.ID.String(), false)
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Engine")
		assert.Contains(t, body, `<img src="`+testBase+`uploads/one.png"`)
		assert.Contains(t, body, `<video src="`+testBase+`uploads/demo.mp4"`)
		assert.Contains(t, body, "Redis")
	})

	t.Run("unknown id", func(t *testing.T) {
		rec := env.get("/view/projects/7c4e3e52-4a3a-4e8e-9b0d-7a4c0c3f1f10", false)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		rec := env.get("/view/projects/nope", false)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestContactForm(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.db.ProfileRepo().Upsert(context.Background(), &models.Profile{Name: "Ada", Email: models.StringPtr("ada@example.com")})
	require.NoError(t, err)

	t.Run("invalid input keeps the text", func(t *testing.T) {
		rec := env.postForm("/contact", url.Values{"name": {"Bob"}, "email": {"not-an-email"}, "message": {"Hello there"}}, false)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Hello there")
		assert.Empty(t, env.email.sent)
	})

	t.Run("sends to the profile email", func(t *testing.T) {
		rec := env.postForm("/contact", url.Values{"name": {"Bob"}, "email": {"bob@example.com"}, "message": {"Hello"}}, false)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/?sent=1#contact", rec.Header().Get("Location"))

		require.Len(t, env.email.sent, 1)
		assert.Equal(t, []string{"ada@example.com"}, env.email.sent[0].To)
		assert.Equal(t, "bob@example.com", env.email.sent[0].ReplyTo)
	})

	t.Run("confirmation", func(t *testing.T) {
		rec := env.get("/?sent=1", false)
		assert.Contains(t, rec.Body.String(), "your message was sent")
	})
}

func TestStaticAssets(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get("/static/site.css", false)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.get("/static/icons.svg", false)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNotFoundPage(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get("/nowhere", false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "does not exist")
}

func TestDescribeError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "missing field",
			err:        errs.NewMissingRequiredFieldError("title", "Title and Image are required"),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Title and Image are required",
		},
		{
			name:       "invalid field",
			err:        errs.NewInvalidFieldError("percentage", "must be an integer between 0 and 100"),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "percentage must be an integer between 0 and 100",
		},
		{
			name:       "blob store",
			err:        errs.NewBlobStoreError("upload", errors.New("boom")),
			wantStatus: http.StatusBadGateway,
			wantMsg:    "Blob store failed to upload",
		},
		{
			name:       "database",
			err:        errs.NewDatabaseError("save", "project", errors.New("syntax error")),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Something went wrong. Please try again.",
		},
		{
			name:       "bad credentials",
			err:        errs.NewInvalidCredentialsError(),
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Invalid credentials",
		},
		{
			name:       "missing session",
			err:        errs.NewMissingSessionError(),
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Please sign in to continue.",
		},
		{
			name:       "not found",
			err:        errs.NewNotFoundError("project not found"),
			wantStatus: http.StatusNotFound,
			wantMsg:    "project not found",
		},
		{
			name:       "plain error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Something went wrong. Please try again.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := describeError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}
