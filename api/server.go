package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpupo63/portfolio-site-backend/auth"
	"github.com/rpupo63/portfolio-site-backend/cache"
	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/services"
	"github.com/rpupo63/portfolio-site-backend/storage"
	"github.com/rpupo63/portfolio-site-backend/web"
	"github.com/rs/zerolog/log"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

// Dependencies are the external resources main wires in. Nil Store, Cache and Notifier fall
// back to their disabled versions.
type Dependencies struct {
	Database database.Database
	Store    storage.Store
	Cache    cache.Cache
	Notifier *services.ContactNotifier
	Config   map[string]string
}

func NewServer(deps Dependencies) (Server, error) {
	c := deps.Config
	if c == nil {
		c = config.New()
	}

	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	startupTime := time.Now()

	router, err := newRouter(deps, withConfig(c), withStartupTime(startupTime))
	if err != nil {
		return Server{}, err
	}

	readTimeout := time.Duration(config.GetInt(c, "READ_TIMEOUT_SECONDS", 180)) * time.Second
	writeTimeout := time.Duration(config.GetInt(c, "WRITE_TIMEOUT_SECONDS", 180)) * time.Second
	idleTimeout := time.Duration(config.GetInt(c, "IDLE_TIMEOUT_SECONDS", 180)) * time.Second

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      map[string]string
	startupTime time.Time
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(deps Dependencies, opts ...func(*router)) (*chi.Mux, error) {
	var router router
	for _, opt := range opts {
		opt(&router)
	}
	if router.startupTime.IsZero() {
		router.startupTime = time.Now()
	}

	store := deps.Store
	if store == nil {
		store = storage.Disabled{}
	}
	notifier := deps.Notifier
	if notifier == nil {
		notifier = services.NewContactNotifier(nil)
	}

	db := deps.Database
	admin := auth.AdminFromConfig(router.config)
	if !admin.Configured() {
		log.Warn().Msg("ADMIN_EMAIL and ADMIN_PASSWORD(_HASH) not set, admin login is disabled")
	}

	content := services.NewSiteContentReader(db.ProfileRepo(), db.ProjectRepo(), db.SkillRepo(),
		deps.Cache, config.GetDuration(router.config, "CACHE_TTL", 5*time.Minute))
	uploader := services.NewMediaUploader(store, config.GetString(router.config, "UPLOAD_PREFIX", "uploads"))
	remover := services.NewProjectRemover(db.ProjectRepo(), store)
	dashboard := services.NewDashboardReader(db.DashboardRepo(), db.ProjectRepo())

	handlers := initializeHandlers(handlerDeps{
		database:       db,
		store:          store,
		admin:          admin,
		content:        content,
		uploader:       uploader,
		remover:        remover,
		dashboard:      dashboard,
		notifier:       notifier,
		maxUploadBytes: int64(config.GetInt(router.config, "MAX_UPLOAD_MB", 50)) << 20,
		startupTime:    router.startupTime,
	})

	pages, err := web.NewPages(web.Deps{
		Database:  db,
		Admin:     admin,
		Content:   content,
		Uploader:  uploader,
		Remover:   remover,
		Dashboard: dashboard,
		Notifier:  notifier,
	})
	if err != nil {
		return nil, err
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(middleware.RequestID)
	chiRouter.Use(middleware.RealIP)
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(ColoredHTTPLoggingMiddleware)

	acceptedOrigins := config.GetList(router.config, "ACCEPTED_ORIGINS")
	chiRouter.Use(CORSCheckMiddleware(acceptedOrigins))
	if len(acceptedOrigins) > 0 {
		chiRouter.Use(corsMiddleware(acceptedOrigins))
	}

	setupAPIRoutes(chiRouter, handlers, newAuthMiddleware())
	pages.Mount(chiRouter)

	return chiRouter, nil
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
