package api

import (
	"time"

	"github.com/rpupo63/portfolio-site-backend/auth"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/services"
	"github.com/rpupo63/portfolio-site-backend/storage"
)

type handlerDeps struct {
	database       database.Database
	store          storage.Store
	admin          *auth.Admin
	content        *services.SiteContentReader
	uploader       *services.MediaUploader
	remover        *services.ProjectRemover
	dashboard      *services.DashboardReader
	notifier       *services.ContactNotifier
	maxUploadBytes int64
	startupTime    time.Time
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(d handlerDeps) *routeHandlers {
	return &routeHandlers{
		projectHandler:     newProjectHandler(d.database.ProjectRepo(), d.remover, d.content),
		skillHandler:       newSkillHandler(d.database.SkillRepo(), d.content),
		profileHandler:     newProfileHandler(d.database.ProfileRepo(), d.content),
		dashboardHandler:   newDashboardHandler(d.dashboard),
		authHandler:        newAuthHandler(d.admin),
		uploadHandler:      newUploadHandler(d.uploader, d.store, d.maxUploadBytes),
		contactHandler:     newContactHandler(d.database.ProfileRepo(), d.notifier),
		maintenanceHandler: newMaintenanceHandler(d.database, d.remover, d.startupTime),
	}
}
