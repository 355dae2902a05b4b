package api

import (
	"github.com/go-chi/chi/v5"
)

// setupAPIRoutes registers the JSON API. Reads, login and contact are public; everything
// else needs the admin session.
func setupAPIRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Get("/healthz", handlers.maintenanceHandler.health())

	r.Route("/api", func(r chi.Router) {
		r.Get("/projects", handlers.projectHandler.getAllProjects())
		r.Get("/projects/{projectID}", handlers.projectHandler.getProject())
		r.Get("/skills", handlers.skillHandler.getAllSkills())
		r.Get("/profile", handlers.profileHandler.getProfile())

		r.Post("/login", handlers.authHandler.login())
		r.Post("/logout", handlers.authHandler.logout())
		r.Post("/contact", handlers.contactHandler.sendMessage())

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.requireAdmin)

			// Project Handler endpoints
			r.Post("/projects", handlers.projectHandler.createProject())
			r.Patch("/projects", handlers.projectHandler.updateProject())
			r.Delete("/projects", handlers.projectHandler.deleteProject())

			// Skill Handler endpoints
			r.Post("/skills", handlers.skillHandler.createSkill())
			r.Patch("/skills", handlers.skillHandler.updateSkill())
			r.Delete("/skills", handlers.skillHandler.deleteSkill())

			r.Post("/profile", handlers.profileHandler.saveProfile())
			r.Get("/dashboard", handlers.dashboardHandler.getDashboard())

			r.Post("/uploads", handlers.uploadHandler.uploadFiles())
			r.Delete("/uploads", handlers.uploadHandler.deleteFile())

			r.Post("/maintenance/sweep", handlers.maintenanceHandler.sweep())
		})
	})
}
