package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rpupo63/portfolio-site-backend/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectStore interface {
	FindByIDUnscoped(ctx context.Context, id uuid.UUID) (*models.Project, error)
	MarkDeleted(ctx context.Context, id uuid.UUID) error
	Purge(ctx context.Context, id uuid.UUID) error
	FindMarked(ctx context.Context) ([]*models.Project, error)
}

// ProjectRemover deletes a project and its media in three steps: mark the row, delete the
// blobs it owns, purge the row. A row whose blobs could not all be deleted stays marked,
// hidden from reads, until a later Sweep succeeds.
type ProjectRemover struct {
	projects projectStore
	store    storage.Store
	logger   zerolog.Logger
}

type SweepResult struct {
	Purged  int `json:"purged"`
	Pending int `json:"pending"`
}

func NewProjectRemover(projects projectStore, store storage.Store) *ProjectRemover {
	return &ProjectRemover{
		projects: projects,
		store:    store,
		logger:   log.With().Str("service", "projectRemover").Logger(),
	}
}

// Remove deletes the project with id. When some of its media could not be deleted the row
// stays marked and the returned error matches errs.IsPartialFailureError. Removing an unknown
// id is a no-op. Removing a project that is already marked retries its cleanup.
func (r *ProjectRemover) Remove(ctx context.Context, id uuid.UUID) error {
	project, err := r.projects.FindByIDUnscoped(ctx, id)
	if err != nil {
		return errs.NewDatabaseError("find", "project", err)
	}
	if project == nil {
		return nil
	}

	if !project.DeletedAt.Valid {
		if err := r.projects.MarkDeleted(ctx, id); err != nil {
			return errs.NewDatabaseError("mark deleted", "project", err)
		}
	}

	return r.reconcile(ctx, project)
}

// Sweep retries every marked project.
func (r *ProjectRemover) Sweep(ctx context.Context) (SweepResult, error) {
	var result SweepResult

	marked, err := r.projects.FindMarked(ctx)
	if err != nil {
		return result, errs.NewDatabaseError("find marked", "projects", err)
	}

	for _, project := range marked {
		err := r.reconcile(ctx, project)
		switch {
		case err == nil:
			result.Purged++
		case errs.IsPartialFailureError(err):
			result.Pending++
		default:
			return result, err
		}
	}

	if len(marked) > 0 {
		r.logger.Info().Int("purged", result.Purged).Int("pending", result.Pending).Msg("sweep finished")
	}
	return result, nil
}

func (r *ProjectRemover) reconcile(ctx context.Context, project *models.Project) error {
	logger := r.logger.With().Str("projectID", project.ID.String()).Logger()

	urls, err := project.MediaURLs()
	if err != nil {
		logger.Warn().Err(err).Msg("gallery is not valid JSON, removing primary image only")
	}

	var failed []string
	for _, url := range urls {
		if !r.store.Owns(url) {
			logger.Debug().Str("url", url).Msg("skipping media not held by the blob store")
			continue
		}
		if err := r.store.Delete(ctx, url); err != nil {
			logger.Error().Err(err).Str("url", url).Msg("failed to delete project media")
			failed = append(failed, url)
		}
	}

	if len(failed) > 0 {
		err := errs.NewPartialFailureError("project media cleanup", failed)
		logger.Warn().Err(err).Msg("project left marked for sweep")
		return err
	}

	if err := r.projects.Purge(ctx, project.ID); err != nil {
		return errs.NewDatabaseError("purge", "project", err)
	}
	logger.Info().Int("media", len(urls)).Msg("project purged")
	return nil
}
