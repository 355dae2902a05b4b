package services

import (
	"context"
	"time"

	"github.com/rpupo63/portfolio-site-backend/cache"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const siteContentKey = "site:content"

type profileFinder interface {
	Find(ctx context.Context) (*models.Profile, error)
}

type projectLister interface {
	FindAll(ctx context.Context) ([]*models.Project, error)
}

type skillLister interface {
	FindAll(ctx context.Context) ([]*models.Skill, error)
}

// SiteContent is everything the public pages render.
type SiteContent struct {
	Profile  *models.Profile   `json:"profile"`
	Projects []*models.Project `json:"projects"`
	Skills   []*models.Skill   `json:"skills"`
}

// SiteContentReader loads SiteContent with one concurrent query per table, read through the cache.
type SiteContentReader struct {
	profiles profileFinder
	projects projectLister
	skills   skillLister
	cache    cache.Cache
	ttl      time.Duration
}

func NewSiteContentReader(profiles profileFinder, projects projectLister, skills skillLister, c cache.Cache, ttl time.Duration) *SiteContentReader {
	if c == nil {
		c = cache.Noop{}
	}
	return &SiteContentReader{profiles: profiles, projects: projects, skills: skills, cache: c, ttl: ttl}
}

func (r *SiteContentReader) Load(ctx context.Context) (SiteContent, error) {
	return cache.GetOrLoad(ctx, r.cache, siteContentKey, r.ttl, r.load)
}

func (r *SiteContentReader) load(ctx context.Context) (SiteContent, error) {
	var content SiteContent
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		content.Profile, err = r.profiles.Find(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		content.Projects, err = r.projects.FindAll(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		content.Skills, err = r.skills.FindAll(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return SiteContent{}, err
	}
	return content, nil
}

// Invalidate drops the cached content after a mutation.
func (r *SiteContentReader) Invalidate(ctx context.Context) {
	if err := r.cache.Del(ctx, siteContentKey); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate site content cache")
	}
}
