// Package catalog exposes read/query access to job and company reference
// data and manages the saved-jobs relation for the signed-in user.
package catalog

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jfabis/FluffyJobs/internal/fixtures"
	"github.com/jfabis/FluffyJobs/internal/models"
)

// Source reports where the in-memory catalog came from.
type Source string

const (
	SourceBackend  Source = "backend"
	SourceCache    Source = "cache"
	SourceFixtures Source = "fixtures"
)

// ListingAPI is the read-only slice of the backend the catalog loads from.
type ListingAPI interface {
	Jobs(ctx context.Context) ([]models.Job, error)
	Companies(ctx context.Context) ([]models.Company, error)
}

// Store is the local fallback for catalog data (the sqlite cache).
type Store interface {
	Jobs(ctx context.Context) ([]models.Job, error)
	Companies(ctx context.Context) ([]models.Company, error)
	ReplaceJobs(ctx context.Context, jobs []models.Job) error
	ReplaceCompanies(ctx context.Context, companies []models.Company) error
}

type Catalog struct {
	mu        sync.Mutex
	jobs      []models.Job
	companies []models.Company
	source    Source
	loading   bool

	saved savedState

	api    ListingAPI
	savedA SavedAPI
	auth   AuthState
	store  Store
	logger zerolog.Logger
}

type Options struct {
	API    ListingAPI
	Saved  SavedAPI
	Auth   AuthState
	Store  Store // optional
	Logger zerolog.Logger
}

func New(opts Options) *Catalog {
	return &Catalog{
		api:    opts.API,
		savedA: opts.Saved,
		auth:   opts.Auth,
		store:  opts.Store,
		logger: opts.Logger,
		saved:  newSavedState(),
	}
}

func (c *Catalog) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *Catalog) Source() Source {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.source
}

// Load populates the in-memory catalog: backend first, then the local
// cache, then the built-in fixtures. It never fails outright; the worst
// case is the small fixture catalog.
func (c *Catalog) Load(ctx context.Context) {
	c.setLoading(true)
	defer c.setLoading(false)

	jobs, jobsErr := c.api.Jobs(ctx)
	companies, companiesErr := c.api.Companies(ctx)
	if jobsErr == nil && companiesErr == nil {
		c.install(jobs, companies, SourceBackend)
		c.persist(ctx, jobs, companies)
		return
	}
	c.logger.Warn().
		AnErr("jobs", jobsErr).
		AnErr("companies", companiesErr).
		Msg("catalog fetch failed, falling back")

	if c.store != nil {
		cachedJobs, err := c.store.Jobs(ctx)
		if err == nil && len(cachedJobs) > 0 {
			cachedCompanies, err := c.store.Companies(ctx)
			if err != nil {
				cachedCompanies = nil
			}
			c.install(cachedJobs, cachedCompanies, SourceCache)
			return
		}
	}

	c.install(fixtures.Jobs(), fixtures.Companies(), SourceFixtures)
}

func (c *Catalog) install(jobs []models.Job, companies []models.Company, source Source) {
	c.mu.Lock()
	c.jobs = jobs
	c.companies = companies
	c.source = source
	c.mu.Unlock()
}

func (c *Catalog) persist(ctx context.Context, jobs []models.Job, companies []models.Company) {
	if c.store == nil {
		return
	}
	if err := c.store.ReplaceJobs(ctx, jobs); err != nil {
		c.logger.Warn().Err(err).Msg("job cache refresh failed")
	}
	if err := c.store.ReplaceCompanies(ctx, companies); err != nil {
		c.logger.Warn().Err(err).Msg("company cache refresh failed")
	}
}

func (c *Catalog) setLoading(v bool) {
	c.mu.Lock()
	c.loading = v
	c.mu.Unlock()
}

// Jobs returns the loaded listings in their original order.
func (c *Catalog) Jobs() []models.Job {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.jobs
}

func (c *Catalog) Companies() []models.Company {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.companies
}

// SearchJobs is a pure filter over the loaded listings: the query matches
// case-insensitively against title, company, location, description and
// requirements; filters are exact-match predicates. An empty query with
// empty filters returns every job in input order.
func (c *Catalog) SearchJobs(query string, filters models.SearchFilters) []models.Job {
	c.mu.Lock()
	jobs := c.jobs
	c.mu.Unlock()

	return FilterJobs(jobs, query, filters)
}

// FilterJobs is SearchJobs over an explicit slice, usable without a
// loaded catalog.
func FilterJobs(jobs []models.Job, query string, filters models.SearchFilters) []models.Job {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Job, 0, len(jobs))
	for _, job := range jobs {
		if query != "" && !matchesQuery(job, query) {
			continue
		}
		if !filters.Matches(job) {
			continue
		}
		out = append(out, job)
	}
	return out
}

func matchesQuery(job models.Job, query string) bool {
	for _, field := range []string{job.Title, job.Company, job.Location, job.Description} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	for _, req := range job.Requirements {
		if strings.Contains(strings.ToLower(req), query) {
			return true
		}
	}
	return false
}

// JobByID returns nil when the id is unknown; absence is a display state
// for callers, not an error.
func (c *Catalog) JobByID(id int64) *models.Job {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.jobs {
		if c.jobs[i].ID == id {
			job := c.jobs[i]
			return &job
		}
	}
	return nil
}

func (c *Catalog) CompanyByID(id int64) *models.Company {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.companies {
		if c.companies[i].ID == id {
			company := c.companies[i]
			return &company
		}
	}
	return nil
}
