package catalog

import (
	"context"
	"errors"

	"github.com/jfabis/FluffyJobs/internal/models"
)

// ErrNotAuthenticated rejects saved-jobs mutations while signed out.
// Saved jobs are a server-side, per-account relation; there is no
// anonymous local fallback (see DESIGN.md).
var ErrNotAuthenticated = errors.New("catalog: sign in to manage saved jobs")

// SavedAPI is the backend slice for the saved-jobs relation.
type SavedAPI interface {
	SaveJob(ctx context.Context, jobID int64) error
	UnsaveJob(ctx context.Context, jobID int64) error
	SavedJobs(ctx context.Context) ([]models.Job, error)
	CheckSaved(ctx context.Context, jobID int64) (bool, error)
}

// AuthState is what the catalog needs to know about the session.
type AuthState interface {
	IsAuthenticated() bool
}

type savedState struct {
	ids  map[int64]struct{}
	jobs []models.Job
}

func newSavedState() savedState {
	return savedState{ids: make(map[int64]struct{})}
}

// RefreshSaved replaces the cached saved set with the server's. Call it
// after sign-in and after every mutation; the local set is never updated
// optimistically, so it cannot drift from the backend.
func (c *Catalog) RefreshSaved(ctx context.Context) error {
	if !c.auth.IsAuthenticated() {
		c.clearSaved()
		return nil
	}

	jobs, err := c.savedA.SavedJobs(ctx)
	if err != nil {
		return err
	}

	ids := make(map[int64]struct{}, len(jobs))
	for _, job := range jobs {
		ids[job.ID] = struct{}{}
	}

	c.mu.Lock()
	c.saved = savedState{ids: ids, jobs: jobs}
	c.mu.Unlock()
	return nil
}

// Save marks a job for the signed-in user, then re-reads the authoritative
// list. A session-expired error from either call has already forced a
// logout through the API client's hook.
func (c *Catalog) Save(ctx context.Context, jobID int64) error {
	if !c.auth.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	if err := c.savedA.SaveJob(ctx, jobID); err != nil {
		return err
	}
	return c.RefreshSaved(ctx)
}

func (c *Catalog) Unsave(ctx context.Context, jobID int64) error {
	if !c.auth.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	if err := c.savedA.UnsaveJob(ctx, jobID); err != nil {
		return err
	}
	return c.RefreshSaved(ctx)
}

// CheckSaved asks the backend whether one listing is saved, the
// authoritative per-listing check a detail view uses. Falls back to the
// cached set when the backend is unreachable; always false signed out.
func (c *Catalog) CheckSaved(ctx context.Context, jobID int64) bool {
	c.mu.Lock()
	authed := c.auth.IsAuthenticated()
	c.mu.Unlock()
	if !authed {
		return false
	}

	saved, err := c.savedA.CheckSaved(ctx, jobID)
	if err != nil {
		c.logger.Debug().Err(err).Int64("job_id", jobID).Msg("check-saved fell back to cached set")
		return c.IsSaved(jobID)
	}
	return saved
}

// IsSaved is an O(1) membership check against the cached id set. Like
// SavedJobs it answers false while signed out, so a force-logout cannot
// leave a stale set visible.
func (c *Catalog) IsSaved(jobID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.auth.IsAuthenticated() {
		return false
	}
	_, ok := c.saved.ids[jobID]
	return ok
}

// SavedJobs returns the full saved listings, empty while signed out.
func (c *Catalog) SavedJobs() []models.Job {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.auth.IsAuthenticated() {
		return nil
	}
	return c.saved.jobs
}

func (c *Catalog) clearSaved() {
	c.mu.Lock()
	c.saved = newSavedState()
	c.mu.Unlock()
}
