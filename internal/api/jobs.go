package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jfabis/FluffyJobs/internal/models"
)

func (c *Client) Jobs(ctx context.Context) ([]models.Job, error) {
	var jobs []models.Job
	if err := c.doJSON(ctx, http.MethodGet, "/jobs/", nil, nil, &jobs, false); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (c *Client) Job(ctx context.Context, id int64) (models.Job, error) {
	var job models.Job
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/jobs/%d/", id), nil, nil, &job, false)
	return job, err
}

func (c *Client) CreateJob(ctx context.Context, job models.NewJob) (models.Job, error) {
	var created models.Job
	err := c.doJSON(ctx, http.MethodPost, "/jobs/", nil, job, &created, true)
	return created, err
}

func (c *Client) Companies(ctx context.Context) ([]models.Company, error) {
	var companies []models.Company
	if err := c.doJSON(ctx, http.MethodGet, "/companies/", nil, nil, &companies, false); err != nil {
		return nil, err
	}
	return companies, nil
}

func (c *Client) Company(ctx context.Context, id int64) (models.Company, error) {
	var company models.Company
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/companies/%d/", id), nil, nil, &company, false)
	return company, err
}

type saveJobRequest struct {
	JobID int64 `json:"job_id"`
}

func (c *Client) SaveJob(ctx context.Context, jobID int64) error {
	return c.doJSON(ctx, http.MethodPost, "/jobs/save/", nil, saveJobRequest{JobID: jobID}, nil, true)
}

func (c *Client) UnsaveJob(ctx context.Context, jobID int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/jobs/%d/unsave/", jobID), nil, nil, nil, true)
}

// savedJobEnvelope is the backend's saved-job row: the relation record
// wrapping the listing itself.
type savedJobEnvelope struct {
	ID      int64      `json:"id"`
	Job     models.Job `json:"job"`
	SavedAt string     `json:"saved_at"`
}

// SavedJobs returns the authoritative server-side saved listings.
func (c *Client) SavedJobs(ctx context.Context) ([]models.Job, error) {
	var rows []savedJobEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/jobs/saved/", nil, nil, &rows, true); err != nil {
		return nil, err
	}
	jobs := make([]models.Job, 0, len(rows))
	for _, row := range rows {
		jobs = append(jobs, row.Job)
	}
	return jobs, nil
}

func (c *Client) CheckSaved(ctx context.Context, jobID int64) (bool, error) {
	var payload struct {
		IsSaved bool `json:"is_saved"`
	}
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/jobs/%d/check-saved/", jobID), nil, nil, &payload, true)
	return payload.IsSaved, err
}
