// Package fixtures ships a small built-in catalog so browsing works on a
// first run with no backend and no cache yet.
package fixtures

import (
	_ "embed"
	"encoding/json"

	"github.com/jfabis/FluffyJobs/internal/models"
)

//go:embed jobs.json
var jobsJSON []byte

//go:embed companies.json
var companiesJSON []byte

func Jobs() []models.Job {
	var jobs []models.Job
	// The embedded files are part of the build; a decode failure here is a
	// programmer error, not a runtime condition.
	if err := json.Unmarshal(jobsJSON, &jobs); err != nil {
		panic("fixtures: bad embedded jobs.json: " + err.Error())
	}
	return jobs
}

func Companies() []models.Company {
	var companies []models.Company
	if err := json.Unmarshal(companiesJSON, &companies); err != nil {
		panic("fixtures: bad embedded companies.json: " + err.Error())
	}
	return companies
}
