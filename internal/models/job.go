package models

import "time"

// Job is a single listing in the catalog. Listings are read-only reference
// data from the client's point of view.
type Job struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Company         string    `json:"company"`
	CompanyID       int64     `json:"company_id,omitempty"`
	Location        string    `json:"location"`
	Salary          string    `json:"salary,omitempty"`
	Type            string    `json:"job_type"`
	Remote          bool      `json:"remote"`
	ExperienceLevel string    `json:"experience_level,omitempty"`
	Requirements    []string  `json:"requirements,omitempty"`
	Description     string    `json:"description,omitempty"`
	PostedDate      time.Time `json:"posted_date,omitempty"`
}

// NewJob carries the fields a user supplies when posting a listing.
type NewJob struct {
	Title           string   `json:"title"`
	Company         string   `json:"company"`
	Location        string   `json:"location"`
	Salary          string   `json:"salary,omitempty"`
	Type            string   `json:"job_type"`
	Remote          bool     `json:"remote"`
	ExperienceLevel string   `json:"experience_level,omitempty"`
	Requirements    []string `json:"requirements,omitempty"`
	Description     string   `json:"description"`
}
