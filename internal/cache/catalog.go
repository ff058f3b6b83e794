package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jfabis/FluffyJobs/internal/models"
)

// ReplaceJobs swaps the cached job listings for the given set. The file
// lock keeps two CLI invocations from interleaving a refresh.
func (d *DB) ReplaceJobs(ctx context.Context, jobs []models.Job) error {
	if err := d.lock.Lock(); err != nil {
		return err
	}
	defer func() { _ = d.lock.Unlock() }()

	tx, err := d.pool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM jobs;`); err != nil {
		return err
	}
	for _, job := range jobs {
		reqs, err := json.Marshal(job.Requirements)
		if err != nil {
			return err
		}
		posted := ""
		if !job.PostedDate.IsZero() {
			posted = job.PostedDate.Format(time.RFC3339)
		}
		if _, err := tx.ExecContext(ctx, `
INSERT INTO jobs (id, title, company, company_id, location, salary, job_type,
  remote, experience_level, requirements, description, posted_date)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`, job.ID, job.Title, job.Company, job.CompanyID, job.Location, job.Salary,
			job.Type, boolInt(job.Remote), job.ExperienceLevel, string(reqs),
			job.Description, posted); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (d *DB) Jobs(ctx context.Context) ([]models.Job, error) {
	rows, err := d.pool.QueryContext(ctx, `
SELECT id, title, company, company_id, location, salary, job_type,
  remote, experience_level, requirements, description, posted_date
FROM jobs ORDER BY id;
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []models.Job
	for rows.Next() {
		var (
			job    models.Job
			remote int
			reqs   string
			posted string
		)
		if err := rows.Scan(&job.ID, &job.Title, &job.Company, &job.CompanyID,
			&job.Location, &job.Salary, &job.Type, &remote,
			&job.ExperienceLevel, &reqs, &job.Description, &posted); err != nil {
			return nil, err
		}
		job.Remote = remote != 0
		if err := json.Unmarshal([]byte(reqs), &job.Requirements); err != nil {
			job.Requirements = nil
		}
		if posted != "" {
			if t, err := time.Parse(time.RFC3339, posted); err == nil {
				job.PostedDate = t
			}
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (d *DB) ReplaceCompanies(ctx context.Context, companies []models.Company) error {
	if err := d.lock.Lock(); err != nil {
		return err
	}
	defer func() { _ = d.lock.Unlock() }()

	tx, err := d.pool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM companies;`); err != nil {
		return err
	}
	for _, company := range companies {
		stack, err := json.Marshal(company.TechStack)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
INSERT INTO companies (id, name, industry, location, employees,
  open_positions, tech_stack, description)
VALUES (?, ?, ?, ?, ?, ?, ?, ?);
`, company.ID, company.Name, company.Industry, company.Location,
			company.Employees, company.OpenPositions, string(stack),
			company.Description); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (d *DB) Companies(ctx context.Context) ([]models.Company, error) {
	rows, err := d.pool.QueryContext(ctx, `
SELECT id, name, industry, location, employees, open_positions, tech_stack, description
FROM companies ORDER BY id;
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []models.Company
	for rows.Next() {
		var (
			company models.Company
			stack   string
		)
		if err := rows.Scan(&company.ID, &company.Name, &company.Industry,
			&company.Location, &company.Employees, &company.OpenPositions,
			&stack, &company.Description); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(stack), &company.TechStack); err != nil {
			company.TechStack = nil
		}
		companies = append(companies, company)
	}
	return companies, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
