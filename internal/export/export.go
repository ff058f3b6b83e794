package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/muesli/termenv"

	"github.com/jfabis/FluffyJobs/internal/models"
)

type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatTSV      Format = "tsv"
)

type WriteOptions struct {
	ColorEnabled bool
	// SavedIDs marks listings already saved by the signed-in user.
	SavedIDs map[int64]bool
}

func WriteJobs(w io.Writer, jobs []models.Job, format Format, opts WriteOptions) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, jobs)
	case FormatCSV:
		return writeJobsCSV(w, jobs, ',')
	case FormatTSV:
		return writeJobsCSV(w, jobs, '\t')
	case FormatMarkdown:
		return writeJobsMarkdown(w, jobs)
	default:
		return writeJobsTable(w, jobs, opts)
	}
}

func WriteCompanies(w io.Writer, companies []models.Company, format Format, opts WriteOptions) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, companies)
	case FormatCSV:
		return writeCompaniesCSV(w, companies, ',')
	case FormatTSV:
		return writeCompaniesCSV(w, companies, '\t')
	case FormatMarkdown:
		return writeCompaniesMarkdown(w, companies)
	default:
		return writeCompaniesTable(w, companies)
	}
}

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func writeJobsCSV(w io.Writer, jobs []models.Job, delim rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = delim
	if err := writer.Write(jobsCSVHeader()); err != nil {
		return err
	}
	for _, job := range jobs {
		if err := writer.Write(jobCSVRow(job)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeJobsTable(w io.Writer, jobs []models.Job, opts WriteOptions) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join([]string{"id", "title", "company", "location", "type", "remote", "saved"}, "\t"))
	output := termenv.NewOutput(w)
	for _, job := range jobs {
		fmt.Fprintln(tw, strings.Join(jobTableRow(job, output, opts), "\t"))
	}
	return tw.Flush()
}

func jobTableRow(job models.Job, output *termenv.Output, opts WriteOptions) []string {
	const savedColor = "#FFD700"

	saved := "-"
	if opts.SavedIDs[job.ID] {
		saved = "*"
		if opts.ColorEnabled {
			saved = output.String(saved).Foreground(output.Color(savedColor)).String()
		}
	}
	remote := "-"
	if job.Remote {
		remote = "yes"
	}
	return []string{
		strconv.FormatInt(job.ID, 10),
		safe(job.Title),
		safe(job.Company),
		safe(job.Location),
		safe(job.Type),
		remote,
		saved,
	}
}

func writeJobsMarkdown(w io.Writer, jobs []models.Job) error {
	if len(jobs) == 0 {
		_, err := fmt.Fprintln(w, "No results.")
		return err
	}
	for _, job := range jobs {
		lines := []string{
			fmt.Sprintf("- **%s** (%s)", safe(job.Title), safe(job.Company)),
			fmt.Sprintf("  Location: %s", safe(job.Location)),
		}
		if job.Type != "" {
			lines = append(lines, fmt.Sprintf("  Type: %s", safe(job.Type)))
		}
		if job.ExperienceLevel != "" {
			lines = append(lines, fmt.Sprintf("  Experience: %s", safe(job.ExperienceLevel)))
		}
		if job.Remote {
			lines = append(lines, "  Remote: yes")
		}
		if job.Salary != "" {
			lines = append(lines, fmt.Sprintf("  Salary: %s", safe(job.Salary)))
		}
		if len(job.Requirements) > 0 {
			lines = append(lines, fmt.Sprintf("  Requirements: %s", strings.Join(job.Requirements, ", ")))
		}
		if !job.PostedDate.IsZero() {
			lines = append(lines, fmt.Sprintf("  Posted: %s", job.PostedDate.Format("2006-01-02")))
		}
		for _, line := range lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func jobsCSVHeader() []string {
	return []string{
		"id",
		"title",
		"company",
		"location",
		"job_type",
		"remote",
		"experience_level",
		"salary",
		"requirements",
		"posted_date",
	}
}

func jobCSVRow(job models.Job) []string {
	posted := ""
	if !job.PostedDate.IsZero() {
		posted = job.PostedDate.Format(time.RFC3339)
	}
	return []string{
		strconv.FormatInt(job.ID, 10),
		job.Title,
		job.Company,
		job.Location,
		job.Type,
		boolString(job.Remote),
		job.ExperienceLevel,
		job.Salary,
		strings.Join(job.Requirements, "; "),
		posted,
	}
}

func writeCompaniesCSV(w io.Writer, companies []models.Company, delim rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = delim
	header := []string{"id", "name", "industry", "location", "employees", "open_positions", "tech_stack"}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, company := range companies {
		row := []string{
			strconv.FormatInt(company.ID, 10),
			company.Name,
			company.Industry,
			company.Location,
			company.Employees,
			strconv.Itoa(company.OpenPositions),
			strings.Join(company.TechStack, "; "),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeCompaniesTable(w io.Writer, companies []models.Company) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join([]string{"id", "name", "industry", "location", "employees", "open"}, "\t"))
	for _, company := range companies {
		row := []string{
			strconv.FormatInt(company.ID, 10),
			safe(company.Name),
			safe(company.Industry),
			safe(company.Location),
			safe(company.Employees),
			strconv.Itoa(company.OpenPositions),
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func writeCompaniesMarkdown(w io.Writer, companies []models.Company) error {
	if len(companies) == 0 {
		_, err := fmt.Fprintln(w, "No results.")
		return err
	}
	for _, company := range companies {
		lines := []string{
			fmt.Sprintf("- **%s** (%s)", safe(company.Name), safe(company.Industry)),
			fmt.Sprintf("  Location: %s", safe(company.Location)),
			fmt.Sprintf("  Open positions: %d", company.OpenPositions),
		}
		if len(company.TechStack) > 0 {
			lines = append(lines, fmt.Sprintf("  Tech stack: %s", strings.Join(company.TechStack, ", ")))
		}
		for _, line := range lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func boolString(value bool) string {
	if value {
		return "true"
	}
	return "false"
}

func safe(value string) string {
	return strings.TrimSpace(value)
}
