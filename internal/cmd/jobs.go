package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jfabis/FluffyJobs/internal/catalog"
	"github.com/jfabis/FluffyJobs/internal/export"
	"github.com/jfabis/FluffyJobs/internal/models"
)

type JobsCmd struct {
	Search JobsSearchCmd `cmd:"" default:"withargs" help:"Search job listings."`
	Show   JobsShowCmd   `cmd:"" help:"Show one listing in full."`
}

type JobsSearchCmd struct {
	Query string `arg:"" optional:"" help:"Free-text query over title, company, location and description."`

	Type       string `help:"Job type filter (e.g. Full-time, Part-time, Contract), or 'all'." env:"FLUFFYJOBS_DEFAULT_TYPE"`
	Company    string `help:"Exact company name filter, or 'all'."`
	Location   string `help:"Location filter, or 'all'." env:"FLUFFYJOBS_DEFAULT_LOCATION"`
	Experience string `help:"Experience level filter (Junior, Mid, Senior), or 'all'."`
	Remote     string `help:"Remote filter: yes, no or all." enum:",yes,no,all" default:""`

	OutputOptions
}

func (j *JobsSearchCmd) Run(ctx *Context) error {
	app, err := ctx.App()
	if err != nil {
		return err
	}
	defer app.Close()

	loadCatalog(ctx, app)

	filters := models.SearchFilters{
		Type:            firstNonEmpty(j.Type, ctx.Config.DefaultType, models.FilterAll),
		Company:         firstNonEmpty(j.Company, models.FilterAll),
		Location:        firstNonEmpty(j.Location, ctx.Config.DefaultLocation, models.FilterAll),
		ExperienceLevel: firstNonEmpty(j.Experience, models.FilterAll),
		Remote:          parseRemoteFilter(j.Remote),
	}
	jobs := app.Catalog.SearchJobs(j.Query, filters)

	writer, format, closeOut, err := openOutput(ctx, j.OutputOptions)
	if err != nil {
		return err
	}
	defer closeOut()

	if err := export.WriteJobs(writer, jobs, format, writeOptions(ctx, savedIDs(app))); err != nil {
		return err
	}

	if format == export.FormatTable {
		fmt.Fprintf(ctx.Err, "%d of %d jobs (%s)\n", len(jobs), len(app.Catalog.Jobs()), app.Catalog.Source())
	}
	return nil
}

type JobsShowCmd struct {
	ID int64 `arg:"" help:"Listing ID."`
}

func (j *JobsShowCmd) Run(ctx *Context) error {
	app, err := ctx.App()
	if err != nil {
		return err
	}
	defer app.Close()

	loadCatalog(ctx, app)

	job := app.Catalog.JobByID(j.ID)
	if job == nil {
		return fmt.Errorf("no job with id %d", j.ID)
	}

	saved := ""
	if app.Catalog.CheckSaved(context.Background(), job.ID) {
		saved = " (saved)"
	}
	fmt.Fprintf(ctx.Out, "%s%s\n", ctx.UI.Accent(job.Title), saved)
	fmt.Fprintf(ctx.Out, "%s · %s\n", job.Company, job.Location)
	fmt.Fprintf(ctx.Out, "type: %s  experience: %s  remote: %t\n", job.Type, job.ExperienceLevel, job.Remote)
	if job.Salary != "" {
		fmt.Fprintf(ctx.Out, "salary: %s\n", job.Salary)
	}
	if !job.PostedDate.IsZero() {
		fmt.Fprintf(ctx.Out, "posted: %s\n", job.PostedDate.Format("2006-01-02"))
	}
	if len(job.Requirements) > 0 {
		fmt.Fprintf(ctx.Out, "\nRequirements:\n")
		for _, req := range job.Requirements {
			fmt.Fprintf(ctx.Out, "  - %s\n", req)
		}
	}
	if desc := renderDescription(job.Description); desc != "" {
		fmt.Fprintf(ctx.Out, "\n%s\n", desc)
	}
	return nil
}

// renderDescription flattens a listing description to terminal text. The
// backend serves descriptions as HTML fragments; plain-text descriptions
// pass through goquery unchanged.
func renderDescription(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return raw
	}

	var lines []string
	doc.Find("p, li, h1, h2, h3, br").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return
		}
		if goquery.NodeName(sel) == "li" {
			text = "  - " + text
		}
		lines = append(lines, text)
	})
	if len(lines) == 0 {
		return strings.TrimSpace(doc.Text())
	}
	return strings.Join(lines, "\n")
}

func parseRemoteFilter(value string) *bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "true":
		v := true
		return &v
	case "no", "false":
		v := false
		return &v
	default:
		return nil
	}
}

// loadCatalog populates the catalog (backend, then cache, then bundled
// data) and refreshes the saved set for signed-in users. Load never fails:
// the catalog records which source it fell back to.
func loadCatalog(ctx *Context, app *App) {
	stop := startLoadingIndicator(ctx, "Loading jobs...")
	if stop != nil {
		defer stop()
	}

	app.Catalog.Load(context.Background())
	if app.Catalog.Source() != catalog.SourceBackend {
		ctx.Logger.Debug().Str("source", string(app.Catalog.Source())).Msg("catalog fallback")
	}

	if app.Session.IsAuthenticated() {
		if err := app.Catalog.RefreshSaved(context.Background()); err != nil {
			ctx.UI.Warnf("could not refresh saved jobs: %v", err)
		}
	}
}

func savedIDs(app *App) map[int64]bool {
	jobs := app.Catalog.SavedJobs()
	if len(jobs) == 0 {
		return nil
	}
	ids := make(map[int64]bool, len(jobs))
	for _, job := range jobs {
		ids[job.ID] = true
	}
	return ids
}
