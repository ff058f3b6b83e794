package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jfabis/FluffyJobs/internal/guard"
	"github.com/jfabis/FluffyJobs/internal/models"
)

type PostJobCmd struct {
	Title        string   `required:"" help:"Job title."`
	Company      string   `required:"" help:"Company name."`
	Location     string   `required:"" help:"Job location."`
	Type         string   `name:"type" required:"" help:"Job type (e.g. Full-time, Contract)."`
	Salary       string   `help:"Salary range."`
	Remote       bool     `help:"Remote role."`
	Experience   string   `help:"Experience level (Junior, Mid, Senior)."`
	Requirements []string `help:"Requirement, repeatable."`
	Description  string   `help:"Job description. Ignored when --description-file is set."`
	DescFile     string   `name:"description-file" help:"Read the description from a file."`
}

func (p *PostJobCmd) Run(ctx *Context) error {
	app, err := ctx.App()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := guard.RequireAuth(app.Session); err != nil {
		return err
	}

	description := p.Description
	if p.DescFile != "" {
		data, err := os.ReadFile(p.DescFile)
		if err != nil {
			return fmt.Errorf("read --description-file: %w", err)
		}
		description = strings.TrimSpace(string(data))
	}

	job, err := app.API.CreateJob(context.Background(), models.NewJob{
		Title:           p.Title,
		Company:         p.Company,
		Location:        p.Location,
		Salary:          p.Salary,
		Type:            p.Type,
		Remote:          p.Remote,
		ExperienceLevel: p.Experience,
		Requirements:    p.Requirements,
		Description:     description,
	})
	if err != nil {
		return err
	}

	ctx.UI.Successf("Posted %q (id %d).", job.Title, job.ID)
	return nil
}
