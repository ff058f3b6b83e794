package cmd

import (
	"fmt"
	"strings"

	"github.com/jfabis/FluffyJobs/internal/export"
)

type CompaniesCmd struct {
	List CompaniesListCmd `cmd:"" default:"withargs" help:"List companies."`
	Show CompaniesShowCmd `cmd:"" help:"Show one company in full."`
}

type CompaniesListCmd struct {
	Query string `arg:"" optional:"" help:"Filter by name, industry or location."`

	OutputOptions
}

func (c *CompaniesListCmd) Run(ctx *Context) error {
	app, err := ctx.App()
	if err != nil {
		return err
	}
	defer app.Close()

	loadCatalog(ctx, app)

	companies := app.Catalog.Companies()
	if query := strings.TrimSpace(c.Query); query != "" {
		query = strings.ToLower(query)
		filtered := companies[:0:0]
		for _, company := range companies {
			haystack := strings.ToLower(company.Name + " " + company.Industry + " " + company.Location)
			if strings.Contains(haystack, query) {
				filtered = append(filtered, company)
			}
		}
		companies = filtered
	}

	writer, format, closeOut, err := openOutput(ctx, c.OutputOptions)
	if err != nil {
		return err
	}
	defer closeOut()

	return export.WriteCompanies(writer, companies, format, writeOptions(ctx, nil))
}

type CompaniesShowCmd struct {
	ID int64 `arg:"" help:"Company ID."`
}

func (c *CompaniesShowCmd) Run(ctx *Context) error {
	app, err := ctx.App()
	if err != nil {
		return err
	}
	defer app.Close()

	loadCatalog(ctx, app)

	company := app.Catalog.CompanyByID(c.ID)
	if company == nil {
		return fmt.Errorf("no company with id %d", c.ID)
	}

	fmt.Fprintf(ctx.Out, "%s\n", ctx.UI.Accent(company.Name))
	fmt.Fprintf(ctx.Out, "%s · %s\n", company.Industry, company.Location)
	fmt.Fprintf(ctx.Out, "employees: %s  open positions: %d\n", company.Employees, company.OpenPositions)
	if len(company.TechStack) > 0 {
		fmt.Fprintf(ctx.Out, "tech: %s\n", strings.Join(company.TechStack, ", "))
	}
	if company.Description != "" {
		fmt.Fprintf(ctx.Out, "\n%s\n", company.Description)
	}
	return nil
}
