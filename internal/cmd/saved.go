package cmd

import (
	"context"

	"github.com/jfabis/FluffyJobs/internal/export"
	"github.com/jfabis/FluffyJobs/internal/guard"
)

type SavedCmd struct {
	List SavedListCmd `cmd:"" default:"1" help:"List saved jobs."`
	Add  SavedAddCmd  `cmd:"" help:"Save a job."`
	Rm   SavedRmCmd   `cmd:"" help:"Remove a saved job."`
}

type SavedListCmd struct {
	OutputOptions
}

func (s *SavedListCmd) Run(ctx *Context) error {
	app, err := ctx.App()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := guard.RequireAuth(app.Session); err != nil {
		return err
	}

	if err := app.Catalog.RefreshSaved(context.Background()); err != nil {
		return err
	}
	jobs := app.Catalog.SavedJobs()

	writer, format, closeOut, err := openOutput(ctx, s.OutputOptions)
	if err != nil {
		return err
	}
	defer closeOut()

	if err := export.WriteJobs(writer, jobs, format, writeOptions(ctx, savedIDs(app))); err != nil {
		return err
	}
	if format == export.FormatTable && len(jobs) == 0 {
		ctx.UI.Infof("No saved jobs yet.")
	}
	return nil
}

type SavedAddCmd struct {
	ID int64 `arg:"" help:"Listing ID to save."`
}

func (s *SavedAddCmd) Run(ctx *Context) error {
	app, err := ctx.App()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := guard.RequireAuth(app.Session); err != nil {
		return err
	}

	if err := app.Catalog.Save(context.Background(), s.ID); err != nil {
		return err
	}
	ctx.UI.Successf("Saved job %d.", s.ID)
	return nil
}

type SavedRmCmd struct {
	ID int64 `arg:"" help:"Listing ID to remove."`
}

func (s *SavedRmCmd) Run(ctx *Context) error {
	app, err := ctx.App()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := guard.RequireAuth(app.Session); err != nil {
		return err
	}

	if err := app.Catalog.Unsave(context.Background(), s.ID); err != nil {
		return err
	}
	ctx.UI.Successf("Removed job %d from saved.", s.ID)
	return nil
}
