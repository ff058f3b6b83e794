package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/muesli/termenv"

	"github.com/jfabis/FluffyJobs/internal/export"
)

// OutputOptions are the flags shared by every listing command.
type OutputOptions struct {
	Format string `help:"Output format: table, csv, json, md, tsv." enum:",table,csv,json,md,tsv" default:""`
	Output string `name:"output" short:"o" help:"Write output to a file."`
}

// openOutput returns the writer the command should render into and a close
// function. The global --json/--plain flags win over --format.
func openOutput(ctx *Context, opts OutputOptions) (io.Writer, export.Format, func(), error) {
	format, err := resolveFormat(ctx, opts)
	if err != nil {
		return nil, "", nil, err
	}

	if opts.Output == "" {
		return ctx.Out, format, func() {}, nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, "", nil, err
	}
	return file, format, func() { _ = file.Close() }, nil
}

func resolveFormat(ctx *Context, opts OutputOptions) (export.Format, error) {
	if ctx.JSONOutput {
		return export.FormatJSON, nil
	}
	if ctx.PlainText {
		return export.FormatTSV, nil
	}
	if opts.Format != "" {
		return parseFormat(opts.Format)
	}
	if opts.Output != "" {
		return export.FormatCSV, nil
	}
	if isTTY(ctx.Out) {
		return export.FormatTable, nil
	}
	return export.FormatCSV, nil
}

func parseFormat(value string) (export.Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "csv":
		return export.FormatCSV, nil
	case "json":
		return export.FormatJSON, nil
	case "md", "markdown":
		return export.FormatMarkdown, nil
	case "tsv":
		return export.FormatTSV, nil
	case "table", "":
		return export.FormatTable, nil
	default:
		return "", fmt.Errorf("unknown format: %s", value)
	}
}

func writeOptions(ctx *Context, saved map[int64]bool) export.WriteOptions {
	return export.WriteOptions{
		ColorEnabled: ctx.UI != nil && ctx.UI.ColorEnabled,
		SavedIDs:     saved,
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func isTTY(out io.Writer) bool {
	output := termenv.NewOutput(out)
	return output.ColorProfile() != termenv.Ascii
}

// startLoadingIndicator animates a spinner on stderr while the catalog is
// being fetched. Returns nil when stderr is not a terminal.
func startLoadingIndicator(ctx *Context, label string) func() {
	if ctx == nil || ctx.Err == nil || ctx.UI == nil {
		return nil
	}
	if !isTTY(ctx.Err) {
		return nil
	}

	done := make(chan struct{})
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)
		start := time.Now()
		frames := []string{"|", "/", "-", "\\"}
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()
		index := 0

		for {
			select {
			case <-done:
				fmt.Fprint(ctx.Err, "\r\033[2K")
				return
			case <-ticker.C:
				seconds := int(time.Since(start).Seconds())
				frame := frames[index%len(frames)]
				fmt.Fprintf(ctx.Err, "\r\033[2K%s %ds %s", label, seconds, frame)
				index++
			}
		}
	}()

	return func() {
		close(done)
		<-stopped
	}
}
