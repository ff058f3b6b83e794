package cmd

import (
	"bytes"
	"testing"

	"github.com/jfabis/FluffyJobs/internal/export"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		value   string
		want    export.Format
		wantErr bool
	}{
		{value: "csv", want: export.FormatCSV},
		{value: "JSON", want: export.FormatJSON},
		{value: "md", want: export.FormatMarkdown},
		{value: "markdown", want: export.FormatMarkdown},
		{value: "tsv", want: export.FormatTSV},
		{value: "table", want: export.FormatTable},
		{value: "", want: export.FormatTable},
		{value: " csv ", want: export.FormatCSV},
		{value: "xml", wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseFormat(tt.value)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseFormat(%q) expected error, got %q", tt.value, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseFormat(%q) error = %v", tt.value, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseFormat(%q) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestResolveFormatPrecedence(t *testing.T) {
	buf := &bytes.Buffer{}

	tests := []struct {
		name string
		ctx  Context
		opts OutputOptions
		want export.Format
	}{
		{name: "json flag wins", ctx: Context{Out: buf, JSONOutput: true}, opts: OutputOptions{Format: "csv"}, want: export.FormatJSON},
		{name: "plain flag wins", ctx: Context{Out: buf, PlainText: true}, opts: OutputOptions{Format: "md"}, want: export.FormatTSV},
		{name: "explicit format", ctx: Context{Out: buf}, opts: OutputOptions{Format: "md"}, want: export.FormatMarkdown},
		{name: "file output defaults to csv", ctx: Context{Out: buf}, opts: OutputOptions{Output: "jobs.csv"}, want: export.FormatCSV},
		{name: "pipe defaults to csv", ctx: Context{Out: buf}, opts: OutputOptions{}, want: export.FormatCSV},
	}

	for _, tt := range tests {
		got, err := resolveFormat(&tt.ctx, tt.opts)
		if err != nil {
			t.Errorf("%s: resolveFormat() error = %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: resolveFormat() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestParseRemoteFilter(t *testing.T) {
	if got := parseRemoteFilter("yes"); got == nil || !*got {
		t.Errorf("parseRemoteFilter(yes) = %v, want true", got)
	}
	if got := parseRemoteFilter("no"); got == nil || *got {
		t.Errorf("parseRemoteFilter(no) = %v, want false", got)
	}
	if got := parseRemoteFilter("all"); got != nil {
		t.Errorf("parseRemoteFilter(all) = %v, want nil", got)
	}
	if got := parseRemoteFilter(""); got != nil {
		t.Errorf("parseRemoteFilter(\"\") = %v, want nil", got)
	}
}

func TestRenderDescription(t *testing.T) {
	html := "<p>Build services.</p><ul><li>Go</li><li>SQL</li></ul>"
	got := renderDescription(html)
	want := "Build services.\n  - Go\n  - SQL"
	if got != want {
		t.Errorf("renderDescription() = %q, want %q", got, want)
	}

	plain := "Just a plain description."
	if got := renderDescription(plain); got != plain {
		t.Errorf("renderDescription(plain) = %q, want %q", got, plain)
	}

	if got := renderDescription("  "); got != "" {
		t.Errorf("renderDescription(blank) = %q, want empty", got)
	}
}
