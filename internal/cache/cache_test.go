package cache

import (
	"context"
	"testing"
	"time"

	"github.com/jfabis/FluffyJobs/internal/models"
)

func TestReplaceAndReadBackJobs(t *testing.T) {
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	posted := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)
	in := []models.Job{
		{ID: 1, Title: "SRE", Company: "Acme", Location: "Remote", Type: "Full-time",
			Remote: true, ExperienceLevel: "Senior", Requirements: []string{"Go", "Linux"},
			Description: "keep it up", PostedDate: posted},
		{ID: 2, Title: "UX Designer", Company: "Beta", Location: "NYC", Type: "Contract"},
	}

	if err := db.ReplaceJobs(ctx, in); err != nil {
		t.Fatalf("ReplaceJobs() error = %v", err)
	}
	got, err := db.Jobs(ctx)
	if err != nil {
		t.Fatalf("Jobs() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(Jobs()) = %d, want 2", len(got))
	}
	if got[0].Title != "SRE" || !got[0].Remote || len(got[0].Requirements) != 2 {
		t.Fatalf("Jobs()[0] = %+v", got[0])
	}
	if !got[0].PostedDate.Equal(posted) {
		t.Fatalf("PostedDate = %v, want %v", got[0].PostedDate, posted)
	}

	// Replace semantics: a refresh drops rows no longer present.
	if err := db.ReplaceJobs(ctx, in[:1]); err != nil {
		t.Fatalf("ReplaceJobs() (2nd) error = %v", err)
	}
	got, err = db.Jobs(ctx)
	if err != nil {
		t.Fatalf("Jobs() (2nd) error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len(Jobs()) after replace = %d, want 1", len(got))
	}
}

func TestReplaceAndReadBackCompanies(t *testing.T) {
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	in := []models.Company{
		{ID: 1, Name: "Acme", Industry: "Technology", Location: "Austin, TX",
			Employees: "500+", OpenPositions: 12, TechStack: []string{"Go", "React"}},
	}
	if err := db.ReplaceCompanies(ctx, in); err != nil {
		t.Fatalf("ReplaceCompanies() error = %v", err)
	}
	got, err := db.Companies(ctx)
	if err != nil {
		t.Fatalf("Companies() error = %v", err)
	}
	if len(got) != 1 || got[0].Name != "Acme" || got[0].OpenPositions != 12 {
		t.Fatalf("Companies() = %+v", got)
	}
	if len(got[0].TechStack) != 2 {
		t.Fatalf("TechStack = %v", got[0].TechStack)
	}
}
