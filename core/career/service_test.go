package career_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/starville/academy/core"
	"github.com/starville/academy/core/career"
	emailsvc "github.com/starville/academy/services/email"
	inmemdb "github.com/starville/academy/storage/database/inmem"
	"github.com/starville/academy/storage/files"
	testutil "github.com/starville/academy/tests"
)

func newService(t *testing.T) (*career.Service, *files.LocalStore) {
	conf := testutil.NewConfig()
	conf.WorkDir = t.TempDir()
	db := inmemdb.NewDB()
	store := files.NewLocalStore(conf)
	svc := career.NewService(
		nil,
		inmemdb.NewOpeningRepository(db),
		inmemdb.NewApplicationRepository(db),
		store,
		emailsvc.NewConsoleServiceMock(conf),
		testutil.Logger{T: t},
		conf,
	)
	return svc, store
}

func createOpening(t *testing.T, svc *career.Service) career.Opening {
	t.Helper()
	op, err := svc.CreateOpening(context.Background(), career.NewOpening{
		Title:        "Primary School Teacher",
		Department:   "Primary",
		Type:         "full-time",
		Location:     "Accra",
		Description:  "Teach primary school classes.",
		Requirements: []string{"B.Ed or equivalent"},
	})
	if err != nil {
		t.Fatalf("CreateOpening() failed: %v", err)
	}
	return op
}

func newApplication(openingID string) career.NewApplication {
	return career.NewApplication{
		OpeningID: openingID,
		Name:      "Ama Owusu",
		Email:     "ama@test.gh",
		Phone:     "0241234567",
	}
}

func TestService_QueryOpenings(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	op1 := createOpening(t, svc)
	op2 := createOpening(t, svc)
	if _, err := svc.ToggleOpeningActive(ctx, op2.ID); err != nil {
		t.Fatalf("ToggleOpeningActive() failed: %v", err)
	}

	all, err := svc.QueryAllOpenings(ctx)
	if err != nil {
		t.Fatalf("QueryAllOpenings() failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("QueryAllOpenings() returned %d openings, want 2", len(all))
	}

	active, err := svc.QueryActiveOpenings(ctx)
	if err != nil {
		t.Fatalf("QueryActiveOpenings() failed: %v", err)
	}
	if len(active) != 1 || active[0].ID != op1.ID {
		t.Errorf("QueryActiveOpenings() = %v, want only %s", active, op1.ID)
	}
}

func TestService_UpdateOpening_partial(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	op := createOpening(t, svc)

	got, err := svc.UpdateOpening(ctx, op.ID, career.UpdateOpening{Title: "Head Teacher"})
	if err != nil {
		t.Fatalf("UpdateOpening() failed: %v", err)
	}
	if got.Title != "Head Teacher" {
		t.Errorf("UpdateOpening() title = %s, want Head Teacher", got.Title)
	}
	if got.Department != op.Department || got.Description != op.Description || got.Location != op.Location {
		t.Errorf("UpdateOpening() lost omitted fields: %+v", got)
	}
	if !got.IsActive {
		t.Error("UpdateOpening() deactivated the opening")
	}
	if !got.CreatedAt.Equal(op.CreatedAt) {
		t.Errorf("UpdateOpening() created_at = %s, want unchanged %s", got.CreatedAt, op.CreatedAt)
	}

	if _, err = svc.UpdateOpening(ctx, "0e8be1bd-66f1-4a47-8fc1-64579952b787", career.UpdateOpening{}); err != career.ErrOpeningNotFound {
		t.Errorf("UpdateOpening() error = %v, want %v", err, career.ErrOpeningNotFound)
	}
}

func TestService_SubmitApplication(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	op := createOpening(t, svc)

	app, err := svc.SubmitApplication(ctx, newApplication(op.ID), nil)
	if err != nil {
		t.Fatalf("SubmitApplication() failed: %v", err)
	}
	if app.Status != career.StatusPending {
		t.Errorf("SubmitApplication() status = %s, want %s", app.Status, career.StatusPending)
	}
	if app.ResumeURL != "" {
		t.Errorf("SubmitApplication() resume URL = %s, want empty", app.ResumeURL)
	}
}

func TestService_SubmitApplication_withResume(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	op := createOpening(t, svc)

	resume := &core.Upload{
		Filename:    "cv.pdf",
		ContentType: "application/pdf",
		Size:        42,
		Body:        strings.NewReader("%PDF-1.4 not really"),
	}
	app, err := svc.SubmitApplication(ctx, newApplication(op.ID), resume)
	if err != nil {
		t.Fatalf("SubmitApplication() failed: %v", err)
	}
	if app.ResumeKey == "" || app.ResumeURL == "" {
		t.Fatalf("SubmitApplication() resume key/URL not set: %+v", app)
	}
	if _, err := os.Stat(filepath.Join(store.Root(), filepath.FromSlash(app.ResumeKey))); err != nil {
		t.Errorf("resume file was not stored: %v", err)
	}
}

func TestService_SubmitApplication_rejections(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	op := createOpening(t, svc)
	closed, err := svc.ToggleOpeningActive(ctx, createOpening(t, svc).ID)
	if err != nil {
		t.Fatalf("ToggleOpeningActive() failed: %v", err)
	}

	badResume := &core.Upload{
		Filename:    "cv.txt",
		ContentType: "text/plain",
		Size:        42,
		Body:        strings.NewReader("plain text"),
	}

	tests := []struct {
		name      string
		openingID string
		resume    *core.Upload
	}{
		{name: "unknown opening", openingID: "0e8be1bd-66f1-4a47-8fc1-64579952b787"},
		{name: "inactive opening", openingID: closed.ID},
		{name: "wrong resume type", openingID: op.ID, resume: badResume},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SubmitApplication(ctx, newApplication(tt.openingID), tt.resume)
			if err == nil {
				t.Fatal("SubmitApplication() expected an error")
			}
			if _, ok := err.(*core.ValidationError); !ok {
				t.Errorf("SubmitApplication() error = %T(%v), want *core.ValidationError", err, err)
			}
		})
	}
}

func TestService_DeleteApplications(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	op := createOpening(t, svc)

	app, err := svc.SubmitApplication(ctx, newApplication(op.ID), nil)
	if err != nil {
		t.Fatalf("SubmitApplication() failed: %v", err)
	}

	if err = svc.DeleteApplications(ctx, app.ID); err != nil {
		t.Fatalf("DeleteApplications() failed: %v", err)
	}
	// a second delete of the same ID reports not-found
	if err = svc.DeleteApplications(ctx, app.ID); err != career.ErrApplicationNotFound {
		t.Errorf("DeleteApplications() error = %v, want %v", err, career.ErrApplicationNotFound)
	}
}
