package admission_test

import (
	"context"
	"testing"

	"github.com/starville/academy/core/admission"
	emailsvc "github.com/starville/academy/services/email"
	inmemdb "github.com/starville/academy/storage/database/inmem"
	testutil "github.com/starville/academy/tests"
)

func newService() *admission.Service {
	conf := testutil.NewConfig()
	db := inmemdb.NewDB()
	return admission.NewService(nil, inmemdb.NewAdmissionRepository(db), emailsvc.NewConsoleServiceMock(conf), conf)
}

func newAdmission() admission.NewAdmission {
	return admission.NewAdmission{
		ParentName:  "Akosua Mensah",
		ParentEmail: "akosua@test.gh",
		ParentPhone: "0241234567",
		ChildName:   "Kwame Mensah",
		ChildGender: "male",
		ChildAge:    "5",
		Level:       "Primary 1",
	}
}

func TestService_Submit(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	adm, err := svc.Submit(ctx, newAdmission())
	if err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	if adm.ID == "" {
		t.Error("Submit() did not assign an ID")
	}
	if adm.Status != admission.StatusPending {
		t.Errorf("Submit() status = %s, want %s", adm.Status, admission.StatusPending)
	}
	if adm.ChildAge != 5 {
		t.Errorf("Submit() child age = %d, want 5", adm.ChildAge)
	}
}

func TestService_Submit_ageRange(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	tests := []struct {
		name    string
		age     string
		wantErr bool
	}{
		{name: "lower bound", age: "0"},
		{name: "upper bound", age: "18"},
		{name: "below range", age: "-1", wantErr: true},
		{name: "above range", age: "19", wantErr: true},
		{name: "not a number", age: "five", wantErr: true},
		{name: "empty", age: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			na := newAdmission()
			na.ChildAge = tt.age
			if _, err := svc.Submit(ctx, na); (err != nil) != tt.wantErr {
				t.Errorf("Submit() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestService_UpdateStatus(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	adm, err := svc.Submit(ctx, newAdmission())
	if err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}

	adm, err = svc.UpdateStatus(ctx, adm.ID, admission.UpdateStatus{Status: admission.StatusAccepted})
	if err != nil {
		t.Fatalf("UpdateStatus() failed: %v", err)
	}
	if adm.Status != admission.StatusAccepted {
		t.Errorf("UpdateStatus() status = %s, want %s", adm.Status, admission.StatusAccepted)
	}

	if _, err = svc.UpdateStatus(ctx, "4e6cf923-334a-4d9c-ac30-1b0c20b7a2e1", admission.UpdateStatus{Status: admission.StatusRejected}); err != admission.ErrNotFound {
		t.Errorf("UpdateStatus() error = %v, want %v", err, admission.ErrNotFound)
	}
}

func TestService_Delete(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	adm, err := svc.Submit(ctx, newAdmission())
	if err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}

	if err = svc.Delete(ctx, adm.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err = svc.GetByID(ctx, adm.ID); err != admission.ErrNotFound {
		t.Errorf("GetByID() error = %v, want %v", err, admission.ErrNotFound)
	}

	// deleting an unknown ID reports not-found
	if err = svc.Delete(ctx, adm.ID); err != admission.ErrNotFound {
		t.Errorf("Delete() error = %v, want %v", err, admission.ErrNotFound)
	}
}

func TestService_Filter(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	na1 := newAdmission()
	na2 := newAdmission()
	na2.ParentName = "Yaw Boateng"
	na2.ChildName = "Abena Boateng"
	na2.ChildGender = "female"
	na2.Level = "Nursery"
	if _, err := svc.Submit(ctx, na1); err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	adm2, err := svc.Submit(ctx, na2)
	if err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	if _, err = svc.UpdateStatus(ctx, adm2.ID, admission.UpdateStatus{Status: admission.StatusUnderReview}); err != nil {
		t.Fatalf("UpdateStatus() failed: %v", err)
	}

	tests := []struct {
		name   string
		filter admission.QueryFilter
		want   int
	}{
		{name: "all", filter: admission.QueryFilter{}, want: 2},
		{name: "by search", filter: admission.QueryFilter{Search: "boateng"}, want: 1},
		{name: "by status", filter: admission.QueryFilter{Status: admission.StatusUnderReview}, want: 1},
		{name: "by level", filter: admission.QueryFilter{Level: "Nursery"}, want: 1},
		{name: "no match", filter: admission.QueryFilter{Search: "nobody"}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adms, err := svc.Filter(ctx, tt.filter)
			if err != nil {
				t.Fatalf("Filter() failed: %v", err)
			}
			if len(adms) != tt.want {
				t.Errorf("Filter() returned %d applications, want %d", len(adms), tt.want)
			}
		})
	}
}

func TestService_Stats(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Total != 0 {
		t.Errorf("Stats() total = %d, want 0", stats.Total)
	}
	// every status is present even with no applications
	for _, status := range admission.AllStatuses {
		if _, ok := stats.ByStatus[status]; !ok {
			t.Errorf("Stats() is missing status %q", status)
		}
	}

	na := newAdmission()
	if _, err = svc.Submit(ctx, na); err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	adm, err := svc.Submit(ctx, na)
	if err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	if _, err = svc.UpdateStatus(ctx, adm.ID, admission.UpdateStatus{Status: admission.StatusAccepted}); err != nil {
		t.Fatalf("UpdateStatus() failed: %v", err)
	}

	stats, err = svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Total != 2 {
		t.Errorf("Stats() total = %d, want 2", stats.Total)
	}
	if stats.ByStatus[admission.StatusPending] != 1 || stats.ByStatus[admission.StatusAccepted] != 1 {
		t.Errorf("Stats() by status = %v", stats.ByStatus)
	}
	if stats.ByLevel["Primary 1"] != 2 {
		t.Errorf("Stats() by level = %v", stats.ByLevel)
	}
}
