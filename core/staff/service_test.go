package staff_test

import (
	"context"
	"testing"

	"github.com/starville/academy/core/staff"
	inmemdb "github.com/starville/academy/storage/database/inmem"
	"github.com/starville/academy/storage/files"
	testutil "github.com/starville/academy/tests"
)

func newService(t *testing.T) *staff.Service {
	conf := testutil.NewConfig()
	conf.WorkDir = t.TempDir()
	db := inmemdb.NewDB()
	return staff.NewService(nil, inmemdb.NewStaffRepository(db), files.NewLocalStore(conf), testutil.Logger{T: t})
}

func createMember(t *testing.T, svc *staff.Service, name string) staff.Member {
	t.Helper()
	m, err := svc.Create(context.Background(), staff.NewMember{Name: name, Title: "Teacher"}, nil)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	return m
}

func memberIDs(members []staff.Member) []string {
	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
	}
	return ids
}

func assertOrder(t *testing.T, svc *staff.Service, want ...string) {
	t.Helper()
	members, err := svc.QueryAll(context.Background())
	if err != nil {
		t.Fatalf("QueryAll() failed: %v", err)
	}
	got := memberIDs(members)
	if len(got) != len(want) {
		t.Fatalf("QueryAll() returned %d members, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("QueryAll() order = %v, want %v", got, want)
		}
	}
}

func TestService_Create_appendsToDisplayOrder(t *testing.T) {
	svc := newService(t)

	m1 := createMember(t, svc, "A")
	m2 := createMember(t, svc, "B")
	m3 := createMember(t, svc, "C")

	if m1.DisplayOrder != 1 || m2.DisplayOrder != 2 || m3.DisplayOrder != 3 {
		t.Errorf("display orders = %d, %d, %d; want 1, 2, 3", m1.DisplayOrder, m2.DisplayOrder, m3.DisplayOrder)
	}
	assertOrder(t, svc, m1.ID, m2.ID, m3.ID)
}

func TestService_Move(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	m1 := createMember(t, svc, "A")
	m2 := createMember(t, svc, "B")
	m3 := createMember(t, svc, "C")

	// move middle member up
	if err := svc.Move(ctx, m2.ID, staff.MoveMember{Direction: staff.MoveUp}); err != nil {
		t.Fatalf("Move() failed: %v", err)
	}
	assertOrder(t, svc, m2.ID, m1.ID, m3.ID)

	// move it back down
	if err := svc.Move(ctx, m2.ID, staff.MoveMember{Direction: staff.MoveDown}); err != nil {
		t.Fatalf("Move() failed: %v", err)
	}
	assertOrder(t, svc, m1.ID, m2.ID, m3.ID)

	// boundary moves are no-ops
	if err := svc.Move(ctx, m1.ID, staff.MoveMember{Direction: staff.MoveUp}); err != nil {
		t.Fatalf("Move() failed: %v", err)
	}
	if err := svc.Move(ctx, m3.ID, staff.MoveMember{Direction: staff.MoveDown}); err != nil {
		t.Fatalf("Move() failed: %v", err)
	}
	assertOrder(t, svc, m1.ID, m2.ID, m3.ID)

	// unknown member
	if err := svc.Move(ctx, "60a6499e-56a2-4b6e-9b0e-3a9e2e6e7b11", staff.MoveMember{Direction: staff.MoveUp}); err != staff.ErrNotFound {
		t.Errorf("Move() error = %v, want %v", err, staff.ErrNotFound)
	}
}

func TestService_GetProprietress(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	if _, err := svc.GetProprietress(ctx); err != staff.ErrProprietressNotFound {
		t.Errorf("GetProprietress() error = %v, want %v", err, staff.ErrProprietressNotFound)
	}

	m, err := svc.Create(ctx, staff.NewMember{Name: "Mrs. Starville", Title: "Proprietress", IsProprietress: true}, nil)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	got, err := svc.GetProprietress(ctx)
	if err != nil {
		t.Fatalf("GetProprietress() failed: %v", err)
	}
	if got.ID != m.ID {
		t.Errorf("GetProprietress() = %s, want %s", got.ID, m.ID)
	}
}

func TestService_QueryKeyStaff(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	createMember(t, svc, "A")
	key, err := svc.Create(ctx, staff.NewMember{Name: "B", Title: "Head of School", IsKeyStaff: true}, nil)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	members, err := svc.QueryKeyStaff(ctx)
	if err != nil {
		t.Fatalf("QueryKeyStaff() failed: %v", err)
	}
	if len(members) != 1 || members[0].ID != key.ID {
		t.Errorf("QueryKeyStaff() = %v, want only %s", memberIDs(members), key.ID)
	}
}

func TestService_Update_partial(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	m, err := svc.Create(ctx, staff.NewMember{Name: "Ama Owusu", Title: "Teacher", Bio: "Bio."}, nil)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	inactive := false
	got, err := svc.Update(ctx, m.ID, staff.UpdateMember{IsActive: &inactive}, nil)
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if got.IsActive {
		t.Error("Update() did not deactivate the member")
	}
	if got.Name != m.Name || got.Title != m.Title || got.Bio != m.Bio {
		t.Errorf("Update() lost omitted fields: %+v", got)
	}

	// invalid contact details are rejected on update too
	if _, err = svc.Update(ctx, m.ID, staff.UpdateMember{Phone: "12345"}, nil); err == nil {
		t.Error("Update() expected an error for an invalid phone")
	}
}

func TestService_Delete(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	m := createMember(t, svc, "A")
	if err := svc.Delete(ctx, m.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if err := svc.Delete(ctx, m.ID); err != staff.ErrNotFound {
		t.Errorf("Delete() error = %v, want %v", err, staff.ErrNotFound)
	}
}
