package contact_test

import (
	"context"
	"testing"

	"github.com/starville/academy/core/contact"
	emailsvc "github.com/starville/academy/services/email"
	inmemdb "github.com/starville/academy/storage/database/inmem"
	testutil "github.com/starville/academy/tests"
)

func newService() *contact.Service {
	conf := testutil.NewConfig()
	db := inmemdb.NewDB()
	return contact.NewService(nil, inmemdb.NewContactRepository(db), emailsvc.NewConsoleServiceMock(conf), conf)
}

func newMessage() contact.NewMessage {
	return contact.NewMessage{
		Name:    "Kofi Asante",
		Email:   "kofi@test.gh",
		Phone:   "0241234567",
		Subject: "School fees",
		Body:    "What are the fees for Primary 1?",
	}
}

func TestService_Submit(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	msg, err := svc.Submit(ctx, newMessage())
	if err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	if msg.ID == "" {
		t.Error("Submit() did not assign an ID")
	}
	if msg.Status != contact.StatusUnread {
		t.Errorf("Submit() status = %s, want %s", msg.Status, contact.StatusUnread)
	}
}

func TestService_QueryByStatus(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	m1, err := svc.Submit(ctx, newMessage())
	if err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	if _, err = svc.Submit(ctx, newMessage()); err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	if _, err = svc.UpdateStatus(ctx, m1.ID, contact.UpdateStatus{Status: contact.StatusRead}); err != nil {
		t.Fatalf("UpdateStatus() failed: %v", err)
	}

	all, err := svc.QueryAll(ctx)
	if err != nil {
		t.Fatalf("QueryAll() failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("QueryAll() returned %d messages, want 2", len(all))
	}

	read, err := svc.QueryByStatus(ctx, "READ") // status matching is case insensitive
	if err != nil {
		t.Fatalf("QueryByStatus() failed: %v", err)
	}
	if len(read) != 1 || read[0].ID != m1.ID {
		t.Errorf("QueryByStatus() = %v, want only %s", read, m1.ID)
	}
}

func TestService_UpdateStatus(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	msg, err := svc.Submit(ctx, newMessage())
	if err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}

	msg, err = svc.UpdateStatus(ctx, msg.ID, contact.UpdateStatus{Status: contact.StatusResponded})
	if err != nil {
		t.Fatalf("UpdateStatus() failed: %v", err)
	}
	if msg.Status != contact.StatusResponded {
		t.Errorf("UpdateStatus() status = %s, want %s", msg.Status, contact.StatusResponded)
	}

	if _, err = svc.UpdateStatus(ctx, "7a7c4f3e-9a02-4f57-9a93-df1fb5a2d9c0", contact.UpdateStatus{Status: contact.StatusRead}); err != contact.ErrNotFound {
		t.Errorf("UpdateStatus() error = %v, want %v", err, contact.ErrNotFound)
	}
}

func TestService_Delete(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	msg, err := svc.Submit(ctx, newMessage())
	if err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}

	if err = svc.Delete(ctx, msg.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err = svc.GetByID(ctx, msg.ID); err != contact.ErrNotFound {
		t.Errorf("GetByID() error = %v, want %v", err, contact.ErrNotFound)
	}
	if err = svc.Delete(ctx, msg.ID); err != contact.ErrNotFound {
		t.Errorf("Delete() error = %v, want %v", err, contact.ErrNotFound)
	}
}
