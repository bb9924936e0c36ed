package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/starville/academy/core/contact"
)

func newMessage() contact.NewMessage {
	return contact.NewMessage{
		Name:    "Kofi Asante",
		Email:   "kofi@test.gh",
		Subject: "School fees",
		Body:    "What are the fees for Primary 1?",
	}
}

func submitMessage(t *testing.T) contact.Message {
	t.Helper()
	msg, err := contactSvc.Submit(context.Background(), newMessage())
	if err != nil {
		t.Fatalf("contactSvc.Submit(): %v", err)
	}
	return msg
}

func Test_contactApi_submit(t *testing.T) {
	resetDB(t)

	missing := newMessage()
	missing.Body = ""
	badPhone := newMessage()
	badPhone.Phone = "12345"

	tests := []httpTest{
		{name: "Submit", body: marchallObj(t, newMessage()), wantCode: http.StatusCreated},
		{
			name: "Missing body", body: marchallObj(t, missing), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"body": "this field is required"}),
		},
		{
			name: "Invalid phone", body: marchallObj(t, badPhone), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"phone": "enter a valid Ghanaian phone number, e.g. 0241234567 or +233241234567"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/contact", tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusCreated {
				if rec.Code != tt.wantCode {
					t.Fatalf("failed! code = %v; wantCode %v; body %v", rec.Code, tt.wantCode, rec.Body.String())
				}
				var msg contact.Message
				if err := json.Unmarshal(rec.Body.Bytes(), &msg); err != nil {
					t.Fatalf("json.Unmarshal() failed! err %v", err)
				}
				if msg.Status != contact.StatusUnread {
					t.Errorf("failed! status = %v; want %v", msg.Status, contact.StatusUnread)
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_contactApi_query(t *testing.T) {
	resetDB(t)

	msg1 := submitMessage(t)
	msg2 := submitMessage(t)
	updated, err := contactSvc.UpdateStatus(context.Background(), msg1.ID, contact.UpdateStatus{Status: contact.StatusRead})
	if err != nil {
		t.Fatalf("contactSvc.UpdateStatus(): %v", err)
	}

	officeToken := getToken(t, createOfficeUser(t))
	empty := marchallList(t, []interface{}{}...)

	tests := []httpTest{
		{name: "Auth required", path: "/v1/contact", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "Get all", path: "/v1/contact", token: officeToken, wantData: marchallList(t, msg2, updated)},
		{name: "By status", path: "/v1/contact?status=read", token: officeToken, wantData: marchallList(t, updated)},
		{name: "By status (none)", path: "/v1/contact?status=responded", token: officeToken, wantData: empty},
		{name: "Retrieve", path: "/v1/contact/" + msg2.ID, token: officeToken, wantData: marchallObj(t, msg2)},
		{
			name: "Retrieve unknown", path: "/v1/contact/57f9ab5c-34a5-4f44-b25c-0f9e46ab5c72", token: officeToken,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "contact message not found"}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet
		if tt.wantCode == 0 {
			tt.wantCode = http.StatusOK
		}

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_contactApi_updateStatus(t *testing.T) {
	resetDB(t)

	msg := submitMessage(t)
	adminToken := getToken(t, createAdmin(t))
	officeToken := getToken(t, createOfficeUser(t))
	body := marchallObj(t, contact.UpdateStatus{Status: contact.StatusResponded})

	tests := []httpTest{
		{
			name: "Admin required", token: officeToken, body: body,
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermissionDenied),
		},
		{name: "Status updated", token: adminToken, body: body, wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		tt.method = http.MethodPut
		tt.path = "/v1/contact/" + msg.ID + "/status"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusOK {
				if rec.Code != tt.wantCode {
					t.Fatalf("failed! code = %v; wantCode %v; body %v", rec.Code, tt.wantCode, rec.Body.String())
				}
				var got contact.Message
				if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
					t.Fatalf("json.Unmarshal() failed! err %v", err)
				}
				if got.Status != contact.StatusResponded {
					t.Errorf("failed! status = %v; want %v", got.Status, contact.StatusResponded)
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_contactApi_destroy(t *testing.T) {
	resetDB(t)

	msg := submitMessage(t)
	adminToken := getToken(t, createAdmin(t))

	req, rec := newAuthRequest(http.MethodDelete, "/v1/contact/"+msg.ID, adminToken)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("failed! code = %v; wantCode %v; body %v", rec.Code, http.StatusNoContent, rec.Body.String())
	}

	req, rec = newAuthRequest(http.MethodDelete, "/v1/contact/"+msg.ID, adminToken)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusNotFound,
		wantData: marchallObj(t, httpErr{Error: "contact message not found"}),
	}, rec)
}
