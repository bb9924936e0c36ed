package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/starville/academy/core/career"
)

func createOpening(t *testing.T) career.Opening {
	t.Helper()
	op, err := careerSvc.CreateOpening(context.Background(), career.NewOpening{
		Title:        "Primary School Teacher",
		Department:   "Primary",
		Type:         "full-time",
		Location:     "Accra",
		Description:  "Teach primary school classes.",
		Requirements: []string{"B.Ed or equivalent"},
	})
	if err != nil {
		t.Fatalf("careerSvc.CreateOpening(): %v", err)
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

func Test_careerApi_openingQuery(t *testing.T) {
	resetDB(t)

	op1 := createOpening(t)
	op2 := createOpening(t)
	if _, err := careerSvc.ToggleOpeningActive(context.Background(), op2.ID); err != nil {
		t.Fatalf("careerSvc.ToggleOpeningActive(): %v", err)
	}
	op2, err := careerSvc.GetOpeningByID(context.Background(), op2.ID)
	if err != nil {
		t.Fatalf("careerSvc.GetOpeningByID(): %v", err)
	}

	officeToken := getToken(t, createOfficeUser(t))

	tests := []httpTest{
		{name: "Public listing only shows active openings", path: "/v1/careers/openings", wantData: marchallList(t, op1)},
		{name: "Auth required for full listing", path: "/v1/careers/openings/all", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "Full listing", path: "/v1/careers/openings/all", token: officeToken, wantData: marchallList(t, op2, op1)},
		{name: "Retrieve", path: "/v1/careers/openings/" + op1.ID, token: officeToken, wantData: marchallObj(t, op1)},
		{
			name: "Retrieve unknown", path: "/v1/careers/openings/07c0b5c3-9e5c-4f95-8e71-3b0e0d2776b4", token: officeToken,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "job opening not found"}),
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

func Test_careerApi_updateOpening(t *testing.T) {
	resetDB(t)

	op := createOpening(t)
	adminToken := getToken(t, createAdmin(t))

	req, rec := newAuthRequest(http.MethodPut, "/v1/careers/openings/"+op.ID, adminToken,
		marchallObj(t, map[string]string{"title": "Head Teacher"}))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; wantCode %v; body %v", rec.Code, http.StatusOK, rec.Body.String())
	}

	var got career.Opening
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("json.Unmarshal() failed! err %v", err)
	}
	if got.Title != "Head Teacher" {
		t.Errorf("failed! title = %v; want Head Teacher", got.Title)
	}
	// fields omitted from the payload keep their values
	if got.Department != op.Department || got.Description != op.Description {
		t.Errorf("failed! omitted fields changed: %+v", got)
	}
	if !got.IsActive {
		t.Error("failed! partial update deactivated the opening")
	}
	if !got.CreatedAt.Equal(op.CreatedAt) {
		t.Errorf("failed! created_at = %v; want unchanged %v", got.CreatedAt, op.CreatedAt)
	}
}

func Test_careerApi_submitApplication(t *testing.T) {
	resetDB(t)

	op := createOpening(t)
	closed := createOpening(t)
	if _, err := careerSvc.ToggleOpeningActive(context.Background(), closed.ID); err != nil {
		t.Fatalf("careerSvc.ToggleOpeningActive(): %v", err)
	}

	badPhone := newApplication(op.ID)
	badPhone.Phone = "12345"

	tests := []httpTest{
		{name: "Submit", body: marchallObj(t, newApplication(op.ID)), wantCode: http.StatusCreated},
		{
			name: "Unknown opening", body: marchallObj(t, newApplication("9e39f6f9-9a41-4a34-9a3c-dc1c5b2ea373")),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"opening_id": "job opening not found"}),
		},
		{
			name: "Closed opening", body: marchallObj(t, newApplication(closed.ID)),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"opening_id": "this job opening is no longer accepting applications"}),
		},
		{
			name: "Invalid phone", body: marchallObj(t, badPhone),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"phone": "enter a valid Ghanaian phone number, e.g. 0241234567 or +233241234567"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/careers/applications", tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusCreated {
				if rec.Code != tt.wantCode {
					t.Fatalf("failed! code = %v; wantCode %v; body %v", rec.Code, tt.wantCode, rec.Body.String())
				}
				var appl career.Application
				if err := json.Unmarshal(rec.Body.Bytes(), &appl); err != nil {
					t.Fatalf("json.Unmarshal() failed! err %v", err)
				}
				if appl.Status != career.StatusPending {
					t.Errorf("failed! status = %v; want %v", appl.Status, career.StatusPending)
				}
				if appl.ResumeURL != "" {
					t.Errorf("failed! resume_url = %v; want empty", appl.ResumeURL)
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_careerApi_applicationQuery(t *testing.T) {
	resetDB(t)

	op1 := createOpening(t)
	op2 := createOpening(t)
	ctx := context.Background()
	app1, err := careerSvc.SubmitApplication(ctx, newApplication(op1.ID), nil)
	if err != nil {
		t.Fatalf("careerSvc.SubmitApplication(): %v", err)
	}
	app2, err := careerSvc.SubmitApplication(ctx, newApplication(op2.ID), nil)
	if err != nil {
		t.Fatalf("careerSvc.SubmitApplication(): %v", err)
	}

	officeToken := getToken(t, createOfficeUser(t))

	tests := []httpTest{
		{name: "Auth required", path: "/v1/careers/applications", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "Get all", path: "/v1/careers/applications", token: officeToken, wantData: marchallList(t, app2, app1)},
		{name: "By opening", path: "/v1/careers/applications?opening_id=" + op1.ID, token: officeToken, wantData: marchallList(t, app1)},
		{name: "Retrieve", path: "/v1/careers/applications/" + app1.ID, token: officeToken, wantData: marchallObj(t, app1)},
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

func Test_careerApi_destroyApplication(t *testing.T) {
	resetDB(t)

	op := createOpening(t)
	appl, err := careerSvc.SubmitApplication(context.Background(), newApplication(op.ID), nil)
	if err != nil {
		t.Fatalf("careerSvc.SubmitApplication(): %v", err)
	}
	adminToken := getToken(t, createAdmin(t))

	req, rec := newAuthRequest(http.MethodDelete, "/v1/careers/applications/"+appl.ID, adminToken)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("failed! code = %v; wantCode %v; body %v", rec.Code, http.StatusNoContent, rec.Body.String())
	}

	req, rec = newAuthRequest(http.MethodDelete, "/v1/careers/applications/"+appl.ID, adminToken)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusNotFound,
		wantData: marchallObj(t, httpErr{Error: "job application not found"}),
	}, rec)
}
