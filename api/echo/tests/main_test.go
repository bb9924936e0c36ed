package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/starville/academy/api/echo"
	"github.com/starville/academy/core"
	"github.com/starville/academy/core/admission"
	"github.com/starville/academy/core/career"
	"github.com/starville/academy/core/contact"
	"github.com/starville/academy/core/news"
	"github.com/starville/academy/core/staff"
	"github.com/starville/academy/core/user"
	emailsvc "github.com/starville/academy/services/email"
	inmemdb "github.com/starville/academy/storage/database/inmem"
	"github.com/starville/academy/storage/files"
	testutil "github.com/starville/academy/tests"
)

var (
	conf *core.Config
	db   *inmemdb.DB
	app  *Server

	usrRepo      user.Repository
	usrSvc       *user.Service
	admissionSvc *admission.Service
	careerSvc    *career.Service
	staffSvc     *staff.Service
	newsSvc      *news.Service
	contactSvc   *contact.Service

	errMissingToken     = httpErr{Error: "missing or malformed jwt"}
	errPermissionDenied = httpErr{Error: "permission denied"}
)

func TestMain(m *testing.M) {
	conf = testutil.NewConfig()

	workDir, err := os.MkdirTemp("", "academy-api-tests")
	if err != nil {
		fmt.Printf("os.MkdirTemp(): %v", err)
		os.Exit(1)
	}
	conf.WorkDir = workDir

	// set up DB & repos
	db = inmemdb.NewDB()
	usrRepo = inmemdb.NewUserRepository(db)

	// set up services
	logger := testutil.Logger{}
	store := files.NewLocalStore(conf)
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	user.InitTokenGen(conf)
	usrSvc = user.NewService(nil, usrRepo, mailSvc, conf)
	admissionSvc = admission.NewService(nil, inmemdb.NewAdmissionRepository(db), mailSvc, conf)
	careerSvc = career.NewService(
		nil,
		inmemdb.NewOpeningRepository(db),
		inmemdb.NewApplicationRepository(db),
		store, mailSvc, logger, conf,
	)
	staffSvc = staff.NewService(nil, inmemdb.NewStaffRepository(db), store, logger)
	newsSvc = news.NewService(nil, inmemdb.NewUpdateRepository(db), inmemdb.NewAnnouncementRepository(db), store, logger)
	contactSvc = contact.NewService(nil, inmemdb.NewContactRepository(db), mailSvc, conf)

	// set up server
	app = NewServer(ServerDeps{
		Conf:         conf,
		Logger:       logger,
		UserSvc:      usrSvc,
		AdmissionSvc: admissionSvc,
		CareerSvc:    careerSvc,
		StaffSvc:     staffSvc,
		NewsSvc:      newsSvc,
		ContactSvc:   contactSvc,
	})

	// run tests
	code := m.Run()

	// clean up
	_ = os.RemoveAll(workDir)

	os.Exit(code)
}

func resetDB(t *testing.T) {
	t.Helper()
	db.Reset()
}

func createAdmin(t *testing.T) user.User {
	return testutil.CreateUser(t, usrRepo, "Admin", "admin", "admin@test.gh", "", []string{user.RoleAdmin}, true)
}

func createOfficeUser(t *testing.T) user.User {
	return testutil.CreateUser(t, usrRepo, "Office", "office", "office@test.gh", "", []string{user.RoleOffice}, true)
}

func createPlainUser(t *testing.T) user.User {
	return testutil.CreateUser(t, usrRepo, "Plain", "plain", "plain@test.gh", "", nil, true)
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	claims := GetUserClaims(usr)
	token, err := GenerateToken(claims)
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList(): %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if l1, ok := j1.([]interface{}); ok {
		if l2, ok := j2.([]interface{}); ok {
			return assert.ElementsMatch(t, l1, l2), nil
		}
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantCode == http.StatusNoContent {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
