// Package testutil provides shared fixtures for tests.
package testutil

import (
	"context"
	"fmt"
	"net/mail"
	"testing"
	"time"

	"github.com/starville/academy/core"
	"github.com/starville/academy/core/user"
)

// NewConfig returns a self-contained app config for tests.
func NewConfig() *core.Config {
	conf := &core.Config{
		TestMode:                  true,
		Env:                       "TEST",
		Build:                     "test",
		AppName:                   "Starville Academy",
		SecretKey:                 "secret",
		FrontendBaseURL:           "http://localhost:3000",
		DefaultFromEmail:          mail.Address{Name: "Starville Academy", Address: "noreply@localhost"},
		AdminEmail:                mail.Address{Name: "Starville Academy", Address: "admissions@localhost"},
		PasswordResetTimeoutDelta: 3 * 24 * time.Hour,
	}
	conf.Server.Host = "localhost"
	conf.Server.Addr = ":0"
	conf.Server.ShutdownTimeout = 5 * time.Second
	conf.Server.JWTExpirationDelta = 10 * time.Minute
	conf.Server.JWTRefreshExpirationDelta = 4 * time.Hour
	conf.Storage.Backend = "local"
	conf.Storage.LocalDir = "media"
	return conf
}

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, uname, email, pwd string,
	roles []string,
	isActive bool,
	createdAt ...time.Time,
) user.User {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		Name:      name,
		Username:  uname,
		Email:     email,
		Roles:     roles,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	usr.SetActive(isActive)
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

// Logger is a core.Logger that records to the test log.
type Logger struct {
	T *testing.T
}

var _ core.Logger = (*Logger)(nil)

func (l Logger) Enable(bool) {}

func (l Logger) log(level, msg string, args []interface{}) {
	if l.T == nil {
		return
	}
	l.T.Helper()
	l.T.Logf("%s: %s %s", level, msg, fmt.Sprint(args...))
}

func (l Logger) Debug(msg string, args ...interface{}) { l.log("DEBUG", msg, args) }
func (l Logger) Info(msg string, args ...interface{})  { l.log("INFO", msg, args) }
func (l Logger) Warn(msg string, args ...interface{})  { l.log("WARN", msg, args) }
func (l Logger) Error(msg string, args ...interface{}) { l.log("ERROR", msg, args) }
func (l Logger) Fatal(msg string, args ...interface{}) {
	l.log("FATAL", msg, args)
	if l.T != nil {
		l.T.FailNow()
	}
}
