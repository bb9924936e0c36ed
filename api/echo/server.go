package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/starville/academy/core"
	"github.com/starville/academy/core/admission"
	"github.com/starville/academy/core/career"
	"github.com/starville/academy/core/contact"
	"github.com/starville/academy/core/news"
	"github.com/starville/academy/core/staff"
	"github.com/starville/academy/core/user"
)

type (
	// ServerDeps is everything a Server needs to run.
	ServerDeps struct {
		Conf         *core.Config
		Logger       core.Logger
		UserSvc      *user.Service
		AdmissionSvc *admission.Service
		CareerSvc    *career.Service
		StaffSvc     *staff.Service
		NewsSvc      *news.Service
		ContactSvc   *contact.Service

		// MediaRoot is the local directory uploaded files are served from.
		// Leave empty when files live on S3.
		MediaRoot string
	}

	Server struct {
		deps     ServerDeps
		app      *echo.Echo
		errors   chan error
		shutdown chan os.Signal
	}
)

func NewServer(deps ServerDeps) *Server {
	server := &Server{
		deps:     deps,
		app:      echo.New(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(server.shutdown, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	server.setup()
	return server
}

func (s *Server) setup() {
	conf := s.deps.Conf

	s.app.Debug = conf.Debug
	s.app.HideBanner = true
	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.signalShutdown)

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.TestMode {
		s.app.Use(middleware.Logger())
		if !conf.Debug {
			s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
		}
	}

	jwt := ConfigureAuth(
		conf.AppName,
		[]byte(conf.SecretKey),
		conf.Server.JWTExpirationDelta,
		conf.Server.JWTRefreshExpirationDelta,
	)

	s.app.GET("/", s.home)
	if s.deps.MediaRoot != "" {
		s.app.Static("/media", s.deps.MediaRoot)
	}

	v1 := s.app.Group("/v1")
	registerUserAPI(v1, jwt, s.deps.UserSvc)
	registerAdmissionAPI(v1, jwt, s.deps.AdmissionSvc)
	registerCareerAPI(v1, jwt, s.deps.CareerSvc)
	registerStaffAPI(v1, jwt, s.deps.StaffSvc)
	registerNewsAPI(v1, jwt, s.deps.NewsSvc)
	registerContactAPI(v1, jwt, s.deps.ContactSvc)
}

func (s *Server) home(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{
		"app":   s.deps.Conf.AppName,
		"build": s.deps.Conf.Build,
	})
}

// Start starts the server and blocks until it stops.
// A failure to start or serve is reported on Errors().
func (s *Server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Addr); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

// Errors reports a fatal server error.
func (s *Server) Errors() <-chan error { return s.errors }

// ShutdownSignal relays OS interrupt/termination signals; the app error
// handler also pushes onto it when an integrity issue calls for a restart.
func (s *Server) ShutdownSignal() <-chan os.Signal { return s.shutdown }

func (s *Server) signalShutdown() { s.shutdown <- syscall.SIGTERM }

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error { return s.app.Shutdown(ctx) }

// Close stops the server immediately.
func (s *Server) Close() error { return s.app.Close() }

// ServeHTTP lets tests drive the app without a listener.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.app.ServeHTTP(w, r) }
