package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/jmoiron/sqlx"

	echoapi "github.com/starville/academy/api/echo"
	"github.com/starville/academy/core"
	"github.com/starville/academy/core/admission"
	"github.com/starville/academy/core/career"
	"github.com/starville/academy/core/contact"
	"github.com/starville/academy/core/news"
	"github.com/starville/academy/core/staff"
	"github.com/starville/academy/core/user"
	emailsvc "github.com/starville/academy/services/email"
	logsvc "github.com/starville/academy/services/logger"
	"github.com/starville/academy/storage/database"
	sqlxrepos "github.com/starville/academy/storage/database/sqlx"
	"github.com/starville/academy/storage/files"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	dbLogger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	dbLogger.Enable(!conf.Debug)

	// set up DB
	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			dbLogger.Fatal("Failed to close", err)
		}
	}()

	// set up file storage
	var fileStore core.FileStore
	var mediaRoot string
	if conf.Storage.Backend == "s3" {
		s3Store, err := files.NewS3Store(context.Background(), conf)
		if err != nil {
			logger.Fatal(fmt.Sprintf("setting up S3 storage: %v", err), err)
		}
		fileStore = s3Store
	} else {
		localStore := files.NewLocalStore(conf)
		fileStore = localStore
		mediaRoot = localStore.Root()
	}

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(logger, conf)
	}
	usrSvc := user.NewService(db, sqlxrepos.NewUserRepository(db), mailSvc, conf)
	admSvc := admission.NewService(db, sqlxrepos.NewAdmissionRepository(db), mailSvc, conf)
	careerSvc := career.NewService(
		db,
		sqlxrepos.NewOpeningRepository(db),
		sqlxrepos.NewApplicationRepository(db),
		fileStore,
		mailSvc,
		logger,
		conf,
	)
	staffSvc := staff.NewService(db, sqlxrepos.NewStaffRepository(db), fileStore, logger)
	newsSvc := news.NewService(
		db,
		sqlxrepos.NewUpdateRepository(db),
		sqlxrepos.NewAnnouncementRepository(db),
		fileStore,
		logger,
	)
	contactSvc := contact.NewService(db, sqlxrepos.NewContactRepository(db), mailSvc, conf)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	user.InitValidators(core.Validate, core.Translator)
	user.InitTokenGen(conf)
	user.LoadCommonPasswords(conf, logger)
	core.ParseEmailTemplates(conf, logger)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err = http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:         conf,
			Logger:       logger,
			UserSvc:      usrSvc,
			AdmissionSvc: admSvc,
			CareerSvc:    careerSvc,
			StaffSvc:     staffSvc,
			NewsSvc:      newsSvc,
			ContactSvc:   contactSvc,
			MediaRoot:    mediaRoot,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}
	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}
	if err = database.Migrate(db.DB); err != nil {
		return nil, err
	}
	return db, nil
}
