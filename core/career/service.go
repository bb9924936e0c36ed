package career

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/starville/academy/core"
)

var (
	ErrOpeningNotFound     = errors.New("job opening not found")
	ErrApplicationNotFound = errors.New("job application not found")
	ErrOpeningInactive     = errors.New("this job opening is no longer accepting applications")
)

type (
	OpeningRepository interface {
		CreateOpening(ctx context.Context, op Opening, exec ...core.DBExecutor) (Opening, error)
		QueryOpenings(ctx context.Context, activeOnly bool, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]Opening, error)
		GetOpening(ctx context.Context, id string, exec ...core.DBExecutor) (Opening, error)
		UpdateOpening(ctx context.Context, op Opening, exec ...core.DBExecutor) (Opening, error)
		DeleteOpeningsByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error)
	}

	ApplicationRepository interface {
		CreateApplication(ctx context.Context, app Application, exec ...core.DBExecutor) (Application, error)
		QueryApplications(ctx context.Context, openingID string, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]Application, error)
		GetApplication(ctx context.Context, id string, exec ...core.DBExecutor) (Application, error)
		UpdateApplication(ctx context.Context, app Application, exec ...core.DBExecutor) (Application, error)
		DeleteApplicationsByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error)
	}

	Service struct {
		db        core.DB
		openings  OpeningRepository
		apps      ApplicationRepository
		fileStore core.FileStore
		mailSvc   core.EmailService
		logger    core.Logger
		conf      *core.Config
	}
)

func NewService(
	db core.DB,
	openings OpeningRepository,
	apps ApplicationRepository,
	fileStore core.FileStore,
	mailSvc core.EmailService,
	logger core.Logger,
	conf *core.Config,
) *Service {
	return &Service{
		db:        db,
		openings:  openings,
		apps:      apps,
		fileStore: fileStore,
		mailSvc:   mailSvc,
		logger:    logger,
		conf:      conf,
	}
}

// Openings

func (svc *Service) CreateOpening(ctx context.Context, no NewOpening) (Opening, error) {
	now := time.Now().UTC()
	op := Opening{
		Title:            no.Title,
		Department:       no.Department,
		Type:             no.Type,
		Location:         no.Location,
		Salary:           no.Salary,
		Description:      no.Description,
		Requirements:     no.Requirements,
		Responsibilities: no.Responsibilities,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	return svc.openings.CreateOpening(ctx, op)
}

func (svc *Service) QueryAllOpenings(ctx context.Context) ([]Opening, error) {
	return svc.openings.QueryOpenings(ctx, false, defaultOrdering())
}

func (svc *Service) QueryActiveOpenings(ctx context.Context) ([]Opening, error) {
	return svc.openings.QueryOpenings(ctx, true, defaultOrdering())
}

func (svc *Service) GetOpeningByID(ctx context.Context, id string) (Opening, error) {
	return svc.openings.GetOpening(ctx, id)
}

// UpdateOpening applies a partial update; fields left empty keep their
// current values.
func (svc *Service) UpdateOpening(ctx context.Context, id string, uo UpdateOpening) (Opening, error) {
	orig, err := svc.openings.GetOpening(ctx, id)
	if err != nil {
		return Opening{}, err
	}
	if err := uo.Validate(orig); err != nil {
		return Opening{}, err
	}

	op := orig
	op.Title = uo.Title
	op.Department = uo.Department
	op.Type = uo.Type
	op.Location = uo.Location
	op.Salary = uo.Salary
	op.Description = uo.Description
	op.Requirements = uo.Requirements
	op.Responsibilities = uo.Responsibilities
	if uo.IsActive != nil {
		op.IsActive = *uo.IsActive
	}
	op.UpdatedAt = time.Now().UTC()
	return svc.openings.UpdateOpening(ctx, op)
}

// ToggleOpeningActive flips the opening's active flag and returns the updated row.
func (svc *Service) ToggleOpeningActive(ctx context.Context, id string) (Opening, error) {
	op, err := svc.openings.GetOpening(ctx, id)
	if err != nil {
		return Opening{}, err
	}
	op.IsActive = !op.IsActive
	op.UpdatedAt = time.Now().UTC()
	return svc.openings.UpdateOpening(ctx, op)
}

func (svc *Service) DeleteOpenings(ctx context.Context, ids ...string) error {
	cnt, err := svc.openings.DeleteOpeningsByID(ctx, ids)
	if err != nil {
		return err
	}
	if cnt == 0 {
		return ErrOpeningNotFound
	}
	return nil
}

// Applications

// SubmitApplication files an application against an active opening. A resume,
// if provided, is uploaded first; when the insert then fails, the upload is
// deleted again so no orphan object is left behind.
func (svc *Service) SubmitApplication(ctx context.Context, na NewApplication, resume *core.Upload) (Application, error) {
	op, err := svc.openings.GetOpening(ctx, na.OpeningID)
	if err != nil {
		if err == ErrOpeningNotFound {
			return Application{}, core.NewValidationError(err, core.FieldError{Field: "opening_id", Error: err.Error()})
		}
		return Application{}, err
	}
	if !op.IsActive {
		return Application{}, core.NewValidationError(ErrOpeningInactive, core.FieldError{Field: "opening_id", Error: ErrOpeningInactive.Error()})
	}

	now := time.Now().UTC()
	app := Application{
		OpeningID:   op.ID,
		Name:        na.Name,
		Email:       na.Email,
		Phone:       na.Phone,
		CoverLetter: na.CoverLetter,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if resume != nil {
		if err := resume.ValidateResume("resume"); err != nil {
			return Application{}, err
		}
		stored, err := svc.fileStore.Save(ctx, resume.Key("resumes"), resume.ContentType, resume.Body)
		if err != nil {
			return Application{}, pkgerrors.Wrap(err, "uploading resume")
		}
		app.ResumeKey = stored.Key
		app.ResumeURL = stored.URL
	}

	resumeKey := app.ResumeKey
	app, err = svc.apps.CreateApplication(ctx, app)
	if err != nil {
		// compensate: do not orphan the uploaded resume
		if resumeKey != "" {
			if delErr := svc.fileStore.Delete(ctx, resumeKey); delErr != nil {
				svc.logger.Error(fmt.Sprintf("deleting orphaned resume %s: %v", resumeKey, delErr), delErr)
			}
		}
		return Application{}, pkgerrors.Wrap(err, "inserting job application")
	}

	svc.notifyAdmin(app, op)
	return app, nil
}

func (svc *Service) QueryAllApplications(ctx context.Context) ([]Application, error) {
	return svc.apps.QueryApplications(ctx, "", defaultOrdering())
}

func (svc *Service) QueryApplicationsByOpening(ctx context.Context, openingID string) ([]Application, error) {
	return svc.apps.QueryApplications(ctx, openingID, defaultOrdering())
}

func (svc *Service) GetApplicationByID(ctx context.Context, id string) (Application, error) {
	return svc.apps.GetApplication(ctx, id)
}

func (svc *Service) UpdateApplicationStatus(ctx context.Context, id string, us UpdateApplicationStatus) (Application, error) {
	app, err := svc.apps.GetApplication(ctx, id)
	if err != nil {
		return Application{}, err
	}
	app.Status = us.Status
	app.UpdatedAt = time.Now().UTC()
	return svc.apps.UpdateApplication(ctx, app)
}

func (svc *Service) DeleteApplications(ctx context.Context, ids ...string) error {
	cnt, err := svc.apps.DeleteApplicationsByID(ctx, ids)
	if err != nil {
		return err
	}
	if cnt == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (svc *Service) notifyAdmin(app Application, op Opening) {
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{svc.conf.AdminEmail},
		Subject: fmt.Sprintf("New application: %s", op.Title),
		BodyStr: fmt.Sprintf(
			"%s <%s> (%s) applied for %s (%s).",
			app.Name, app.Email, app.Phone, op.Title, op.Department,
		),
	})
}

func defaultOrdering() []core.DBOrdering {
	return []core.DBOrdering{{Field: "created_at", Ascending: false}}
}
