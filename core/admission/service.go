package admission

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/starville/academy/core"
)

var ErrNotFound = errors.New("admission application not found")

type (
	Repository interface {
		CreateAdmission(ctx context.Context, adm Admission, exec ...core.DBExecutor) (Admission, error)
		// QueryAdmissions applies AND operation on available QueryFilter fields.
		QueryAdmissions(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]Admission, error)
		GetAdmission(ctx context.Context, id string, exec ...core.DBExecutor) (Admission, error)
		UpdateAdmission(ctx context.Context, adm Admission, exec ...core.DBExecutor) (Admission, error)
		DeleteAdmissionsByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error)
	}

	Service struct {
		db      core.DB
		repo    Repository
		mailSvc core.EmailService
		conf    *core.Config
	}
)

func NewService(db core.DB, repo Repository, mailSvc core.EmailService, conf *core.Config) *Service {
	return &Service{db: db, repo: repo, mailSvc: mailSvc, conf: conf}
}

// Submit files a new application; status always starts out pending.
func (svc *Service) Submit(ctx context.Context, na NewAdmission) (Admission, error) {
	age, err := na.Age()
	if err != nil {
		return Admission{}, err
	}

	now := time.Now().UTC()
	adm := Admission{
		ParentName:       na.ParentName,
		ParentEmail:      na.ParentEmail,
		ParentPhone:      na.ParentPhone,
		ChildName:        na.ChildName,
		ChildGender:      na.ChildGender,
		ChildAge:         age,
		Level:            na.Level,
		PreviousSchool:   na.PreviousSchool,
		EmergencyContact: na.EmergencyContact,
		Message:          na.Message,
		Status:           StatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	adm, err = svc.repo.CreateAdmission(ctx, adm)
	if err != nil {
		return Admission{}, err
	}

	svc.notifyAdmin(adm)
	return adm, nil
}

func (svc *Service) QueryAll(ctx context.Context) ([]Admission, error) {
	return svc.repo.QueryAdmissions(ctx, nil, defaultOrdering())
}

func (svc *Service) Filter(ctx context.Context, filter QueryFilter) ([]Admission, error) {
	filter.Clean()
	return svc.repo.QueryAdmissions(ctx, &filter, defaultOrdering())
}

func (svc *Service) GetByID(ctx context.Context, id string) (Admission, error) {
	return svc.repo.GetAdmission(ctx, id)
}

func (svc *Service) UpdateStatus(ctx context.Context, id string, us UpdateStatus) (Admission, error) {
	adm, err := svc.repo.GetAdmission(ctx, id)
	if err != nil {
		return Admission{}, err
	}
	adm.Status = us.Status
	adm.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateAdmission(ctx, adm)
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	cnt, err := svc.repo.DeleteAdmissionsByID(ctx, ids)
	if err != nil {
		return err
	}
	if cnt == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats reduces all applications into counts per status and per desired level
// in a single pass.
func (svc *Service) Stats(ctx context.Context) (Stats, error) {
	adms, err := svc.repo.QueryAdmissions(ctx, nil, nil)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{
		Total:    len(adms),
		ByStatus: make(map[string]int, len(AllStatuses)),
		ByLevel:  make(map[string]int),
	}
	for _, status := range AllStatuses {
		stats.ByStatus[status] = 0
	}
	for _, adm := range adms {
		stats.ByStatus[adm.Status]++
		stats.ByLevel[adm.Level]++
	}
	return stats, nil
}

func (svc *Service) notifyAdmin(adm Admission) {
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{svc.conf.AdminEmail},
		Subject: "New admission application",
		BodyStr: fmt.Sprintf(
			"A new admission application was submitted for %s (%s, age %d) by %s <%s> (%s).",
			adm.ChildName, adm.Level, adm.ChildAge, adm.ParentName, adm.ParentEmail, adm.ParentPhone,
		),
	})
}

func defaultOrdering() []core.DBOrdering {
	return []core.DBOrdering{{Field: "created_at", Ascending: false}}
}
