package contact

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/starville/academy/core"
)

var ErrNotFound = errors.New("contact message not found")

type (
	Repository interface {
		CreateMessage(ctx context.Context, msg Message, exec ...core.DBExecutor) (Message, error)
		QueryMessages(ctx context.Context, status string, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]Message, error)
		GetMessage(ctx context.Context, id string, exec ...core.DBExecutor) (Message, error)
		UpdateMessage(ctx context.Context, msg Message, exec ...core.DBExecutor) (Message, error)
		DeleteMessagesByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error)
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

// Submit files a new enquiry; status always starts out unread.
func (svc *Service) Submit(ctx context.Context, nm NewMessage) (Message, error) {
	now := time.Now().UTC()
	msg := Message{
		Name:      nm.Name,
		Email:     nm.Email,
		Phone:     nm.Phone,
		Subject:   nm.Subject,
		Body:      nm.Body,
		Status:    StatusUnread,
		CreatedAt: now,
		UpdatedAt: now,
	}
	msg, err := svc.repo.CreateMessage(ctx, msg)
	if err != nil {
		return Message{}, err
	}

	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{svc.conf.AdminEmail},
		Subject: fmt.Sprintf("New contact message: %s", msg.Subject),
		BodyStr: fmt.Sprintf("%s <%s> wrote:\n\n%s", msg.Name, msg.Email, msg.Body),
	})
	return msg, nil
}

func (svc *Service) QueryAll(ctx context.Context) ([]Message, error) {
	return svc.repo.QueryMessages(ctx, "", defaultOrdering())
}

func (svc *Service) QueryByStatus(ctx context.Context, status string) ([]Message, error) {
	return svc.repo.QueryMessages(ctx, core.CleanString(status, true /* lower */), defaultOrdering())
}

func (svc *Service) GetByID(ctx context.Context, id string) (Message, error) {
	return svc.repo.GetMessage(ctx, id)
}

func (svc *Service) UpdateStatus(ctx context.Context, id string, us UpdateStatus) (Message, error) {
	msg, err := svc.repo.GetMessage(ctx, id)
	if err != nil {
		return Message{}, err
	}
	msg.Status = us.Status
	msg.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateMessage(ctx, msg)
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	cnt, err := svc.repo.DeleteMessagesByID(ctx, ids)
	if err != nil {
		return err
	}
	if cnt == 0 {
		return ErrNotFound
	}
	return nil
}

func defaultOrdering() []core.DBOrdering {
	return []core.DBOrdering{{Field: "created_at", Ascending: false}}
}
