package contact

import (
	"time"

	"github.com/starville/academy/core"
)

// Statuses
const (
	StatusUnread    = "unread"
	StatusRead      = "read"
	StatusResponded = "responded"
)

var AllStatuses = []string{StatusUnread, StatusRead, StatusResponded}

// Message is an enquiry submitted from the public contact form.
type Message struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

// NewMessage contains the raw contact form input.
type NewMessage struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,ghphone"`
	Subject string `json:"subject" validate:"required"`
	Body    string `json:"body" validate:"required"`
}

func (nm *NewMessage) Validate() error {
	nm.Name = core.CleanString(nm.Name)
	nm.Email = core.CleanString(nm.Email, true /* lower */)
	nm.Phone = core.CleanString(nm.Phone)
	nm.Subject = core.CleanString(nm.Subject)
	nm.Body = core.CleanString(nm.Body)
	return core.Validate.Struct(nm)
}

// UpdateStatus sets a message's handling status.
type UpdateStatus struct {
	Status string `json:"status" validate:"required,oneof=unread read responded"`
}

func (us *UpdateStatus) Validate() error {
	us.Status = core.CleanString(us.Status, true /* lower */)
	return core.Validate.Struct(us)
}
