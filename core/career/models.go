package career

import (
	"time"

	"github.com/starville/academy/core"
)

// Application statuses
const (
	StatusPending  = "pending"
	StatusReviewed = "reviewed"
	StatusRejected = "rejected"
)

var AllStatuses = []string{StatusPending, StatusReviewed, StatusRejected}

// Opening is a published job vacancy.
type Opening struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Department       string    `json:"department"`
	Type             string    `json:"type"` // full-time, part-time, contract...
	Location         string    `json:"location"`
	Salary           string    `json:"salary,omitempty"`
	Description      string    `json:"description"`
	Requirements     []string  `json:"requirements"`
	Responsibilities []string  `json:"responsibilities"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"` // UTC
	UpdatedAt        time.Time `json:"updated_at"` // UTC
}

// NewOpening contains information needed to publish a new Opening.
type NewOpening struct {
	Title            string   `json:"title" validate:"required"`
	Department       string   `json:"department" validate:"required"`
	Type             string   `json:"type" validate:"required"`
	Location         string   `json:"location" validate:"required"`
	Salary           string   `json:"salary"`
	Description      string   `json:"description" validate:"required"`
	Requirements     []string `json:"requirements"`
	Responsibilities []string `json:"responsibilities"`
}

func (no *NewOpening) Validate() error {
	no.Title = core.CleanString(no.Title)
	no.Department = core.CleanString(no.Department)
	no.Type = core.CleanString(no.Type)
	no.Location = core.CleanString(no.Location)
	no.Salary = core.CleanString(no.Salary)
	no.Description = core.CleanString(no.Description)
	return core.Validate.Struct(no)
}

// UpdateOpening defines what information may be provided to modify an existing
// Opening; empty fields keep their current values.
type UpdateOpening struct {
	Title            string   `json:"title"`
	Department       string   `json:"department"`
	Type             string   `json:"type"`
	Location         string   `json:"location"`
	Salary           string   `json:"salary"`
	Description      string   `json:"description"`
	Requirements     []string `json:"requirements"`
	Responsibilities []string `json:"responsibilities"`
	IsActive         *bool    `json:"is_active"`
}

func (uo *UpdateOpening) Validate(orig Opening) error {
	if title := core.CleanString(uo.Title); title != "" {
		uo.Title = title
	} else {
		uo.Title = orig.Title
	}
	if dept := core.CleanString(uo.Department); dept != "" {
		uo.Department = dept
	} else {
		uo.Department = orig.Department
	}
	if typ := core.CleanString(uo.Type); typ != "" {
		uo.Type = typ
	} else {
		uo.Type = orig.Type
	}
	if loc := core.CleanString(uo.Location); loc != "" {
		uo.Location = loc
	} else {
		uo.Location = orig.Location
	}
	if sal := core.CleanString(uo.Salary); sal != "" {
		uo.Salary = sal
	} else {
		uo.Salary = orig.Salary
	}
	if desc := core.CleanString(uo.Description); desc != "" {
		uo.Description = desc
	} else {
		uo.Description = orig.Description
	}
	if uo.Requirements == nil {
		uo.Requirements = orig.Requirements
	}
	if uo.Responsibilities == nil {
		uo.Responsibilities = orig.Responsibilities
	}
	return core.Validate.Struct(uo)
}

// Application is a candidate's application against an Opening.
// ResumeURL is empty when the candidate submitted no resume.
type Application struct {
	ID          string    `json:"id"`
	OpeningID   string    `json:"opening_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	CoverLetter string    `json:"cover_letter,omitempty"`
	ResumeKey   string    `json:"-"`
	ResumeURL   string    `json:"resume_url,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at"` // UTC
}

// NewApplication contains the raw careers form input; the resume file, if any,
// travels separately as a core.Upload.
type NewApplication struct {
	OpeningID   string `json:"opening_id" form:"opening_id" validate:"required"`
	Name        string `json:"name" form:"name" validate:"required"`
	Email       string `json:"email" form:"email" validate:"required,email"`
	Phone       string `json:"phone" form:"phone" validate:"required,ghphone"`
	CoverLetter string `json:"cover_letter" form:"cover_letter"`
}

func (na *NewApplication) Validate() error {
	na.OpeningID = core.CleanString(na.OpeningID)
	na.Name = core.CleanString(na.Name)
	na.Email = core.CleanString(na.Email, true /* lower */)
	na.Phone = core.CleanString(na.Phone)
	na.CoverLetter = core.CleanString(na.CoverLetter)
	return core.Validate.Struct(na)
}

// UpdateApplicationStatus sets an application's review status.
type UpdateApplicationStatus struct {
	Status string `json:"status" validate:"required,oneof=pending reviewed rejected"`
}

func (us *UpdateApplicationStatus) Validate() error {
	us.Status = core.CleanString(us.Status, true /* lower */)
	return core.Validate.Struct(us)
}
