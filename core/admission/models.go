package admission

import (
	"strconv"
	"time"

	"github.com/starville/academy/core"
)

// Statuses. Transitions are unconstrained: an administrator may set any
// status at any time.
const (
	StatusPending     = "pending"
	StatusUnderReview = "under_review"
	StatusAccepted    = "accepted"
	StatusRejected    = "rejected"
)

// Genders
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

var (
	AllStatuses = []string{StatusPending, StatusUnderReview, StatusAccepted, StatusRejected}

	childAgeRangeText = "child age must be between 0 and 18"
)

const (
	childAgeMin = 0
	childAgeMax = 18
)

// Admission is an application for a child's enrollment, submitted from the
// public admissions form.
type Admission struct {
	ID               string    `json:"id"`
	ParentName       string    `json:"parent_name"`
	ParentEmail      string    `json:"parent_email"`
	ParentPhone      string    `json:"parent_phone"`
	ChildName        string    `json:"child_name"`
	ChildGender      string    `json:"child_gender"`
	ChildAge         int       `json:"child_age"`
	Level            string    `json:"level"`
	PreviousSchool   string    `json:"previous_school,omitempty"`
	EmergencyContact string    `json:"emergency_contact,omitempty"`
	Message          string    `json:"message,omitempty"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"` // UTC
	UpdatedAt        time.Time `json:"updated_at"` // UTC
}

// NewAdmission contains the raw admissions form input.
// ChildAge arrives as the form's string value and is range-checked on Validate.
type NewAdmission struct {
	ParentName       string `json:"parent_name" validate:"required"`
	ParentEmail      string `json:"parent_email" validate:"required,email"`
	ParentPhone      string `json:"parent_phone" validate:"required,ghphone"`
	ChildName        string `json:"child_name" validate:"required"`
	ChildGender      string `json:"child_gender" validate:"required,oneof=male female"`
	ChildAge         string `json:"child_age" validate:"required"`
	Level            string `json:"level" validate:"required"`
	PreviousSchool   string `json:"previous_school"`
	EmergencyContact string `json:"emergency_contact" validate:"omitempty,ghphone"`
	Message          string `json:"message"`
}

func (na *NewAdmission) Validate() error {
	na.ParentName = core.CleanString(na.ParentName)
	na.ParentEmail = core.CleanString(na.ParentEmail, true /* lower */)
	na.ParentPhone = core.CleanString(na.ParentPhone)
	na.ChildName = core.CleanString(na.ChildName)
	na.ChildGender = core.CleanString(na.ChildGender, true /* lower */)
	na.ChildAge = core.CleanString(na.ChildAge)
	na.Level = core.CleanString(na.Level)
	na.PreviousSchool = core.CleanString(na.PreviousSchool)
	na.EmergencyContact = core.CleanString(na.EmergencyContact)
	na.Message = core.CleanString(na.Message)

	if err := core.Validate.Struct(na); err != nil {
		return err
	}
	if _, err := na.Age(); err != nil {
		return err
	}
	return nil
}

// Age parses and range-checks the submitted child age.
func (na NewAdmission) Age() (int, error) {
	age, err := strconv.Atoi(na.ChildAge)
	if err != nil || age < childAgeMin || age > childAgeMax {
		return 0, core.NewValidationError(nil, core.FieldError{Field: "child_age", Error: childAgeRangeText})
	}
	return age, nil
}

// UpdateStatus sets an application's review status.
type UpdateStatus struct {
	Status string `json:"status" validate:"required,oneof=pending under_review accepted rejected"`
}

func (us *UpdateStatus) Validate() error {
	us.Status = core.CleanString(us.Status, true /* lower */)
	return core.Validate.Struct(us)
}

type QueryFilter struct {
	// Search does a case-insensitive match on one of ParentName, ParentEmail or ChildName.
	Search string `query:"search"`
	Status string `query:"status"`
	Level  string `query:"level"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Status == "" && qf.Level == ""
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Status = core.CleanString(qf.Status, true /* lower */)
	qf.Level = core.CleanString(qf.Level)
}

// Stats summarizes all applications: counts per status and per desired level.
type Stats struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
	ByLevel  map[string]int `json:"by_level"`
}
