package staff

import (
	"time"

	"github.com/starville/academy/core"
)

// Move directions
const (
	MoveUp   = "up"
	MoveDown = "down"
)

// Member is a staff directory entry. DisplayOrder drives the manual ordering
// of the public staff list.
type Member struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Title          string    `json:"title"`
	Education      string    `json:"education,omitempty"`
	Experience     string    `json:"experience,omitempty"`
	Specialization string    `json:"specialization,omitempty"`
	Bio            string    `json:"bio,omitempty"`
	Achievements   []string  `json:"achievements"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	PhotoKey       string    `json:"-"`
	PhotoURL       string    `json:"photo_url,omitempty"`
	IsKeyStaff     bool      `json:"is_key_staff"`
	IsProprietress bool      `json:"is_proprietress"`
	IsActive       bool      `json:"is_active"`
	DisplayOrder   int       `json:"display_order"`
	CreatedAt      time.Time `json:"created_at"` // UTC
	UpdatedAt      time.Time `json:"updated_at"` // UTC
}

// NewMember contains information needed to create a new staff directory entry.
type NewMember struct {
	Name           string   `json:"name" form:"name" validate:"required"`
	Title          string   `json:"title" form:"title" validate:"required"`
	Education      string   `json:"education" form:"education"`
	Experience     string   `json:"experience" form:"experience"`
	Specialization string   `json:"specialization" form:"specialization"`
	Bio            string   `json:"bio" form:"bio"`
	Achievements   []string `json:"achievements" form:"achievements"`
	Email          string   `json:"email" form:"email" validate:"omitempty,email"`
	Phone          string   `json:"phone" form:"phone" validate:"omitempty,ghphone"`
	IsKeyStaff     bool     `json:"is_key_staff" form:"is_key_staff"`
	IsProprietress bool     `json:"is_proprietress" form:"is_proprietress"`
}

func (nm *NewMember) Validate() error {
	nm.Name = core.CleanString(nm.Name)
	nm.Title = core.CleanString(nm.Title)
	nm.Education = core.CleanString(nm.Education)
	nm.Experience = core.CleanString(nm.Experience)
	nm.Specialization = core.CleanString(nm.Specialization)
	nm.Bio = core.CleanString(nm.Bio)
	nm.Email = core.CleanString(nm.Email, true /* lower */)
	nm.Phone = core.CleanString(nm.Phone)
	return core.Validate.Struct(nm)
}

// UpdateMember defines what information may be provided to modify an existing
// staff entry; empty fields keep their current values.
type UpdateMember struct {
	Name           string   `json:"name" form:"name"`
	Title          string   `json:"title" form:"title"`
	Education      string   `json:"education" form:"education"`
	Experience     string   `json:"experience" form:"experience"`
	Specialization string   `json:"specialization" form:"specialization"`
	Bio            string   `json:"bio" form:"bio"`
	Achievements   []string `json:"achievements" form:"achievements"`
	Email          string   `json:"email" form:"email" validate:"omitempty,email"`
	Phone          string   `json:"phone" form:"phone" validate:"omitempty,ghphone"`
	IsKeyStaff     *bool    `json:"is_key_staff" form:"is_key_staff"`
	IsProprietress *bool    `json:"is_proprietress" form:"is_proprietress"`
	IsActive       *bool    `json:"is_active" form:"is_active"`
}

func (um *UpdateMember) Validate(orig Member) error {
	if name := core.CleanString(um.Name); name != "" {
		um.Name = name
	} else {
		um.Name = orig.Name
	}
	if title := core.CleanString(um.Title); title != "" {
		um.Title = title
	} else {
		um.Title = orig.Title
	}
	if edu := core.CleanString(um.Education); edu != "" {
		um.Education = edu
	} else {
		um.Education = orig.Education
	}
	if exp := core.CleanString(um.Experience); exp != "" {
		um.Experience = exp
	} else {
		um.Experience = orig.Experience
	}
	if spec := core.CleanString(um.Specialization); spec != "" {
		um.Specialization = spec
	} else {
		um.Specialization = orig.Specialization
	}
	if bio := core.CleanString(um.Bio); bio != "" {
		um.Bio = bio
	} else {
		um.Bio = orig.Bio
	}
	if email := core.CleanString(um.Email, true /* lower */); email != "" {
		um.Email = email
	} else {
		um.Email = orig.Email
	}
	if phone := core.CleanString(um.Phone); phone != "" {
		um.Phone = phone
	} else {
		um.Phone = orig.Phone
	}
	if um.Achievements == nil {
		um.Achievements = orig.Achievements
	}
	return core.Validate.Struct(um)
}

// MoveMember moves a staff entry one position up or down the display order.
type MoveMember struct {
	Direction string `json:"direction" validate:"required,oneof=up down"`
}

func (mm *MoveMember) Validate() error {
	mm.Direction = core.CleanString(mm.Direction, true /* lower */)
	return core.Validate.Struct(mm)
}
