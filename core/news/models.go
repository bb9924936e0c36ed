package news

import (
	"time"

	"github.com/starville/academy/core"
)

// Update categories
const (
	CategoryNews        = "news"
	CategoryEvent       = "event"
	CategoryAchievement = "achievement"
	CategoryNotice      = "notice"
)

// Announcement types
const (
	TypeInfo    = "info"
	TypeWarning = "warning"
	TypeSuccess = "success"
	TypeEvent   = "event"
)

// Update is a news article or school update shown on the public news page.
type Update struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	Author      string    `json:"author"`
	Category    string    `json:"category"`
	Excerpt     string    `json:"excerpt"`
	Content     string    `json:"content"`
	ImageKey    string    `json:"-"`
	ImageURL    string    `json:"image_url,omitempty"`
	IsFeatured  bool      `json:"is_featured"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at"` // UTC
}

// NewUpdate contains information needed to create a news Update.
type NewUpdate struct {
	Title       string    `json:"title" form:"title" validate:"required"`
	Date        time.Time `json:"date" form:"date"`
	Author      string    `json:"author" form:"author" validate:"required"`
	Category    string    `json:"category" form:"category" validate:"required,oneof=news event achievement notice"`
	Excerpt     string    `json:"excerpt" form:"excerpt" validate:"required"`
	Content     string    `json:"content" form:"content" validate:"required"`
	IsFeatured  bool      `json:"is_featured" form:"is_featured"`
	IsPublished bool      `json:"is_published" form:"is_published"`
}

func (nu *NewUpdate) Validate() error {
	nu.Title = core.CleanString(nu.Title)
	nu.Author = core.CleanString(nu.Author)
	nu.Category = core.CleanString(nu.Category, true /* lower */)
	nu.Excerpt = core.CleanString(nu.Excerpt)
	nu.Content = core.CleanString(nu.Content)
	return core.Validate.Struct(nu)
}

// UpdateUpdate defines what information may be provided to modify an existing
// news Update; empty fields keep their current values.
type UpdateUpdate struct {
	Title       string     `json:"title" form:"title"`
	Date        *time.Time `json:"date" form:"date"`
	Author      string     `json:"author" form:"author"`
	Category    string     `json:"category" form:"category" validate:"omitempty,oneof=news event achievement notice"`
	Excerpt     string     `json:"excerpt" form:"excerpt"`
	Content     string     `json:"content" form:"content"`
	IsFeatured  *bool      `json:"is_featured" form:"is_featured"`
	IsPublished *bool      `json:"is_published" form:"is_published"`
}

func (uu *UpdateUpdate) Validate(orig Update) error {
	if title := core.CleanString(uu.Title); title != "" {
		uu.Title = title
	} else {
		uu.Title = orig.Title
	}
	if author := core.CleanString(uu.Author); author != "" {
		uu.Author = author
	} else {
		uu.Author = orig.Author
	}
	uu.Category = core.CleanString(uu.Category, true /* lower */)
	if uu.Category == "" {
		uu.Category = orig.Category
	}
	if excerpt := core.CleanString(uu.Excerpt); excerpt != "" {
		uu.Excerpt = excerpt
	} else {
		uu.Excerpt = orig.Excerpt
	}
	if content := core.CleanString(uu.Content); content != "" {
		uu.Content = content
	} else {
		uu.Content = orig.Content
	}
	return core.Validate.Struct(uu)
}

// Announcement is a short-lived banner shown across the public site.
type Announcement struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

// NewAnnouncement contains information needed to create an Announcement.
type NewAnnouncement struct {
	Title   string `json:"title" validate:"required"`
	Message string `json:"message" validate:"required"`
	Type    string `json:"type" validate:"required,oneof=info warning success event"`
}

func (na *NewAnnouncement) Validate() error {
	na.Title = core.CleanString(na.Title)
	na.Message = core.CleanString(na.Message)
	na.Type = core.CleanString(na.Type, true /* lower */)
	return core.Validate.Struct(na)
}

// UpdateAnnouncement defines what information may be provided to modify an
// existing Announcement; empty fields keep their current values.
type UpdateAnnouncement struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Type     string `json:"type" validate:"omitempty,oneof=info warning success event"`
	IsActive *bool  `json:"is_active"`
}

func (ua *UpdateAnnouncement) Validate(orig Announcement) error {
	if title := core.CleanString(ua.Title); title != "" {
		ua.Title = title
	} else {
		ua.Title = orig.Title
	}
	if msg := core.CleanString(ua.Message); msg != "" {
		ua.Message = msg
	} else {
		ua.Message = orig.Message
	}
	ua.Type = core.CleanString(ua.Type, true /* lower */)
	if ua.Type == "" {
		ua.Type = orig.Type
	}
	return core.Validate.Struct(ua)
}
