package event

import (
	"strings"
	"time"

	"github.com/ikada/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// EventStatus represents the lifecycle state of an event
type EventStatus string

const (
	EventStatusDraft  EventStatus = "draft"
	EventStatusOpen   EventStatus = "open"
	EventStatusClosed EventStatus = "closed"
)

// Event is an association activity people can register for.
// Its registration form is defined per event through FormFields.
type Event struct {
	shared.BaseAggregateRoot
	Title       string      `gorm:"type:varchar(200);not null"`
	Slug        string      `gorm:"type:varchar(220);not null;uniqueIndex"`
	Description string      `gorm:"type:text"`
	Location    string      `gorm:"type:varchar(255)"`
	BannerURL   string      `gorm:"type:varchar(500)"`
	StartAt     time.Time   `gorm:"not null"`
	EndAt       time.Time   `gorm:"not null"`
	RegOpenAt   time.Time   `gorm:"not null"`
	RegCloseAt  time.Time   `gorm:"not null"`
	Quota       int         `gorm:"not null;default:0"` // 0 means unlimited
	Fee         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Status      EventStatus `gorm:"type:varchar(20);not null;default:'draft'"`
	FormFields  []FormField `gorm:"-"` // loaded from event_form_fields by the repository
}

// TableName returns the table name for GORM
func (Event) TableName() string {
	return "events"
}

// NewEvent creates a new draft event
func NewEvent(title, description, location string, startAt, endAt, regOpenAt, regCloseAt time.Time, quota int, fee decimal.Decimal) (*Event, error) {
	if strings.TrimSpace(title) == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Event title cannot be empty")
	}
	if !endAt.After(startAt) {
		return nil, shared.NewDomainError("INVALID_SCHEDULE", "Event must end after it starts")
	}
	if !regCloseAt.After(regOpenAt) {
		return nil, shared.NewDomainError("INVALID_SCHEDULE", "Registration window must close after it opens")
	}
	if quota < 0 {
		return nil, shared.NewDomainError("INVALID_QUOTA", "Event quota cannot be negative")
	}
	if fee.IsNegative() {
		return nil, shared.NewDomainError("INVALID_FEE", "Event fee cannot be negative")
	}

	return &Event{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             title,
		Slug:              shared.Slugify(title),
		Description:       description,
		Location:          location,
		StartAt:           startAt,
		EndAt:             endAt,
		RegOpenAt:         regOpenAt,
		RegCloseAt:        regCloseAt,
		Quota:             quota,
		Fee:               fee,
		Status:            EventStatusDraft,
		FormFields:        make([]FormField, 0),
	}, nil
}

// Update updates the event's details
func (e *Event) Update(title, description, location string, startAt, endAt, regOpenAt, regCloseAt time.Time, quota int, fee decimal.Decimal) error {
	if strings.TrimSpace(title) == "" {
		return shared.NewDomainError("INVALID_TITLE", "Event title cannot be empty")
	}
	if !endAt.After(startAt) {
		return shared.NewDomainError("INVALID_SCHEDULE", "Event must end after it starts")
	}
	if !regCloseAt.After(regOpenAt) {
		return shared.NewDomainError("INVALID_SCHEDULE", "Registration window must close after it opens")
	}
	if quota < 0 {
		return shared.NewDomainError("INVALID_QUOTA", "Event quota cannot be negative")
	}
	if fee.IsNegative() {
		return shared.NewDomainError("INVALID_FEE", "Event fee cannot be negative")
	}

	e.Title = title
	e.Slug = shared.Slugify(title)
	e.Description = description
	e.Location = location
	e.StartAt = startAt
	e.EndAt = endAt
	e.RegOpenAt = regOpenAt
	e.RegCloseAt = regCloseAt
	e.Quota = quota
	e.Fee = fee
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
	return nil
}

// SetBanner updates the banner image URL
func (e *Event) SetBanner(url string) {
	e.BannerURL = url
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
}

// SetFormFields replaces the event's registration form definition.
// Field keys are derived from labels and must be unique within the event.
func (e *Event) SetFormFields(fields []FormField) error {
	seen := make(map[string]struct{}, len(fields))
	for i := range fields {
		fields[i].EventID = e.ID
		fields[i].SortOrder = i
		if err := fields[i].validate(); err != nil {
			return err
		}
		if _, dup := seen[fields[i].Key]; dup {
			return shared.NewDomainError("DUPLICATE_FIELD",
				"Form field key '"+fields[i].Key+"' is defined more than once")
		}
		seen[fields[i].Key] = struct{}{}
	}

	e.FormFields = fields
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
	return nil
}

// Open opens the event for registration
func (e *Event) Open() error {
	if e.Status == EventStatusOpen {
		return shared.NewDomainError("ALREADY_OPEN", "Event is already open")
	}
	e.Status = EventStatusOpen
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
	return nil
}

// Close closes the event for registration
func (e *Event) Close() error {
	if e.Status == EventStatusClosed {
		return shared.NewDomainError("ALREADY_CLOSED", "Event is already closed")
	}
	e.Status = EventStatusClosed
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
	return nil
}

// RegistrationOpenAt reports whether registration is possible at the
// given instant, ignoring quota.
func (e *Event) RegistrationOpenAt(now time.Time) bool {
	if e.Status != EventStatusOpen {
		return false
	}
	return !now.Before(e.RegOpenAt) && now.Before(e.RegCloseAt)
}

// IsFree returns true when the event has no fee
func (e *Event) IsFree() bool {
	return e.Fee.IsZero()
}
