package event

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ikada/backend/internal/domain/event"
)

// FormFieldRequest defines one dynamic form field. The field key is
// derived from the label server-side.
type FormFieldRequest struct {
	Label    string   `json:"label" binding:"required,max=100"`
	Type     string   `json:"type" binding:"required,oneof=text number select checkbox date"`
	Options  []string `json:"options"`
	Required bool     `json:"required"`
}

// CreateEventRequest represents the request to create an event
type CreateEventRequest struct {
	Title       string             `json:"title" binding:"required,max=200"`
	Description string             `json:"description"`
	Location    string             `json:"location" binding:"max=255"`
	StartAt     time.Time          `json:"start_at" binding:"required"`
	EndAt       time.Time          `json:"end_at" binding:"required"`
	RegOpenAt   time.Time          `json:"reg_open_at" binding:"required"`
	RegCloseAt  time.Time          `json:"reg_close_at" binding:"required"`
	Quota       int                `json:"quota" binding:"min=0"`
	Fee         decimal.Decimal    `json:"fee"`
	BannerURL   string             `json:"banner_url" binding:"omitempty,url"`
	FormFields  []FormFieldRequest `json:"form_fields"`
}

// UpdateEventRequest represents the request to update an event.
// Form fields are replaced wholesale.
type UpdateEventRequest = CreateEventRequest

// EventListFilter represents query filters for listing events
type EventListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=draft open closed"`
	Upcoming bool   `form:"upcoming"`
}

// FormFieldResponse represents a form field in API responses
type FormFieldResponse struct {
	Label    string   `json:"label"`
	Key      string   `json:"key"`
	Type     string   `json:"type"`
	Options  []string `json:"options,omitempty"`
	Required bool     `json:"required"`
}

// EventResponse represents an event in API responses
type EventResponse struct {
	ID              uuid.UUID           `json:"id"`
	Title           string              `json:"title"`
	Slug            string              `json:"slug"`
	Description     string              `json:"description,omitempty"`
	Location        string              `json:"location,omitempty"`
	BannerURL       string              `json:"banner_url,omitempty"`
	StartAt         time.Time           `json:"start_at"`
	EndAt           time.Time           `json:"end_at"`
	RegOpenAt       time.Time           `json:"reg_open_at"`
	RegCloseAt      time.Time           `json:"reg_close_at"`
	Quota           int                 `json:"quota"`
	Fee             decimal.Decimal     `json:"fee"`
	Status          string              `json:"status"`
	FormFields      []FormFieldResponse `json:"form_fields"`
	RegisteredCount *int64              `json:"registered_count,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// ToEventResponse converts an event aggregate to a response DTO
func ToEventResponse(evt *event.Event) EventResponse {
	fields := make([]FormFieldResponse, len(evt.FormFields))
	for i := range evt.FormFields {
		f := &evt.FormFields[i]
		fields[i] = FormFieldResponse{
			Label:    f.Label,
			Key:      f.Key,
			Type:     string(f.Type),
			Options:  f.Options(),
			Required: f.Required,
		}
	}

	return EventResponse{
		ID:          evt.ID,
		Title:       evt.Title,
		Slug:        evt.Slug,
		Description: evt.Description,
		Location:    evt.Location,
		BannerURL:   evt.BannerURL,
		StartAt:     evt.StartAt,
		EndAt:       evt.EndAt,
		RegOpenAt:   evt.RegOpenAt,
		RegCloseAt:  evt.RegCloseAt,
		Quota:       evt.Quota,
		Fee:         evt.Fee,
		Status:      string(evt.Status),
		FormFields:  fields,
		CreatedAt:   evt.CreatedAt,
		UpdatedAt:   evt.UpdatedAt,
	}
}

// RegisterRequest represents the request to register for an event.
// AlumniID is set for logged-in alumni; public registrants supply
// name and email directly.
type RegisterRequest struct {
	AlumniID string                 `json:"alumni_id" binding:"omitempty,uuid"`
	Name     string                 `json:"name" binding:"required,max=100"`
	Email    string                 `json:"email" binding:"required,email"`
	Answers  map[string]interface{} `json:"answers"`
}

// RegistrationListFilter represents query filters for listing registrations
type RegistrationListFilter struct {
	Status string `form:"status" binding:"omitempty,oneof=registered cancelled attended"`
}

// RegistrationResponse represents a registration in API responses
type RegistrationResponse struct {
	ID        uuid.UUID              `json:"id"`
	EventID   uuid.UUID              `json:"event_id"`
	AlumniID  *uuid.UUID             `json:"alumni_id,omitempty"`
	Name      string                 `json:"name"`
	Email     string                 `json:"email"`
	Answers   map[string]interface{} `json:"answers"`
	Status    string                 `json:"status"`
	CreatedAt time.Time              `json:"created_at"`
}

// ToRegistrationResponse converts a registration to a response DTO
func ToRegistrationResponse(reg *event.Registration) RegistrationResponse {
	return RegistrationResponse{
		ID:        reg.ID,
		EventID:   reg.EventID,
		AlumniID:  reg.AlumniID,
		Name:      reg.Name,
		Email:     reg.Email,
		Answers:   reg.Answers(),
		Status:    string(reg.Status),
		CreatedAt: reg.CreatedAt,
	}
}
