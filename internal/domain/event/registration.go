package event

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ikada/backend/internal/domain/shared"
)

// RegistrationStatus represents the state of an event registration
type RegistrationStatus string

const (
	RegistrationStatusRegistered RegistrationStatus = "registered"
	RegistrationStatusCancelled  RegistrationStatus = "cancelled"
	RegistrationStatusAttended   RegistrationStatus = "attended"
)

// Registration is a person's sign-up for an event. AnswersJSON holds the
// dynamic form answers keyed by field key.
type Registration struct {
	shared.BaseAggregateRoot
	EventID     uuid.UUID          `gorm:"type:uuid;not null;index"`
	AlumniID    *uuid.UUID         `gorm:"type:uuid;index"`
	Name        string             `gorm:"type:varchar(100);not null"`
	Email       string             `gorm:"type:varchar(150);not null"`
	AnswersJSON string             `gorm:"column:answers;type:text"`
	Status      RegistrationStatus `gorm:"type:varchar(20);not null;default:'registered'"`
}

// TableName returns the table name for GORM
func (Registration) TableName() string {
	return "event_registrations"
}

// NewRegistration validates form answers against the event definition and
// creates the registration. Quota and window checks belong to the service
// since they need repository access.
func NewRegistration(evt *Event, alumniID *uuid.UUID, name, email string, answers map[string]interface{}) (*Registration, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Registrant name cannot be empty")
	}
	if strings.TrimSpace(email) == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Registrant email cannot be empty")
	}

	for i := range evt.FormFields {
		field := &evt.FormFields[i]
		if err := field.ValidateAnswer(answers[field.Key]); err != nil {
			return nil, err
		}
	}
	// Reject answers for keys the form does not define
	for key := range answers {
		known := false
		for i := range evt.FormFields {
			if evt.FormFields[i].Key == key {
				known = true
				break
			}
		}
		if !known {
			return nil, shared.NewDomainError("UNKNOWN_FIELD", "Answer for unknown field '"+key+"'")
		}
	}

	raw, err := json.Marshal(answers)
	if err != nil {
		return nil, err
	}

	return &Registration{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		EventID:           evt.ID,
		AlumniID:          alumniID,
		Name:              name,
		Email:             strings.ToLower(email),
		AnswersJSON:       string(raw),
		Status:            RegistrationStatusRegistered,
	}, nil
}

// Answers decodes the stored form answers
func (r *Registration) Answers() map[string]interface{} {
	if r.AnswersJSON == "" {
		return map[string]interface{}{}
	}
	var answers map[string]interface{}
	if err := json.Unmarshal([]byte(r.AnswersJSON), &answers); err != nil {
		return map[string]interface{}{}
	}
	return answers
}

// Cancel cancels the registration
func (r *Registration) Cancel() error {
	if r.Status != RegistrationStatusRegistered {
		return shared.NewDomainError("INVALID_STATE", "Only active registrations can be cancelled")
	}
	r.Status = RegistrationStatusCancelled
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// MarkAttended records attendance
func (r *Registration) MarkAttended() error {
	if r.Status != RegistrationStatusRegistered {
		return shared.NewDomainError("INVALID_STATE", "Only active registrations can be marked attended")
	}
	r.Status = RegistrationStatusAttended
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}
