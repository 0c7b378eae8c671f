package event

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ikada/backend/internal/domain/shared"
)

// FieldType enumerates the supported dynamic form field types
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeNumber   FieldType = "number"
	FieldTypeSelect   FieldType = "select"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeDate     FieldType = "date"
)

// FormField is one entry of an event's dynamic registration form.
// Options is only meaningful for select fields and is persisted as JSON.
type FormField struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	EventID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Label     string    `gorm:"type:varchar(100);not null"`
	Key       string    `gorm:"type:varchar(120);not null"`
	Type      FieldType `gorm:"type:varchar(20);not null"`
	OptionsJSON string  `gorm:"column:options;type:text"`
	Required  bool      `gorm:"not null;default:false"`
	SortOrder int       `gorm:"not null;default:0"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (FormField) TableName() string {
	return "event_form_fields"
}

// NewFormField creates a form field; the key is derived from the label
func NewFormField(label string, fieldType FieldType, options []string, required bool) (FormField, error) {
	field := FormField{
		ID:       uuid.New(),
		Label:    strings.TrimSpace(label),
		Key:      shared.Slugify(label),
		Type:     fieldType,
		Required: required,
	}
	if len(options) > 0 {
		raw, err := json.Marshal(options)
		if err != nil {
			return FormField{}, err
		}
		field.OptionsJSON = string(raw)
	}

	if err := field.validate(); err != nil {
		return FormField{}, err
	}
	return field, nil
}

// Options decodes the select options
func (f *FormField) Options() []string {
	if f.OptionsJSON == "" {
		return nil
	}
	var opts []string
	if err := json.Unmarshal([]byte(f.OptionsJSON), &opts); err != nil {
		return nil
	}
	return opts
}

func (f *FormField) validate() error {
	if f.Label == "" || f.Key == "" {
		return shared.NewDomainError("INVALID_FIELD", "Form field label cannot be empty")
	}
	switch f.Type {
	case FieldTypeText, FieldTypeNumber, FieldTypeCheckbox, FieldTypeDate:
	case FieldTypeSelect:
		if len(f.Options()) == 0 {
			return shared.NewDomainError("INVALID_FIELD",
				fmt.Sprintf("Select field '%s' requires at least one option", f.Label))
		}
	default:
		return shared.NewDomainError("INVALID_FIELD",
			fmt.Sprintf("Unknown form field type '%s'", f.Type))
	}
	return nil
}

// ValidateAnswer checks a submitted value against the field definition.
// A nil value is only acceptable for optional fields.
func (f *FormField) ValidateAnswer(value interface{}) error {
	if value == nil || value == "" {
		if f.Required {
			return shared.NewDomainError("MISSING_ANSWER",
				fmt.Sprintf("Field '%s' is required", f.Label))
		}
		return nil
	}

	switch f.Type {
	case FieldTypeText:
		if _, ok := value.(string); !ok {
			return badAnswer(f, "text")
		}
	case FieldTypeNumber:
		// JSON numbers decode as float64
		switch value.(type) {
		case float64, int, int64:
		default:
			return badAnswer(f, "number")
		}
	case FieldTypeCheckbox:
		if _, ok := value.(bool); !ok {
			return badAnswer(f, "boolean")
		}
	case FieldTypeDate:
		s, ok := value.(string)
		if !ok {
			return badAnswer(f, "date")
		}
		if _, err := time.Parse("2006-01-02", s); err != nil {
			return shared.NewDomainError("INVALID_ANSWER",
				fmt.Sprintf("Field '%s' must be a date in YYYY-MM-DD form", f.Label))
		}
	case FieldTypeSelect:
		s, ok := value.(string)
		if !ok {
			return badAnswer(f, "option")
		}
		for _, opt := range f.Options() {
			if opt == s {
				return nil
			}
		}
		return shared.NewDomainError("INVALID_ANSWER",
			fmt.Sprintf("Field '%s' must be one of its options", f.Label))
	}

	return nil
}

func badAnswer(f *FormField, want string) *shared.DomainError {
	return shared.NewDomainError("INVALID_ANSWER",
		fmt.Sprintf("Field '%s' expects a %s value", f.Label, want))
}
