package membership

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ikada/backend/internal/domain/shared"
)

// VerificationStatus represents the alumni verification workflow state
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

// Alumni is a registered member of the association.
// New registrations start as pending and must be verified by an admin
// before the member can own a store or register for member-only events.
type Alumni struct {
	shared.BaseAggregateRoot
	FullName        string             `gorm:"type:varchar(100);not null"`
	Email           string             `gorm:"type:varchar(150);not null;uniqueIndex"`
	Phone           string             `gorm:"type:varchar(20)"`
	GraduationYear  int                `gorm:"not null"`
	SyubiyahID      *uuid.UUID         `gorm:"type:uuid;index"`
	Address         string             `gorm:"type:varchar(255)"`
	PhotoURL        string             `gorm:"type:varchar(500)"`
	Status          VerificationStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	VerifiedBy      *uuid.UUID         `gorm:"type:uuid"`
	VerifiedAt      *time.Time
	RejectionReason string `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (Alumni) TableName() string {
	return "alumni"
}

// NewAlumni registers a new alumni in pending state
func NewAlumni(fullName, email, phone string, graduationYear int, syubiyahID *uuid.UUID, address string) (*Alumni, error) {
	if strings.TrimSpace(fullName) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Full name cannot be empty")
	}
	if strings.TrimSpace(email) == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if graduationYear < 1950 || graduationYear > time.Now().Year()+1 {
		return nil, shared.NewDomainError("INVALID_YEAR", "Graduation year is out of range")
	}

	alumni := &Alumni{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FullName:          fullName,
		Email:             strings.ToLower(email),
		Phone:             phone,
		GraduationYear:    graduationYear,
		SyubiyahID:        syubiyahID,
		Address:           address,
		Status:            VerificationPending,
	}

	alumni.AddDomainEvent(NewAlumniRegisteredEvent(alumni))

	return alumni, nil
}

// UpdateProfile updates the alumni's personal data
func (a *Alumni) UpdateProfile(fullName, phone string, graduationYear int, syubiyahID *uuid.UUID, address string) error {
	if strings.TrimSpace(fullName) == "" {
		return shared.NewDomainError("INVALID_NAME", "Full name cannot be empty")
	}
	if graduationYear < 1950 || graduationYear > time.Now().Year()+1 {
		return shared.NewDomainError("INVALID_YEAR", "Graduation year is out of range")
	}

	a.FullName = fullName
	a.Phone = phone
	a.GraduationYear = graduationYear
	a.SyubiyahID = syubiyahID
	a.Address = address
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// SetPhoto updates the profile photo URL
func (a *Alumni) SetPhoto(url string) {
	a.PhotoURL = url
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

// Verify marks the alumni as verified by the given admin user
func (a *Alumni) Verify(verifierID uuid.UUID) error {
	if a.Status == VerificationVerified {
		return shared.NewDomainError("ALREADY_VERIFIED", "Alumni is already verified")
	}

	now := time.Now()
	a.Status = VerificationVerified
	a.VerifiedBy = &verifierID
	a.VerifiedAt = &now
	a.RejectionReason = ""
	a.UpdatedAt = now
	a.IncrementVersion()

	a.AddDomainEvent(NewAlumniVerifiedEvent(a))

	return nil
}

// Reject rejects the registration with a reason
func (a *Alumni) Reject(verifierID uuid.UUID, reason string) error {
	if a.Status == VerificationVerified {
		return shared.NewDomainError("ALREADY_VERIFIED", "Verified alumni cannot be rejected")
	}
	if strings.TrimSpace(reason) == "" {
		return shared.NewDomainError("INVALID_REASON", "Rejection reason is required")
	}

	now := time.Now()
	a.Status = VerificationRejected
	a.VerifiedBy = &verifierID
	a.VerifiedAt = &now
	a.RejectionReason = reason
	a.UpdatedAt = now
	a.IncrementVersion()

	return nil
}

// IsVerified returns true when the alumni passed verification
func (a *Alumni) IsVerified() bool {
	return a.Status == VerificationVerified
}
