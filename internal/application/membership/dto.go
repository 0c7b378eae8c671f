package membership

import (
	"time"

	"github.com/google/uuid"

	"github.com/ikada/backend/internal/domain/membership"
)

// RegisterAlumniRequest represents a new alumni registration
type RegisterAlumniRequest struct {
	FullName       string     `json:"full_name" binding:"required,min=1,max=100"`
	Email          string     `json:"email" binding:"required,email,max=150"`
	Phone          string     `json:"phone" binding:"max=20"`
	GraduationYear int        `json:"graduation_year" binding:"required"`
	SyubiyahID     *uuid.UUID `json:"syubiyah_id"`
	Address        string     `json:"address" binding:"max=255"`
}

// UpdateAlumniRequest represents a profile update
type UpdateAlumniRequest struct {
	FullName       string     `json:"full_name" binding:"required,min=1,max=100"`
	Phone          string     `json:"phone" binding:"max=20"`
	GraduationYear int        `json:"graduation_year" binding:"required"`
	SyubiyahID     *uuid.UUID `json:"syubiyah_id"`
	Address        string     `json:"address" binding:"max=255"`
}

// RejectAlumniRequest carries the mandatory rejection reason
type RejectAlumniRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=255"`
}

// AlumniListFilter represents filter options for the alumni directory
type AlumniListFilter struct {
	Search         string     `form:"search"`
	Status         string     `form:"status" binding:"omitempty,oneof=pending verified rejected"`
	SyubiyahID     *uuid.UUID `form:"syubiyahId"`
	GraduationYear *int       `form:"graduationYear"`
	Page           int        `form:"page" binding:"omitempty,min=1"`
	PageSize       int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// AlumniResponse represents an alumni in API responses
type AlumniResponse struct {
	ID              uuid.UUID  `json:"id"`
	FullName        string     `json:"full_name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	GraduationYear  int        `json:"graduation_year"`
	SyubiyahID      *uuid.UUID `json:"syubiyah_id"`
	Address         string     `json:"address"`
	PhotoURL        string     `json:"photo_url"`
	Status          string     `json:"status"`
	VerifiedBy      *uuid.UUID `json:"verified_by,omitempty"`
	VerifiedAt      *time.Time `json:"verified_at,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ToAlumniResponse converts a domain Alumni to AlumniResponse
func ToAlumniResponse(a *membership.Alumni) *AlumniResponse {
	return &AlumniResponse{
		ID:              a.ID,
		FullName:        a.FullName,
		Email:           a.Email,
		Phone:           a.Phone,
		GraduationYear:  a.GraduationYear,
		SyubiyahID:      a.SyubiyahID,
		Address:         a.Address,
		PhotoURL:        a.PhotoURL,
		Status:          string(a.Status),
		VerifiedBy:      a.VerifiedBy,
		VerifiedAt:      a.VerifiedAt,
		RejectionReason: a.RejectionReason,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// SyubiyahRequest represents create/update input for a regional chapter
type SyubiyahRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Region   string `json:"region" binding:"max=100"`
	City     string `json:"city" binding:"max=100"`
	Address  string `json:"address" binding:"max=255"`
	IsActive *bool  `json:"is_active"`
}

// SyubiyahResponse represents a regional chapter in API responses
type SyubiyahResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Region      string    `json:"region"`
	City        string    `json:"city"`
	Address     string    `json:"address"`
	IsActive    bool      `json:"is_active"`
	AlumniCount *int64    `json:"alumni_count,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToSyubiyahResponse converts a domain Syubiyah to SyubiyahResponse
func ToSyubiyahResponse(s *membership.Syubiyah) *SyubiyahResponse {
	return &SyubiyahResponse{
		ID:        s.ID,
		Name:      s.Name,
		Region:    s.Region,
		City:      s.City,
		Address:   s.Address,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// MustahiqRequest represents create/update input for an aid recipient
type MustahiqRequest struct {
	FullName   string     `json:"full_name" binding:"required,min=1,max=100"`
	Category   string     `json:"category" binding:"required,oneof=fakir miskin yatim gharimin other"`
	SyubiyahID *uuid.UUID `json:"syubiyah_id"`
	Address    string     `json:"address" binding:"max=255"`
	Notes      string     `json:"notes" binding:"max=2000"`
	IsActive   *bool      `json:"is_active"`
}

// MustahiqListFilter represents filter options for the mustahiq list
type MustahiqListFilter struct {
	Category   string     `form:"category" binding:"omitempty,oneof=fakir miskin yatim gharimin other"`
	SyubiyahID *uuid.UUID `form:"syubiyahId"`
	IsActive   *bool      `form:"isActive"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// MustahiqResponse represents an aid recipient in API responses
type MustahiqResponse struct {
	ID         uuid.UUID  `json:"id"`
	FullName   string     `json:"full_name"`
	Category   string     `json:"category"`
	SyubiyahID *uuid.UUID `json:"syubiyah_id"`
	Address    string     `json:"address"`
	Notes      string     `json:"notes"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ToMustahiqResponse converts a domain Mustahiq to MustahiqResponse
func ToMustahiqResponse(m *membership.Mustahiq) *MustahiqResponse {
	return &MustahiqResponse{
		ID:         m.ID,
		FullName:   m.FullName,
		Category:   string(m.Category),
		SyubiyahID: m.SyubiyahID,
		Address:    m.Address,
		Notes:      m.Notes,
		IsActive:   m.IsActive,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
