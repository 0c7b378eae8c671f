package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ikada/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// UserStatus represents the status of an admin user
type UserStatus string

const (
	UserStatusActive      UserStatus = "active"
	UserStatusDeactivated UserStatus = "deactivated"
)

// Password cost for bcrypt
const bcryptCost = 12

var usernamePattern = regexp.MustCompile(`^[a-z0-9._-]{3,50}$`)

// User is an administrative user of the portal backoffice.
// Regular alumni do not log in here; they are membership.Alumni records.
type User struct {
	shared.BaseAggregateRoot
	Username     string      `gorm:"type:varchar(50);not null;uniqueIndex"`
	Email        string      `gorm:"type:varchar(150);not null;uniqueIndex"`
	PasswordHash string      `gorm:"type:varchar(100);not null"`
	FullName     string      `gorm:"type:varchar(100)"`
	Status       UserStatus  `gorm:"type:varchar(20);not null;default:'active'"`
	RoleIDs      []uuid.UUID `gorm:"-"` // loaded from user_roles by the repository
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// UserRole is the join row between users and roles
type UserRole struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoleID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (UserRole) TableName() string {
	return "user_roles"
}

// NewUser creates a new active admin user with a hashed password
func NewUser(username, email, password, fullName string) (*User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if !usernamePattern.MatchString(username) {
		return nil, shared.NewDomainError("INVALID_USERNAME",
			"Username must be 3-50 characters of lowercase letters, digits, dot, underscore or hyphen")
	}
	if strings.TrimSpace(email) == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          username,
		Email:             strings.ToLower(email),
		FullName:          fullName,
		Status:            UserStatusActive,
		RoleIDs:           make([]uuid.UUID, 0),
	}

	if err := user.SetPassword(password); err != nil {
		return nil, err
	}

	return user, nil
}

// SetPassword hashes and stores a new password
func (u *User) SetPassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}

	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// UpdateProfile updates the user's profile fields
func (u *User) UpdateProfile(email, fullName string) error {
	if strings.TrimSpace(email) == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}

	u.Email = strings.ToLower(email)
	u.FullName = fullName
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// AssignRole adds a role to the user if not already assigned
func (u *User) AssignRole(roleID uuid.UUID) {
	for _, id := range u.RoleIDs {
		if id == roleID {
			return
		}
	}
	u.RoleIDs = append(u.RoleIDs, roleID)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// RevokeRole removes a role from the user
func (u *User) RevokeRole(roleID uuid.UUID) {
	kept := u.RoleIDs[:0]
	for _, id := range u.RoleIDs {
		if id != roleID {
			kept = append(kept, id)
		}
	}
	u.RoleIDs = kept
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// Activate re-enables a deactivated user
func (u *User) Activate() error {
	if u.Status == UserStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "User is already active")
	}
	u.Status = UserStatusActive
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// Deactivate disables the user's access
func (u *User) Deactivate() error {
	if u.Status == UserStatusDeactivated {
		return shared.NewDomainError("ALREADY_DEACTIVATED", "User is already deactivated")
	}
	u.Status = UserStatusDeactivated
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// RecordLogin stores the last successful login time
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
}

// IsActive returns true when the user may log in
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
