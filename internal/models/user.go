package models

import (
	"time"

	"volunteerhub/internal/domain"

	"gorm.io/gorm"
)

type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Email        string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string     `gorm:"size:255" json:"-"`
	GoogleID     *string    `gorm:"uniqueIndex;size:255" json:"-"` // nil for email signups (avoids duplicate '' on unique index)
	Name         string     `gorm:"size:100;not null" json:"name"`
	Role         string     `gorm:"size:20;not null;index" json:"role"` // volunteer | ngo, immutable after creation
	Skills       StringList `gorm:"type:text" json:"skills"`
	Location     string     `gorm:"size:255" json:"location"`
	Bio          string     `gorm:"type:text" json:"bio"`

	// Organization fields, meaningful only when Role == ngo.
	OrganizationName        string `gorm:"size:255" json:"organization_name,omitempty"`
	OrganizationDescription string `gorm:"type:text" json:"organization_description,omitempty"`
	WebsiteURL              string `gorm:"size:512" json:"website_url,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) IsVolunteer() bool { return u.Role == domain.RoleVolunteer }
func (u *User) IsNGO() bool       { return u.Role == domain.RoleNGO }

// DisplayName prefers the organization name for NGO accounts.
func (u *User) DisplayName() string {
	if u.IsNGO() && u.OrganizationName != "" {
		return u.OrganizationName
	}
	return u.Name
}
