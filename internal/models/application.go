package models

import (
	"time"

	"volunteerhub/internal/domain"

	"gorm.io/gorm"
)

// Application is a volunteer's request to fill an opportunity. The composite
// unique index enforces one application per (opportunity, volunteer) pair.
type Application struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	OpportunityID uint           `gorm:"not null;uniqueIndex:idx_applications_opportunity_volunteer" json:"opportunity_id"`
	VolunteerID   uint           `gorm:"not null;uniqueIndex:idx_applications_opportunity_volunteer;index" json:"volunteer_id"`
	Status        string         `gorm:"size:20;not null;default:'pending';index" json:"status"` // pending | accepted | rejected
	CoverLetter   string         `gorm:"type:text" json:"cover_letter"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Opportunity *Opportunity `gorm:"foreignKey:OpportunityID" json:"opportunity,omitempty"`
	Volunteer   *User        `gorm:"foreignKey:VolunteerID" json:"volunteer,omitempty"`
}

func (a *Application) IsPending() bool { return a.Status == domain.ApplicationPending }
