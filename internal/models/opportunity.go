package models

import (
	"time"

	"volunteerhub/internal/domain"

	"gorm.io/gorm"
)

type Opportunity struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	NGOID          uint           `gorm:"not null;index" json:"ngo_id"`
	Title          string         `gorm:"size:255;not null" json:"title"`
	Description    string         `gorm:"type:text" json:"description"`
	RequiredSkills StringList     `gorm:"type:text" json:"required_skills"`
	Duration       string         `gorm:"size:100" json:"duration"`
	Location       string         `gorm:"size:255" json:"location"`
	Status         string         `gorm:"size:20;not null;default:'open';index" json:"status"` // open | closed, owner-controlled
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	NGO *User `gorm:"foreignKey:NGOID" json:"ngo,omitempty"`
}

func (o *Opportunity) IsOpen() bool { return o.Status == domain.OpportunityOpen }
