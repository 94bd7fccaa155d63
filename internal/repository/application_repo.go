package repository

import (
	"volunteerhub/internal/models"

	"gorm.io/gorm"
)

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(a *models.Application) error {
	return r.db.Create(a).Error
}

func (r *ApplicationRepository) GetByID(id uint) (*models.Application, error) {
	var a models.Application
	err := r.db.Preload("Opportunity").Preload("Volunteer").First(&a, id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ApplicationRepository) ListByVolunteerID(volunteerID uint) ([]models.Application, error) {
	var list []models.Application
	err := r.db.Where("volunteer_id = ?", volunteerID).
		Preload("Opportunity").Preload("Opportunity.NGO").
		Order("created_at DESC").Find(&list).Error
	return list, err
}

// ListByNGOID returns applications whose related opportunity belongs to the
// NGO. The inner join excludes applications with no surviving opportunity.
func (r *ApplicationRepository) ListByNGOID(ngoID uint) ([]models.Application, error) {
	var list []models.Application
	err := r.db.
		Joins("INNER JOIN opportunities ON opportunities.id = applications.opportunity_id AND opportunities.deleted_at IS NULL").
		Where("opportunities.ngo_id = ?", ngoID).
		Preload("Opportunity").Preload("Volunteer").
		Order("applications.created_at DESC").Find(&list).Error
	return list, err
}

// SetStatus updates the status column; gorm touches updated_at.
func (r *ApplicationRepository) SetStatus(id uint, status string) error {
	return r.db.Model(&models.Application{}).Where("id = ?", id).Update("status", status).Error
}
