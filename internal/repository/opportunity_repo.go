package repository

import (
	"volunteerhub/internal/domain"
	"volunteerhub/internal/models"

	"gorm.io/gorm"
)

type OpportunityRepository struct {
	db *gorm.DB
}

func NewOpportunityRepository(db *gorm.DB) *OpportunityRepository {
	return &OpportunityRepository{db: db}
}

func (r *OpportunityRepository) Create(o *models.Opportunity) error {
	return r.db.Create(o).Error
}

func (r *OpportunityRepository) GetByID(id uint) (*models.Opportunity, error) {
	var o models.Opportunity
	err := r.db.Preload("NGO").First(&o, id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OpportunityRepository) Update(o *models.Opportunity) error {
	return r.db.Save(o).Error
}

// ListOpen returns open postings newest-first; limit <= 0 means no limit.
func (r *OpportunityRepository) ListOpen(limit int) ([]models.Opportunity, error) {
	var list []models.Opportunity
	q := r.db.Where("status = ?", domain.OpportunityOpen).Preload("NGO").Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *OpportunityRepository) ListByNGOID(ngoID uint) ([]models.Opportunity, error) {
	var list []models.Opportunity
	err := r.db.Where("ngo_id = ?", ngoID).Order("created_at DESC").Find(&list).Error
	return list, err
}
