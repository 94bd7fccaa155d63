package service

import (
	"errors"

	"volunteerhub/internal/domain"
	"volunteerhub/internal/models"
)

var ErrUnknownRole = errors.New("unknown role")

// OpportunityLister is the catalog surface the dashboards read from.
type OpportunityLister interface {
	ListOpen(limit int) ([]models.Opportunity, error)
	ListByNGOID(ngoID uint) ([]models.Opportunity, error)
}

// DashboardBuilder assembles the read-only dashboard for one role. The
// builder is selected once by role tag instead of branching per widget.
type DashboardBuilder interface {
	Build(userID uint) (map[string]interface{}, error)
}

type DashboardService struct {
	builders map[string]DashboardBuilder
}

func NewDashboardService(opps OpportunityLister, apps ApplicationStore) *DashboardService {
	return &DashboardService{
		builders: map[string]DashboardBuilder{
			domain.RoleVolunteer: &volunteerDashboard{opps: opps, apps: apps},
			domain.RoleNGO:       &ngoDashboard{opps: opps, apps: apps},
		},
	}
}

func (s *DashboardService) Build(role string, userID uint) (map[string]interface{}, error) {
	b, ok := s.builders[role]
	if !ok {
		return nil, ErrUnknownRole
	}
	return b.Build(userID)
}

type volunteerDashboard struct {
	opps OpportunityLister
	apps ApplicationStore
}

func (d *volunteerDashboard) Build(userID uint) (map[string]interface{}, error) {
	apps, err := d.apps.ListByVolunteerID(userID)
	if err != nil {
		return nil, err
	}
	recent, err := d.opps.ListOpen(10)
	if err != nil {
		return nil, err
	}
	stats := map[string]int{"applications": len(apps)}
	for _, a := range apps {
		stats[a.Status]++
	}
	return map[string]interface{}{
		"stats":                stats,
		"applications":         apps,
		"recent_opportunities": recent,
	}, nil
}

type ngoDashboard struct {
	opps OpportunityLister
	apps ApplicationStore
}

func (d *ngoDashboard) Build(userID uint) (map[string]interface{}, error) {
	opps, err := d.opps.ListByNGOID(userID)
	if err != nil {
		return nil, err
	}
	apps, err := d.apps.ListByNGOID(userID)
	if err != nil {
		return nil, err
	}
	open := 0
	for _, o := range opps {
		if o.IsOpen() {
			open++
		}
	}
	stats := map[string]int{
		"open_opportunities": open,
		"applications":       len(apps),
	}
	for _, a := range apps {
		stats[a.Status]++
	}
	return map[string]interface{}{
		"stats":         stats,
		"opportunities": opps,
		"applications":  apps,
	}, nil
}
