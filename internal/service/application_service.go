package service

import (
	"errors"

	"volunteerhub/internal/domain"
	"volunteerhub/internal/models"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	ErrDuplicateApplication = errors.New("you have already applied to this opportunity")
	ErrInvalidTransition    = errors.New("application has already been decided")
	ErrNotOwner             = errors.New("only the opportunity owner can do this")
	ErrOpportunityNotFound  = errors.New("opportunity not found")
	ErrApplicationNotFound  = errors.New("application not found")
)

// ApplicationStore is the persistence surface the lifecycle needs.
type ApplicationStore interface {
	Create(*models.Application) error
	GetByID(uint) (*models.Application, error)
	ListByVolunteerID(uint) ([]models.Application, error)
	ListByNGOID(uint) ([]models.Application, error)
	SetStatus(id uint, status string) error
}

// OpportunityGetter resolves the posting an application targets.
type OpportunityGetter interface {
	GetByID(uint) (*models.Opportunity, error)
}

// ApplicationNotifier receives lifecycle events for the notification feed.
type ApplicationNotifier interface {
	ApplicationReceived(ngoUserID uint, app *models.Application, volunteerName, opportunityTitle string)
	ApplicationDecided(volunteerID uint, app *models.Application, opportunityTitle string)
}

// ApplicationService owns the application state machine:
// pending -> accepted | rejected, both terminal, decided only by the NGO
// that owns the opportunity.
type ApplicationService struct {
	apps     ApplicationStore
	opps     OpportunityGetter
	notifier ApplicationNotifier
}

func NewApplicationService(apps ApplicationStore, opps OpportunityGetter, notifier ApplicationNotifier) *ApplicationService {
	return &ApplicationService{apps: apps, opps: opps, notifier: notifier}
}

// Submit creates a pending application. A second application by the same
// volunteer for the same opportunity hits the composite unique index and is
// surfaced as ErrDuplicateApplication; no row is created.
func (s *ApplicationService) Submit(opportunityID, volunteerID uint, volunteerName, coverLetter string) (*models.Application, error) {
	opp, err := s.opps.GetByID(opportunityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOpportunityNotFound
		}
		return nil, err
	}
	a := &models.Application{
		OpportunityID: opportunityID,
		VolunteerID:   volunteerID,
		Status:        domain.ApplicationPending,
		CoverLetter:   coverLetter,
	}
	if err := s.apps.Create(a); err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateApplication
		}
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.ApplicationReceived(opp.NGOID, a, volunteerName, opp.Title)
	}
	return a, nil
}

// ListFor returns the applications visible to the caller, newest-first:
// a volunteer sees its own, an NGO sees those targeting its opportunities.
func (s *ApplicationService) ListFor(role string, userID uint) ([]models.Application, error) {
	if role == domain.RoleNGO {
		return s.apps.ListByNGOID(userID)
	}
	return s.apps.ListByVolunteerID(userID)
}

// Decide moves a pending application to accepted or rejected. Both outcomes
// are terminal; any other transition is rejected.
func (s *ApplicationService) Decide(applicationID, ngoID uint, status string) (*models.Application, error) {
	if !domain.ValidDecision(status) {
		return nil, ErrInvalidTransition
	}
	a, err := s.apps.GetByID(applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	// An application whose opportunity no longer resolves has no verifiable
	// owner, so nobody may decide it.
	if a.Opportunity == nil || a.Opportunity.NGOID != ngoID {
		return nil, ErrNotOwner
	}
	if !a.IsPending() {
		return nil, ErrInvalidTransition
	}
	if err := s.apps.SetStatus(a.ID, status); err != nil {
		return nil, err
	}
	a.Status = status
	if s.notifier != nil {
		s.notifier.ApplicationDecided(a.VolunteerID, a, a.Opportunity.Title)
	}
	return a, nil
}

// isDuplicateKey classifies a unique-constraint violation from the MySQL
// driver or gorm's translated error.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
