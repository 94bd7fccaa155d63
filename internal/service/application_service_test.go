package service

import (
	"errors"
	"testing"

	"volunteerhub/internal/domain"
	"volunteerhub/internal/models"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// mockApplicationStore keeps applications in memory and enforces the
// composite unique index the way MySQL would.
type mockApplicationStore struct {
	apps      map[uint]*models.Application
	nextID    uint
	createErr error
}

func newMockApplicationStore() *mockApplicationStore {
	return &mockApplicationStore{apps: make(map[uint]*models.Application), nextID: 1}
}

func (m *mockApplicationStore) Create(a *models.Application) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, existing := range m.apps {
		if existing.OpportunityID == a.OpportunityID && existing.VolunteerID == a.VolunteerID {
			return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
		}
	}
	a.ID = m.nextID
	m.nextID++
	cp := *a
	m.apps[a.ID] = &cp
	return nil
}

func (m *mockApplicationStore) GetByID(id uint) (*models.Application, error) {
	a, ok := m.apps[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *mockApplicationStore) ListByVolunteerID(volunteerID uint) ([]models.Application, error) {
	var out []models.Application
	for _, a := range m.apps {
		if a.VolunteerID == volunteerID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *mockApplicationStore) ListByNGOID(ngoID uint) ([]models.Application, error) {
	var out []models.Application
	for _, a := range m.apps {
		if a.Opportunity != nil && a.Opportunity.NGOID == ngoID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *mockApplicationStore) SetStatus(id uint, status string) error {
	a, ok := m.apps[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Status = status
	return nil
}

type mockOpportunityGetter struct {
	opps map[uint]*models.Opportunity
}

func (m *mockOpportunityGetter) GetByID(id uint) (*models.Opportunity, error) {
	o, ok := m.opps[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

type recordedNotification struct {
	kind   string
	userID uint
	status string
}

type mockAppNotifier struct {
	events []recordedNotification
}

func (m *mockAppNotifier) ApplicationReceived(ngoUserID uint, app *models.Application, volunteerName, opportunityTitle string) {
	m.events = append(m.events, recordedNotification{kind: "received", userID: ngoUserID})
}

func (m *mockAppNotifier) ApplicationDecided(volunteerID uint, app *models.Application, opportunityTitle string) {
	m.events = append(m.events, recordedNotification{kind: "decided", userID: volunteerID, status: app.Status})
}

func newApplicationFixture() (*ApplicationService, *mockApplicationStore, *mockOpportunityGetter, *mockAppNotifier) {
	store := newMockApplicationStore()
	opps := &mockOpportunityGetter{opps: map[uint]*models.Opportunity{
		10: {ID: 10, NGOID: 2, Title: "Community Garden", Status: domain.OpportunityOpen},
	}}
	notifier := &mockAppNotifier{}
	return NewApplicationService(store, opps, notifier), store, opps, notifier
}

func TestSubmitCreatesPendingApplication(t *testing.T) {
	svc, store, _, notifier := newApplicationFixture()

	a, err := svc.Submit(10, 1, "Vera", "I can help")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if a.Status != domain.ApplicationPending {
		t.Errorf("status = %q, want pending", a.Status)
	}
	if a.CoverLetter != "I can help" {
		t.Errorf("cover letter = %q", a.CoverLetter)
	}
	if len(store.apps) != 1 {
		t.Errorf("store has %d applications, want 1", len(store.apps))
	}
	if len(notifier.events) != 1 || notifier.events[0].kind != "received" || notifier.events[0].userID != 2 {
		t.Errorf("notifier events = %+v, want one 'received' for NGO 2", notifier.events)
	}
}

func TestSubmitDuplicateApplication(t *testing.T) {
	svc, store, _, _ := newApplicationFixture()

	if _, err := svc.Submit(10, 1, "Vera", "first"); err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	_, err := svc.Submit(10, 1, "Vera", "second")
	if !errors.Is(err, ErrDuplicateApplication) {
		t.Fatalf("second Submit err = %v, want ErrDuplicateApplication", err)
	}
	if len(store.apps) != 1 {
		t.Errorf("store has %d applications after duplicate, want 1", len(store.apps))
	}
}

func TestSubmitUnknownOpportunity(t *testing.T) {
	svc, _, _, _ := newApplicationFixture()

	_, err := svc.Submit(99, 1, "Vera", "hello")
	if !errors.Is(err, ErrOpportunityNotFound) {
		t.Fatalf("err = %v, want ErrOpportunityNotFound", err)
	}
}

func TestDecideByOwner(t *testing.T) {
	svc, store, opps, notifier := newApplicationFixture()

	a, err := svc.Submit(10, 1, "Vera", "hi")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	// GetByID preloads the opportunity in production; mirror that here.
	store.apps[a.ID].Opportunity = opps.opps[10]

	decided, err := svc.Decide(a.ID, 2, domain.ApplicationAccepted)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if decided.Status != domain.ApplicationAccepted {
		t.Errorf("status = %q, want accepted", decided.Status)
	}
	if store.apps[a.ID].Status != domain.ApplicationAccepted {
		t.Errorf("stored status = %q, want accepted", store.apps[a.ID].Status)
	}
	last := notifier.events[len(notifier.events)-1]
	if last.kind != "decided" || last.userID != 1 || last.status != domain.ApplicationAccepted {
		t.Errorf("last notification = %+v", last)
	}
}

func TestDecideByNonOwner(t *testing.T) {
	svc, store, opps, _ := newApplicationFixture()

	a, _ := svc.Submit(10, 1, "Vera", "hi")
	store.apps[a.ID].Opportunity = opps.opps[10]

	if _, err := svc.Decide(a.ID, 7, domain.ApplicationAccepted); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("err = %v, want ErrNotOwner", err)
	}
	if store.apps[a.ID].Status != domain.ApplicationPending {
		t.Errorf("status changed by non-owner: %q", store.apps[a.ID].Status)
	}
}

func TestDecideTerminalStates(t *testing.T) {
	svc, store, opps, _ := newApplicationFixture()

	a, _ := svc.Submit(10, 1, "Vera", "hi")
	store.apps[a.ID].Opportunity = opps.opps[10]

	if _, err := svc.Decide(a.ID, 2, domain.ApplicationAccepted); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := svc.Decide(a.ID, 2, domain.ApplicationRejected); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("accepted->rejected err = %v, want ErrInvalidTransition", err)
	}
	if store.apps[a.ID].Status != domain.ApplicationAccepted {
		t.Errorf("terminal status moved: %q", store.apps[a.ID].Status)
	}
}

func TestDecideRejectsNonTerminalTarget(t *testing.T) {
	svc, store, opps, _ := newApplicationFixture()

	a, _ := svc.Submit(10, 1, "Vera", "hi")
	store.apps[a.ID].Opportunity = opps.opps[10]

	if _, err := svc.Decide(a.ID, 2, domain.ApplicationPending); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("pending target err = %v, want ErrInvalidTransition", err)
	}
}

func TestDecideUnknownApplication(t *testing.T) {
	svc, _, _, _ := newApplicationFixture()

	if _, err := svc.Decide(404, 2, domain.ApplicationAccepted); !errors.Is(err, ErrApplicationNotFound) {
		t.Fatalf("err = %v, want ErrApplicationNotFound", err)
	}
}

func TestDecideOrphanedOpportunity(t *testing.T) {
	svc, store, _, _ := newApplicationFixture()

	a, _ := svc.Submit(10, 1, "Vera", "hi")
	// Opportunity left nil: no verifiable owner.
	if _, err := svc.Decide(a.ID, 2, domain.ApplicationAccepted); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("err = %v, want ErrNotOwner", err)
	}
	if store.apps[a.ID].Status != domain.ApplicationPending {
		t.Errorf("status = %q, want pending", store.apps[a.ID].Status)
	}
}

func TestListForRoles(t *testing.T) {
	svc, store, opps, _ := newApplicationFixture()

	a, _ := svc.Submit(10, 1, "Vera", "hi")
	store.apps[a.ID].Opportunity = opps.opps[10]

	mine, err := svc.ListFor(domain.RoleVolunteer, 1)
	if err != nil || len(mine) != 1 {
		t.Fatalf("volunteer list = %v, %v", mine, err)
	}
	theirs, err := svc.ListFor(domain.RoleNGO, 2)
	if err != nil || len(theirs) != 1 {
		t.Fatalf("ngo list = %v, %v", theirs, err)
	}
	none, err := svc.ListFor(domain.RoleVolunteer, 9)
	if err != nil || len(none) != 0 {
		t.Fatalf("stranger list = %v, %v", none, err)
	}
}

// Full lifecycle: apply, accept, then verify accepted is terminal.
func TestApplicationLifecycleScenario(t *testing.T) {
	svc, store, opps, _ := newApplicationFixture()

	a, err := svc.Submit(10, 1, "Vera", "I can help")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !a.IsPending() {
		t.Fatalf("new application not pending: %q", a.Status)
	}
	store.apps[a.ID].Opportunity = opps.opps[10]

	if _, err := svc.Decide(a.ID, 2, domain.ApplicationAccepted); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := svc.Decide(a.ID, 2, domain.ApplicationRejected); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("re-decide err = %v, want ErrInvalidTransition", err)
	}
}
