package service

import (
	"encoding/json"

	"volunteerhub/internal/domain"
	"volunteerhub/internal/models"
	"volunteerhub/internal/repository"
)

type NotificationService struct {
	repo *repository.NotificationRepository
}

func NewNotificationService(repo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) Notify(userID uint, notifType, title, body string, data map[string]interface{}) error {
	var dataJSON string
	if data != nil {
		b, _ := json.Marshal(data)
		dataJSON = string(b)
	}
	return s.repo.Create(&models.Notification{
		UserID: userID,
		Type:   notifType,
		Title:  title,
		Body:   body,
		Data:   dataJSON,
	})
}

// ApplicationReceived notifies the NGO that a volunteer applied to one of
// its opportunities.
func (s *NotificationService) ApplicationReceived(ngoUserID uint, app *models.Application, volunteerName, opportunityTitle string) {
	_ = s.Notify(ngoUserID, domain.NotifApplicationReceived, "New application",
		volunteerName+" applied to "+opportunityTitle,
		map[string]interface{}{"application_id": app.ID, "opportunity_id": app.OpportunityID})
}

// ApplicationDecided notifies the volunteer of the NGO's decision.
func (s *NotificationService) ApplicationDecided(volunteerID uint, app *models.Application, opportunityTitle string) {
	if app.Status == domain.ApplicationAccepted {
		_ = s.Notify(volunteerID, domain.NotifApplicationAccepted, "Application accepted",
			"Your application for "+opportunityTitle+" was accepted",
			map[string]interface{}{"application_id": app.ID, "opportunity_id": app.OpportunityID})
		return
	}
	_ = s.Notify(volunteerID, domain.NotifApplicationRejected, "Application update",
		"Your application for "+opportunityTitle+" was not selected",
		map[string]interface{}{"application_id": app.ID, "opportunity_id": app.OpportunityID})
}

// MessageReceived records an unread-message notification for a receiver with
// no live connection.
func (s *NotificationService) MessageReceived(receiverID uint, senderName string, messageID uint) {
	_ = s.Notify(receiverID, domain.NotifNewMessage, "New message",
		senderName+" sent you a message",
		map[string]interface{}{"message_id": messageID})
}
