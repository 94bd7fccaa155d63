package service

import (
	"errors"
	"strings"

	"volunteerhub/internal/models"

	"gorm.io/gorm"
)

var (
	ErrEmptyMessage     = errors.New("message content is empty")
	ErrReceiverNotFound = errors.New("receiver not found")
)

// MessageStore is the persistence surface for direct messages.
type MessageStore interface {
	Create(*models.Message) error
	Thread(userID, otherID uint) ([]models.Message, error)
	MarkThreadRead(receiverID, senderID uint) error
	CounterpartIDs(userID uint) ([]uint, error)
	UnreadCountFrom(receiverID, senderID uint) (int64, error)
}

// UserStore resolves conversation participants.
type UserStore interface {
	GetByID(uint) (*models.User, error)
	ListByIDs([]uint) ([]models.User, error)
}

// MessagePusher is the realtime delivery channel. Delivery is scoped: only
// receiver connections with the sender's conversation open get the event.
type MessagePusher interface {
	DeliverMessage(receiverID, senderID uint, payload interface{})
	IsOnline(userID uint) bool
}

// MessageNotifier records an unread notification for offline receivers.
type MessageNotifier interface {
	MessageReceived(receiverID uint, senderName string, messageID uint)
}

type MessageService struct {
	messages MessageStore
	users    UserStore
	pusher   MessagePusher
	notifier MessageNotifier
}

func NewMessageService(messages MessageStore, users UserStore, pusher MessagePusher, notifier MessageNotifier) *MessageService {
	return &MessageService{messages: messages, users: users, pusher: pusher, notifier: notifier}
}

// Conversation is one entry in the conversation sidebar.
type Conversation struct {
	User        models.User `json:"user"`
	UnreadCount int64       `json:"unread_count"`
}

// Conversations returns the distinct users the caller has exchanged at least
// one message with, each with its unread count.
func (s *MessageService) Conversations(userID uint) ([]Conversation, error) {
	ids, err := s.messages.CounterpartIDs(userID)
	if err != nil {
		return nil, err
	}
	users, err := s.users.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	out := make([]Conversation, 0, len(users))
	for _, u := range users {
		unread, err := s.messages.UnreadCountFrom(userID, u.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, Conversation{User: u, UnreadCount: unread})
	}
	return out, nil
}

// LoadThread returns every message between the two users oldest-first and,
// as a side effect, marks the caller's unread messages from the counterpart
// as read. Re-loading an already-read thread is a no-op.
func (s *MessageService) LoadThread(userID, otherID uint) ([]models.Message, error) {
	list, err := s.messages.Thread(userID, otherID)
	if err != nil {
		return nil, err
	}
	if err := s.messages.MarkThreadRead(userID, otherID); err != nil {
		return nil, err
	}
	return list, nil
}

// Send persists a message (read=false) and delivers it over the realtime
// channel. The insert is never echoed back to the sender's own connections,
// so a locally appended message cannot be double-appended.
func (s *MessageService) Send(senderID, receiverID uint, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}
	if _, err := s.users.GetByID(receiverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReceiverNotFound
		}
		return nil, err
	}
	m := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := s.messages.Create(m); err != nil {
		return nil, err
	}
	if s.pusher != nil {
		s.pusher.DeliverMessage(receiverID, senderID, map[string]interface{}{
			"type":        "message",
			"id":          m.ID,
			"sender_id":   m.SenderID,
			"receiver_id": m.ReceiverID,
			"content":     m.Content,
			"created_at":  m.CreatedAt,
		})
		if !s.pusher.IsOnline(receiverID) && s.notifier != nil {
			senderName := ""
			if sender, err := s.users.GetByID(senderID); err == nil {
				senderName = sender.DisplayName()
			}
			s.notifier.MessageReceived(receiverID, senderName, m.ID)
		}
	}
	return m, nil
}
