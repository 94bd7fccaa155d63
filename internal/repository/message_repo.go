package repository

import (
	"volunteerhub/internal/models"

	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(m *models.Message) error {
	return r.db.Create(m).Error
}

// Thread returns every message between exactly the two users, oldest-first.
func (r *MessageRepository) Thread(userID, otherID uint) ([]models.Message, error) {
	var list []models.Message
	err := r.db.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, otherID, otherID, userID).
		Order("created_at ASC").Find(&list).Error
	return list, err
}

// MarkThreadRead flips the receiver's unread messages from sender to read.
// Running it again is a no-op.
func (r *MessageRepository) MarkThreadRead(receiverID, senderID uint) error {
	return r.db.Model(&models.Message{}).
		Where("receiver_id = ? AND sender_id = ? AND `read` = ?", receiverID, senderID, false).
		Update("read", true).Error
}

// CounterpartIDs returns the distinct user IDs the user has exchanged at
// least one message with, in either direction.
func (r *MessageRepository) CounterpartIDs(userID uint) ([]uint, error) {
	var sent, received []uint
	if err := r.db.Model(&models.Message{}).Where("sender_id = ?", userID).
		Distinct().Pluck("receiver_id", &sent).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Message{}).Where("receiver_id = ?", userID).
		Distinct().Pluck("sender_id", &received).Error; err != nil {
		return nil, err
	}
	seen := make(map[uint]struct{}, len(sent)+len(received))
	var ids []uint
	for _, id := range append(sent, received...) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *MessageRepository) UnreadCountFrom(receiverID, senderID uint) (int64, error) {
	var c int64
	err := r.db.Model(&models.Message{}).
		Where("receiver_id = ? AND sender_id = ? AND `read` = ?", receiverID, senderID, false).
		Count(&c).Error
	return c, err
}
