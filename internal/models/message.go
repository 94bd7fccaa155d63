package models

import "time"

// Message is one direct message between two users. Messages are never
// deleted; conversation order is creation order.
type Message struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SenderID   uint      `gorm:"not null;index" json:"sender_id"`
	ReceiverID uint      `gorm:"not null;index" json:"receiver_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Read       bool      `gorm:"not null;default:false" json:"read"` // only the receiver flips this to true
	CreatedAt  time.Time `json:"created_at"`

	Sender   *User `gorm:"foreignKey:SenderID" json:"-"`
	Receiver *User `gorm:"foreignKey:ReceiverID" json:"-"`
}
