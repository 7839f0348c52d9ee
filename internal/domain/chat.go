package domain

import "time"

// Conversation is a thread between two users, optionally scoped to one
// equipment listing. ParticipantA is always the smaller user id so the
// (pair, equipment) key is unique regardless of who wrote first.
type Conversation struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	ParticipantA  int64     `json:"participant_a" gorm:"not null;index:idx_conv_pair"`
	ParticipantB  int64     `json:"participant_b" gorm:"not null;index:idx_conv_pair"`
	EquipmentID   *int64    `json:"equipment_id,omitempty" gorm:"index"`
	LastMessageAt time.Time `json:"last_message_at"`
	CreatedAt     time.Time `json:"created_at"`

	// Populated by the service for list responses, not stored.
	OtherUser   *User      `json:"other_user,omitempty" gorm:"-"`
	Equipment   *Equipment `json:"equipment,omitempty" gorm:"-"`
	LastMessage *Message   `json:"last_message,omitempty" gorm:"-"`
	UnreadCount int        `json:"unread_count" gorm:"-"`
}

func (Conversation) TableName() string { return "conversations" }

// OtherParticipant returns the counterpart of userID in this conversation.
func (c *Conversation) OtherParticipant(userID int64) int64 {
	if c.ParticipantA == userID {
		return c.ParticipantB
	}
	return c.ParticipantA
}

func (c *Conversation) HasParticipant(userID int64) bool {
	return c.ParticipantA == userID || c.ParticipantB == userID
}

// Message is append-only. CreatedAt is assigned by the chat service and is
// strictly increasing within a conversation.
type Message struct {
	ID             int64      `json:"id" gorm:"primaryKey"`
	ConversationID int64      `json:"conversation_id" gorm:"not null;index"`
	SenderID       int64      `json:"sender_id" gorm:"not null"`
	Content        string     `json:"content" gorm:"type:text;not null"`
	IsRead         bool       `json:"is_read" gorm:"not null;default:false"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`

	Sender *User `json:"sender,omitempty" gorm:"-"`
}

func (Message) TableName() string { return "messages" }
