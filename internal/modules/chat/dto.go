package chat

import (
	"time"

	"gearshare/internal/domain"
)

type CreateConversationRequest struct {
	RecipientID    int64  `json:"recipient_id" binding:"required"`
	EquipmentID    *int64 `json:"equipment_id"`
	InitialMessage string `json:"initial_message"`
}

type SendMessageRequest struct {
	Content string `json:"content" binding:"required,max=4000"`
}

type UserBrief struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

type EquipmentBrief struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type MessageBrief struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	IsMine    bool   `json:"is_mine"`
	CreatedAt string `json:"created_at"`
}

type ConversationResponse struct {
	ID        int64           `json:"id"`
	OtherUser *UserBrief      `json:"other_user"`
	Equipment *EquipmentBrief `json:"equipment,omitempty"`

	LastMessage   *MessageBrief `json:"last_message,omitempty"`
	UnreadCount   int           `json:"unread_count"`
	LastMessageAt string        `json:"last_message_at"`
	CreatedAt     string        `json:"created_at"`
}

type MessageResponse struct {
	ID             int64      `json:"id"`
	ConversationID int64      `json:"conversation_id"`
	SenderID       int64      `json:"sender_id"`
	Content        string     `json:"content"`
	IsRead         bool       `json:"is_read"`
	ReadAt         *string    `json:"read_at,omitempty"`
	CreatedAt      string     `json:"created_at"`
	Sender         *UserBrief `json:"sender,omitempty"`
}

// MessageEvent is what goes over the websocket.
type MessageEvent struct {
	Type    string           `json:"type"`
	Message *MessageResponse `json:"message"`
}

func NewMessageEvent(m *domain.Message) MessageEvent {
	return MessageEvent{Type: "message.new", Message: ToMessageResponse(m)}
}

func ToUserBrief(u *domain.User) *UserBrief {
	if u == nil {
		return nil
	}
	return &UserBrief{
		ID:     u.ID,
		Name:   u.Name,
		Avatar: u.AvatarURL,
	}
}

func ToMessageResponse(m *domain.Message) *MessageResponse {
	if m == nil {
		return nil
	}

	resp := &MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        m.Content,
		IsRead:         m.IsRead,
		CreatedAt:      m.CreatedAt.Format(time.RFC3339Nano),
		Sender:         ToUserBrief(m.Sender),
	}

	if m.ReadAt != nil {
		ra := m.ReadAt.Format(time.RFC3339Nano)
		resp.ReadAt = &ra
	}

	return resp
}

func ToConversationResponse(c *domain.Conversation, currentUserID int64) *ConversationResponse {
	if c == nil {
		return nil
	}

	resp := &ConversationResponse{
		ID:            c.ID,
		OtherUser:     ToUserBrief(c.OtherUser),
		UnreadCount:   c.UnreadCount,
		LastMessageAt: c.LastMessageAt.Format(time.RFC3339Nano),
		CreatedAt:     c.CreatedAt.Format(time.RFC3339Nano),
	}

	if c.Equipment != nil {
		resp.Equipment = &EquipmentBrief{
			ID:    c.Equipment.ID,
			Title: c.Equipment.Title,
		}
	}

	if c.LastMessage != nil {
		resp.LastMessage = &MessageBrief{
			ID:        c.LastMessage.ID,
			Content:   c.LastMessage.Content,
			IsMine:    c.LastMessage.SenderID == currentUserID,
			CreatedAt: c.LastMessage.CreatedAt.Format(time.RFC3339Nano),
		}
	}

	return resp
}
