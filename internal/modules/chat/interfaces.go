package chat

import (
	"context"
	"time"

	"gearshare/internal/domain"
)

type ChatRepository interface {
	CreateConversation(ctx context.Context, conv *domain.Conversation) error
	GetConversationByID(ctx context.Context, id int64) (*domain.Conversation, error)
	GetConversationByParticipants(ctx context.Context, userA, userB int64, equipmentID *int64) (*domain.Conversation, error)
	GetUserConversations(ctx context.Context, userID int64, limit, offset int) ([]domain.Conversation, error)
	UpdateLastMessageAt(ctx context.Context, conversationID int64, at time.Time) error
	CreateMessage(ctx context.Context, msg *domain.Message) error
	GetMessages(ctx context.Context, conversationID int64, limit int, beforeID *int64) ([]domain.Message, error)
	GetLastMessage(ctx context.Context, conversationID int64) (*domain.Message, error)
	MarkMessagesAsRead(ctx context.Context, conversationID, readerID int64) (int64, error)
	CountUnread(ctx context.Context, conversationID, userID int64) (int64, error)
	CountTotalUnread(ctx context.Context, userID int64) (int64, error)
}

type UserGetter interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type EquipmentGetter interface {
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
}
