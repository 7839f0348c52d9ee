package repository

import (
	"context"
	"errors"
	"time"

	"gearshare/internal/domain"

	"gorm.io/gorm"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// CreateConversation stores a new thread. Callers must already have
// normalized participant order (participant_a < participant_b).
func (r *ChatRepository) CreateConversation(ctx context.Context, conv *domain.Conversation) error {
	return r.db.WithContext(ctx).Create(conv).Error
}

func (r *ChatRepository) GetConversationByID(ctx context.Context, id int64) (*domain.Conversation, error) {
	var conv domain.Conversation
	err := r.db.WithContext(ctx).First(&conv, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conv, nil
}

// GetConversationByParticipants looks up the unique thread for a user pair
// and equipment context. A nil equipmentID matches only the context-free
// thread, so per-listing threads and the general thread coexist.
func (r *ChatRepository) GetConversationByParticipants(ctx context.Context, userA, userB int64, equipmentID *int64) (*domain.Conversation, error) {
	if userA > userB {
		userA, userB = userB, userA
	}

	q := r.db.WithContext(ctx).
		Where("participant_a = ? AND participant_b = ?", userA, userB)

	if equipmentID != nil {
		q = q.Where("equipment_id = ?", *equipmentID)
	} else {
		q = q.Where("equipment_id IS NULL")
	}

	var conv domain.Conversation
	err := q.First(&conv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conv, nil
}

func (r *ChatRepository) GetUserConversations(ctx context.Context, userID int64, limit, offset int) ([]domain.Conversation, error) {
	var convs []domain.Conversation
	err := r.db.WithContext(ctx).
		Where("participant_a = ? OR participant_b = ?", userID, userID).
		Order("last_message_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&convs).Error
	return convs, err
}

// UpdateLastMessageAt records the assigned timestamp of the newest message.
// The explicit value (not CURRENT_TIMESTAMP) matters: the chat service uses
// the stored value to keep message timestamps strictly increasing.
func (r *ChatRepository) UpdateLastMessageAt(ctx context.Context, conversationID int64, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&domain.Conversation{}).
		Where("id = ?", conversationID).
		Update("last_message_at", at).Error
}

func (r *ChatRepository) CreateMessage(ctx context.Context, msg *domain.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// GetMessages returns up to limit messages in chronological order. With
// beforeID set it pages backwards through history.
func (r *ChatRepository) GetMessages(ctx context.Context, conversationID int64, limit int, beforeID *int64) ([]domain.Message, error) {
	q := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID)

	if beforeID != nil && *beforeID > 0 {
		q = q.Where("id < ?", *beforeID)
	}

	var messages []domain.Message
	err := q.
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	// Fetched newest-first for the LIMIT; flip to chronological.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

func (r *ChatRepository) GetLastMessage(ctx context.Context, conversationID int64) (*domain.Message, error) {
	msgs, err := r.GetMessages(ctx, conversationID, 1, nil)
	if err != nil || len(msgs) == 0 {
		return nil, err
	}
	return &msgs[0], nil
}

// MarkMessagesAsRead marks the other side's unread messages read and returns
// how many were affected. The reader's own messages are never touched.
func (r *ChatRepository) MarkMessagesAsRead(ctx context.Context, conversationID, readerID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("conversation_id = ?", conversationID).
		Where("sender_id != ?", readerID).
		Where("is_read = ?", false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now().UTC(),
		})
	return result.RowsAffected, result.Error
}

// CountUnread is the badge number for one conversation from userID's side.
func (r *ChatRepository) CountUnread(ctx context.Context, conversationID, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("conversation_id = ?", conversationID).
		Where("sender_id != ?", userID).
		Where("is_read = ?", false).
		Count(&count).Error
	return count, err
}

// CountTotalUnread sums unread messages across all of the user's threads.
func (r *ChatRepository) CountTotalUnread(ctx context.Context, userID int64) (int64, error) {
	subQuery := r.db.Model(&domain.Conversation{}).
		Select("id").
		Where("participant_a = ? OR participant_b = ?", userID, userID)

	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("conversation_id IN (?)", subQuery).
		Where("sender_id != ?", userID).
		Where("is_read = ?", false).
		Count(&count).Error
	return count, err
}
