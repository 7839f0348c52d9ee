package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gearshare/internal/domain"
	"gearshare/internal/pkg/kmutex"
)

type Service struct {
	chatRepo  ChatRepository
	users     UserGetter
	equipment EquipmentGetter
	hub       *Hub
	locks     *kmutex.KeyedMutex
}

func NewService(chatRepo ChatRepository, users UserGetter, equipment EquipmentGetter, hub *Hub) *Service {
	return &Service{
		chatRepo:  chatRepo,
		users:     users,
		equipment: equipment,
		hub:       hub,
		locks:     kmutex.New(),
	}
}

// GetOrCreateConversation returns the unique thread for the user pair and
// equipment context, creating it lazily. Threads scoped to a listing live
// alongside the pair's context-free thread.
func (s *Service) GetOrCreateConversation(ctx context.Context, senderID, recipientID int64, equipmentID *int64) (*domain.Conversation, error) {
	if senderID == recipientID {
		return nil, ErrCannotMessageSelf
	}

	recipient, err := s.users.GetByID(ctx, recipientID)
	if err != nil {
		return nil, fmt.Errorf("fetch recipient: %w", err)
	}
	if recipient == nil {
		return nil, ErrRecipientNotFound
	}

	participantA, participantB := senderID, recipientID
	if participantA > participantB {
		participantA, participantB = participantB, participantA
	}

	existing, err := s.chatRepo.GetConversationByParticipants(ctx, participantA, participantB, equipmentID)
	if err != nil {
		return nil, fmt.Errorf("find conversation: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	conv := &domain.Conversation{
		ParticipantA:  participantA,
		ParticipantB:  participantB,
		EquipmentID:   equipmentID,
		LastMessageAt: time.Now().UTC(),
	}
	if err := s.chatRepo.CreateConversation(ctx, conv); err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	return conv, nil
}

// SendMessage appends to the thread. The timestamp is assigned under the
// conversation's lock as max(now, lastMessageAt + 1ms), so timestamps stay
// strictly increasing within a conversation even if the wall clock stalls or
// jumps backwards.
func (s *Service) SendMessage(ctx context.Context, senderID, conversationID int64, content string) (*domain.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyMessage
	}

	s.locks.Lock(conversationID)
	defer s.locks.Unlock(conversationID)

	conv, err := s.chatRepo.GetConversationByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, ErrConversationNotFound
	}
	if !conv.HasParticipant(senderID) {
		return nil, ErrNotParticipant
	}

	ts := time.Now().UTC()
	if !ts.After(conv.LastMessageAt) {
		ts = conv.LastMessageAt.Add(time.Millisecond)
	}

	msg := &domain.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
		CreatedAt:      ts,
	}

	if err := s.chatRepo.CreateMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	if err := s.chatRepo.UpdateLastMessageAt(ctx, conversationID, ts); err != nil {
		return nil, fmt.Errorf("bump last_message_at: %w", err)
	}

	if s.hub != nil {
		s.hub.SendToUser(conv.OtherParticipant(senderID), NewMessageEvent(msg))
	}

	return msg, nil
}

// SeedBookingMessage posts the opening message of the renter-owner thread for
// a listing. Called by the booking engine after a successful request.
func (s *Service) SeedBookingMessage(ctx context.Context, senderID, recipientID, equipmentID int64, content string) error {
	conv, err := s.GetOrCreateConversation(ctx, senderID, recipientID, &equipmentID)
	if err != nil {
		return err
	}
	_, err = s.SendMessage(ctx, senderID, conv.ID, content)
	return err
}

// ListConversations returns the user's threads newest-activity first, each
// enriched with counterpart, listing, last message and unread count.
func (s *Service) ListConversations(ctx context.Context, userID int64, limit, offset int) ([]domain.Conversation, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	convs, err := s.chatRepo.GetUserConversations(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}

	for i := range convs {
		s.enrichConversation(ctx, &convs[i], userID)
	}
	return convs, nil
}

func (s *Service) enrichConversation(ctx context.Context, conv *domain.Conversation, currentUserID int64) {
	otherUser, _ := s.users.GetByID(ctx, conv.OtherParticipant(currentUserID))
	conv.OtherUser = otherUser

	if conv.EquipmentID != nil {
		eq, _ := s.equipment.GetByID(ctx, *conv.EquipmentID)
		conv.Equipment = eq
	}

	last, _ := s.chatRepo.GetLastMessage(ctx, conv.ID)
	conv.LastMessage = last

	unread, _ := s.chatRepo.CountUnread(ctx, conv.ID, currentUserID)
	conv.UnreadCount = int(unread)
}

// GetMessages returns up to limit messages in chronological order plus a
// has-more flag for backwards paging.
func (s *Service) GetMessages(ctx context.Context, userID, conversationID int64, limit int, beforeID *int64) ([]domain.Message, bool, error) {
	if ok, err := s.isParticipant(ctx, userID, conversationID); err != nil {
		return nil, false, err
	} else if !ok {
		return nil, false, ErrNotParticipant
	}

	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}

	msgs, err := s.chatRepo.GetMessages(ctx, conversationID, limit+1, beforeID)
	if err != nil {
		return nil, false, err
	}

	hasMore := len(msgs) > limit
	if hasMore {
		msgs = msgs[1:]
	}

	for i := range msgs {
		u, _ := s.users.GetByID(ctx, msgs[i].SenderID)
		msgs[i].Sender = u
	}

	return msgs, hasMore, nil
}

// MarkRead zeroes the caller's unread count for the thread.
func (s *Service) MarkRead(ctx context.Context, userID, conversationID int64) (int64, error) {
	if ok, err := s.isParticipant(ctx, userID, conversationID); err != nil {
		return 0, err
	} else if !ok {
		return 0, ErrNotParticipant
	}
	return s.chatRepo.MarkMessagesAsRead(ctx, conversationID, userID)
}

func (s *Service) TotalUnread(ctx context.Context, userID int64) (int64, error) {
	return s.chatRepo.CountTotalUnread(ctx, userID)
}

func (s *Service) isParticipant(ctx context.Context, userID, conversationID int64) (bool, error) {
	conv, err := s.chatRepo.GetConversationByID(ctx, conversationID)
	if err != nil {
		return false, err
	}
	if conv == nil {
		return false, ErrConversationNotFound
	}
	return conv.HasParticipant(userID), nil
}
