package chat

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"gearshare/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChatRepo is an in-memory ChatRepository. Message ordering tests need
// real state, so this is a hand-written fake rather than an expectation mock.
type fakeChatRepo struct {
	mu       sync.Mutex
	nextConv int64
	nextMsg  int64
	convs    map[int64]*domain.Conversation
	msgs     []*domain.Message
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{nextConv: 1, nextMsg: 1, convs: make(map[int64]*domain.Conversation)}
}

func (f *fakeChatRepo) CreateConversation(_ context.Context, conv *domain.Conversation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	conv.ID = f.nextConv
	f.nextConv++
	cp := *conv
	f.convs[conv.ID] = &cp
	return nil
}

func (f *fakeChatRepo) GetConversationByID(_ context.Context, id int64) (*domain.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	conv, ok := f.convs[id]
	if !ok {
		return nil, nil
	}
	cp := *conv
	return &cp, nil
}

func (f *fakeChatRepo) GetConversationByParticipants(_ context.Context, userA, userB int64, equipmentID *int64) (*domain.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, conv := range f.convs {
		if conv.ParticipantA != userA || conv.ParticipantB != userB {
			continue
		}
		switch {
		case equipmentID == nil && conv.EquipmentID == nil:
		case equipmentID != nil && conv.EquipmentID != nil && *equipmentID == *conv.EquipmentID:
		default:
			continue
		}
		cp := *conv
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeChatRepo) GetUserConversations(_ context.Context, userID int64, limit, offset int) ([]domain.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Conversation
	for _, conv := range f.convs {
		if conv.HasParticipant(userID) {
			out = append(out, *conv)
		}
	}
	// newest activity first
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].LastMessageAt.After(out[i].LastMessageAt) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeChatRepo) UpdateLastMessageAt(_ context.Context, conversationID int64, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if conv, ok := f.convs[conversationID]; ok {
		conv.LastMessageAt = at
	}
	return nil
}

func (f *fakeChatRepo) CreateMessage(_ context.Context, msg *domain.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	msg.ID = f.nextMsg
	f.nextMsg++
	cp := *msg
	f.msgs = append(f.msgs, &cp)
	return nil
}

func (f *fakeChatRepo) GetMessages(_ context.Context, conversationID int64, limit int, beforeID *int64) ([]domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Message
	for _, m := range f.msgs {
		if m.ConversationID != conversationID {
			continue
		}
		if beforeID != nil && m.ID >= *beforeID {
			continue
		}
		out = append(out, *m)
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (f *fakeChatRepo) GetLastMessage(_ context.Context, conversationID int64) (*domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.msgs) - 1; i >= 0; i-- {
		if f.msgs[i].ConversationID == conversationID {
			cp := *f.msgs[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeChatRepo) MarkMessagesAsRead(_ context.Context, conversationID, readerID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now().UTC()
	var n int64
	for _, m := range f.msgs {
		if m.ConversationID == conversationID && m.SenderID != readerID && !m.IsRead {
			m.IsRead = true
			m.ReadAt = &now
			n++
		}
	}
	return n, nil
}

func (f *fakeChatRepo) CountUnread(_ context.Context, conversationID, userID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, m := range f.msgs {
		if m.ConversationID == conversationID && m.SenderID != userID && !m.IsRead {
			n++
		}
	}
	return n, nil
}

func (f *fakeChatRepo) CountTotalUnread(_ context.Context, userID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, m := range f.msgs {
		conv, ok := f.convs[m.ConversationID]
		if ok && conv.HasParticipant(userID) && m.SenderID != userID && !m.IsRead {
			n++
		}
	}
	return n, nil
}

type fakeUserGetter struct {
	users map[int64]*domain.User
}

func (f *fakeUserGetter) GetByID(_ context.Context, id int64) (*domain.User, error) {
	return f.users[id], nil
}

type fakeEquipmentGetter struct {
	items map[int64]*domain.Equipment
}

func (f *fakeEquipmentGetter) GetByID(_ context.Context, id int64) (*domain.Equipment, error) {
	return f.items[id], nil
}

func newTestService(repo *fakeChatRepo) *Service {
	users := &fakeUserGetter{users: map[int64]*domain.User{
		1: {ID: 1, Name: "Aida", Email: "aida@example.com"},
		2: {ID: 2, Name: "Marat", Email: "marat@example.com"},
		3: {ID: 3, Name: "Dana", Email: "dana@example.com"},
	}}
	equipment := &fakeEquipmentGetter{items: map[int64]*domain.Equipment{
		7: {ID: 7, OwnerID: 1, Title: "Sony Alpha 7S III"},
	}}
	return NewService(repo, users, equipment, nil)
}

func TestGetOrCreateConversation_ReusesThread(t *testing.T) {
	repo := newFakeChatRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	first, err := svc.GetOrCreateConversation(ctx, 2, 1, nil)
	require.NoError(t, err)

	// Same pair from the other side lands in the same thread.
	second, err := svc.GetOrCreateConversation(ctx, 1, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	// A listing-scoped thread for the same pair is a separate one.
	eqID := int64(7)
	scoped, err := svc.GetOrCreateConversation(ctx, 2, 1, &eqID)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, scoped.ID)

	scopedAgain, err := svc.GetOrCreateConversation(ctx, 1, 2, &eqID)
	require.NoError(t, err)
	assert.Equal(t, scoped.ID, scopedAgain.ID)
}

func TestGetOrCreateConversation_SelfAndUnknownRecipient(t *testing.T) {
	svc := newTestService(newFakeChatRepo())
	ctx := context.Background()

	_, err := svc.GetOrCreateConversation(ctx, 1, 1, nil)
	assert.ErrorIs(t, err, ErrCannotMessageSelf)

	_, err = svc.GetOrCreateConversation(ctx, 1, 404, nil)
	assert.ErrorIs(t, err, ErrRecipientNotFound)
}

func TestSendMessage_EmptyRejected(t *testing.T) {
	svc := newTestService(newFakeChatRepo())

	_, err := svc.SendMessage(context.Background(), 1, 1, "   \n\t ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestSendMessage_ParticipantOnly(t *testing.T) {
	repo := newFakeChatRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	conv, err := svc.GetOrCreateConversation(ctx, 1, 2, nil)
	require.NoError(t, err)

	_, err = svc.SendMessage(ctx, 3, conv.ID, "hi")
	assert.ErrorIs(t, err, ErrNotParticipant)

	_, err = svc.SendMessage(ctx, 1, 404, "hi")
	assert.ErrorIs(t, err, ErrConversationNotFound)
}

func TestSendMessage_TimestampsStrictlyIncrease(t *testing.T) {
	repo := newFakeChatRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	conv, err := svc.GetOrCreateConversation(ctx, 1, 2, nil)
	require.NoError(t, err)

	// Rapid-fire sends from both sides. On a coarse clock many of these
	// land in the same wall-clock instant.
	var prev time.Time
	for i := 0; i < 200; i++ {
		sender := int64(1 + i%2)
		msg, err := svc.SendMessage(ctx, sender, conv.ID, fmt.Sprintf("msg %d", i))
		require.NoError(t, err)
		if i > 0 {
			assert.True(t, msg.CreatedAt.After(prev),
				"message %d at %v not after %v", i, msg.CreatedAt, prev)
		}
		prev = msg.CreatedAt
	}

	got, hasMore, err := svc.GetMessages(ctx, 1, conv.ID, 100, nil)
	require.NoError(t, err)
	assert.True(t, hasMore)
	assert.Len(t, got, 100)
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i].CreatedAt.After(got[i-1].CreatedAt))
	}
}

func TestSendMessage_ConcurrentSendsStayOrdered(t *testing.T) {
	repo := newFakeChatRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	conv, err := svc.GetOrCreateConversation(ctx, 1, 2, nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.SendMessage(ctx, int64(1+i%2), conv.ID, fmt.Sprintf("msg %d", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	seen := make(map[int64]bool)
	repo.mu.Lock()
	defer repo.mu.Unlock()
	var prev time.Time
	for _, m := range repo.msgs {
		require.False(t, seen[m.ID])
		seen[m.ID] = true
		assert.True(t, m.CreatedAt.After(prev))
		prev = m.CreatedAt
	}
	assert.Len(t, repo.msgs, 50)
}

func TestMarkReadAndUnreadCounts(t *testing.T) {
	repo := newFakeChatRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	conv, err := svc.GetOrCreateConversation(ctx, 1, 2, nil)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := svc.SendMessage(ctx, 1, conv.ID, "hello")
		require.NoError(t, err)
	}

	// Own messages never count as unread for the sender.
	unread, err := svc.TotalUnread(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread)

	unread, err = svc.TotalUnread(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), unread)

	n, err := svc.MarkRead(ctx, 2, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	unread, err = svc.TotalUnread(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread)

	// Non-participants cannot mark the thread.
	_, err = svc.MarkRead(ctx, 3, conv.ID)
	assert.ErrorIs(t, err, ErrNotParticipant)
}

func TestSeedBookingMessage(t *testing.T) {
	repo := newFakeChatRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	err := svc.SeedBookingMessage(ctx, 2, 1, 7, "Hi! I'd like to rent this.")
	require.NoError(t, err)

	convs, err := svc.ListConversations(ctx, 1, 20, 0)
	require.NoError(t, err)
	require.Len(t, convs, 1)
	require.NotNil(t, convs[0].EquipmentID)
	assert.Equal(t, int64(7), *convs[0].EquipmentID)
	require.NotNil(t, convs[0].LastMessage)
	assert.Equal(t, "Hi! I'd like to rent this.", convs[0].LastMessage.Content)
	assert.Equal(t, 1, convs[0].UnreadCount)

	// A repeat request for the same listing reuses the thread.
	err = svc.SeedBookingMessage(ctx, 2, 1, 7, "Second request.")
	require.NoError(t, err)

	convs, err = svc.ListConversations(ctx, 1, 20, 0)
	require.NoError(t, err)
	assert.Len(t, convs, 1)
	assert.Equal(t, 2, convs[0].UnreadCount)
}

func TestGetMessages_Paging(t *testing.T) {
	repo := newFakeChatRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	conv, err := svc.GetOrCreateConversation(ctx, 1, 2, nil)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := svc.SendMessage(ctx, 1, conv.ID, fmt.Sprintf("msg %d", i))
		require.NoError(t, err)
	}

	page, hasMore, err := svc.GetMessages(ctx, 2, conv.ID, 2, nil)
	require.NoError(t, err)
	assert.True(t, hasMore)
	require.Len(t, page, 2)
	assert.Equal(t, "msg 3", page[0].Content)
	assert.Equal(t, "msg 4", page[1].Content)

	older, hasMore, err := svc.GetMessages(ctx, 2, conv.ID, 2, &page[0].ID)
	require.NoError(t, err)
	assert.True(t, hasMore)
	require.Len(t, older, 2)
	assert.Equal(t, "msg 1", older[0].Content)
	assert.Equal(t, "msg 2", older[1].Content)

	oldest, hasMore, err := svc.GetMessages(ctx, 2, conv.ID, 2, &older[0].ID)
	require.NoError(t, err)
	assert.False(t, hasMore)
	require.Len(t, oldest, 1)
	assert.Equal(t, "msg 0", oldest[0].Content)
}
