package chat

import "errors"

var (
	ErrEmptyMessage         = errors.New("message content cannot be empty")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotParticipant       = errors.New("you are not a participant of this conversation")
	ErrRecipientNotFound    = errors.New("recipient not found")
	ErrCannotMessageSelf    = errors.New("cannot send message to yourself")
)
