package service

import (
	"context"
	"errors"

	"github.com/mo-shab/tutor/internal/domain"
	"github.com/mo-shab/tutor/internal/repository"
)

type MessageSvc struct {
	msgs     *repository.MessageRepo
	users    *repository.UserRepo
	notifier Notifier
}

func NewMessageSvc(msgs *repository.MessageRepo, users *repository.UserRepo, n Notifier) *MessageSvc {
	if n == nil {
		n = NopNotifier{}
	}
	return &MessageSvc{msgs: msgs, users: users, notifier: n}
}

// Send persists the message first, then pushes best-effort events to whoever
// is connected. The write is the source of truth; a recipient without a live
// connection simply sees current state on their next fetch.
func (s *MessageSvc) Send(ctx context.Context, senderID, receiverID, content string) (*domain.Message, error) {
	if senderID == receiverID {
		return nil, domain.ErrSelfMessage
	}
	if _, err := s.users.ByID(ctx, receiverID); err != nil {
		return nil, err
	}

	conv, err := s.msgs.ConversationBetween(ctx, senderID, receiverID)
	if errors.Is(err, domain.ErrNotFound) {
		conv = &domain.Conversation{UserAID: senderID, UserBID: receiverID}
		err = s.msgs.CreateConversation(ctx, conv)
	}
	if err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		Content:        content,
	}
	if err := s.msgs.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	if err := s.msgs.TouchConversation(ctx, conv.ID); err != nil {
		return nil, err
	}

	s.notifier.NewMessage(receiverID, msg)
	s.pushConversationViews(ctx, conv, senderID, receiverID)

	return msg, nil
}

// pushConversationViews emits conversationUpdated to both sides with
// per-viewer unread counts: the sender just read everything they wrote, so
// their count is 0; the receiver's is computed fresh.
func (s *MessageSvc) pushConversationViews(ctx context.Context, conv *domain.Conversation, senderID, receiverID string) {
	last, err := s.msgs.LastMessage(ctx, conv.ID)
	if err != nil {
		return
	}
	fresh, err := s.msgs.ConversationByID(ctx, conv.ID)
	if err != nil {
		return
	}

	s.notifier.ConversationUpdated(senderID, &domain.ConversationSummary{
		Conversation: *fresh,
		LastMessage:  last,
		UnreadCount:  0,
	})

	unread, err := s.msgs.UnreadCount(ctx, conv.ID, receiverID)
	if err != nil {
		return
	}
	s.notifier.ConversationUpdated(receiverID, &domain.ConversationSummary{
		Conversation: *fresh,
		LastMessage:  last,
		UnreadCount:  unread,
	})
}

// Conversations returns the caller's inbox with last message and unread count
// per row, newest activity first.
func (s *MessageSvc) Conversations(ctx context.Context, userID string) ([]domain.ConversationSummary, error) {
	convs, err := s.msgs.ConversationsFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ConversationSummary, 0, len(convs))
	for i := range convs {
		last, err := s.msgs.LastMessage(ctx, convs[i].ID)
		if err != nil {
			return nil, err
		}
		unread, err := s.msgs.UnreadCount(ctx, convs[i].ID, userID)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.ConversationSummary{
			Conversation: convs[i],
			LastMessage:  last,
			UnreadCount:  unread,
		})
	}
	return out, nil
}

// Messages lists a conversation's messages; only participants may read it.
func (s *MessageSvc) Messages(ctx context.Context, userID, conversationID string) ([]domain.Message, error) {
	conv, err := s.msgs.ConversationByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(userID) {
		return nil, domain.ErrForbidden
	}
	return s.msgs.MessagesIn(ctx, conversationID)
}

// MarkRead flags everything the caller hasn't authored as read.
func (s *MessageSvc) MarkRead(ctx context.Context, userID, conversationID string) error {
	conv, err := s.msgs.ConversationByID(ctx, conversationID)
	if err != nil {
		return err
	}
	if !conv.HasParticipant(userID) {
		return domain.ErrForbidden
	}
	return s.msgs.MarkRead(ctx, conversationID, userID)
}
