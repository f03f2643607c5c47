package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mo-shab/tutor/internal/domain"
)

type MessageRepo struct{ db *gorm.DB }

func NewMessageRepo(db *gorm.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// ConversationBetween finds the conversation for a pair of users regardless
// of which side created it. ErrNotFound when they have never talked.
func (r *MessageRepo) ConversationBetween(ctx context.Context, a, b string) (*domain.Conversation, error) {
	var c domain.Conversation
	err := r.db.WithContext(ctx).
		Where("(user_a_id = ? AND user_b_id = ?) OR (user_a_id = ? AND user_b_id = ?)", a, b, b, a).
		First(&c).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &c, nil
}

func (r *MessageRepo) ConversationByID(ctx context.Context, id string) (*domain.Conversation, error) {
	var c domain.Conversation
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &c, nil
}

func (r *MessageRepo) CreateConversation(ctx context.Context, c *domain.Conversation) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(c).Error
}

// TouchConversation bumps updated_at so inbox ordering follows activity.
func (r *MessageRepo) TouchConversation(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&domain.Conversation{}).
		Where("id = ?", id).Update("updated_at", time.Now()).Error
}

func (r *MessageRepo) CreateMessage(ctx context.Context, m *domain.Message) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MessageRepo) MessagesIn(ctx context.Context, conversationID string) ([]domain.Message, error) {
	var out []domain.Message
	err := r.db.WithContext(ctx).Where("conversation_id = ?", conversationID).
		Order("created_at ASC").Find(&out).Error
	return out, err
}

// UnreadCount counts messages in the conversation the viewer has not read
// and did not author.
func (r *MessageRepo) UnreadCount(ctx context.Context, conversationID, viewerID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Message{}).
		Where("conversation_id = ? AND is_read = ? AND sender_id <> ?", conversationID, false, viewerID).
		Count(&n).Error
	return n, err
}

// MarkRead flags every message the viewer has not authored as read.
func (r *MessageRepo) MarkRead(ctx context.Context, conversationID, viewerID string) error {
	return r.db.WithContext(ctx).Model(&domain.Message{}).
		Where("conversation_id = ? AND is_read = ? AND sender_id <> ?", conversationID, false, viewerID).
		Update("is_read", true).Error
}

// ConversationsFor lists the user's conversations newest-activity first.
func (r *MessageRepo) ConversationsFor(ctx context.Context, userID string) ([]domain.Conversation, error) {
	var out []domain.Conversation
	err := r.db.WithContext(ctx).
		Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Order("updated_at DESC").Find(&out).Error
	return out, err
}

// LastMessage returns the newest message of a conversation, nil when empty.
func (r *MessageRepo) LastMessage(ctx context.Context, conversationID string) (*domain.Message, error) {
	var m domain.Message
	err := r.db.WithContext(ctx).Where("conversation_id = ?", conversationID).
		Order("created_at DESC").First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}
