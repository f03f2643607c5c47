package domain

import "time"

// Conversation holds exactly two participants. UserAID/UserBID are stored in
// insertion order; use HasParticipant / Other rather than comparing columns.
type Conversation struct {
	ID      string `gorm:"primaryKey" json:"id"`
	UserAID string `gorm:"index:idx_conversation_pair" json:"userAId"`
	UserBID string `gorm:"index:idx_conversation_pair" json:"userBId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `gorm:"index" json:"updatedAt"`
}

func (c *Conversation) HasParticipant(userID string) bool {
	return c.UserAID == userID || c.UserBID == userID
}

// Other returns the participant that is not userID.
func (c *Conversation) Other(userID string) string {
	if c.UserAID == userID {
		return c.UserBID
	}
	return c.UserAID
}

type Message struct {
	ID             string `gorm:"primaryKey" json:"id"`
	ConversationID string `gorm:"index" json:"conversationId"`
	SenderID       string `gorm:"index" json:"senderId"`
	Content        string `json:"content"`
	IsRead         bool   `gorm:"index" json:"isRead"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

// ConversationSummary is the per-viewer inbox row: the conversation, its most
// recent message, and how many messages the viewer has not read yet.
type ConversationSummary struct {
	Conversation
	LastMessage *Message `json:"lastMessage,omitempty"`
	UnreadCount int64    `json:"unreadCount"`
}
