package service

import "github.com/mo-shab/tutor/internal/domain"

// Notifier is the best-effort push capability the services depend on. The
// persisted store is always written first and stays authoritative; a
// recipient without a live connection is a no-op, never an error, so none of
// these methods return one.
type Notifier interface {
	NewMessage(userID string, msg *domain.Message)
	ConversationUpdated(userID string, view *domain.ConversationSummary)
	ForceLogout(userID string)
}

// NopNotifier satisfies Notifier for binaries and tests that run without a
// live relay.
type NopNotifier struct{}

func (NopNotifier) NewMessage(string, *domain.Message)                      {}
func (NopNotifier) ConversationUpdated(string, *domain.ConversationSummary) {}
func (NopNotifier) ForceLogout(string)                                      {}
