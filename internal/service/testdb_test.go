package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mo-shab/tutor/internal/domain"
	"github.com/mo-shab/tutor/internal/repository"
)

// newTestDB opens a file-backed sqlite database in the test's temp dir.
// _txlock=immediate makes concurrent write transactions queue instead of
// deadlocking on lock upgrade, which keeps the concurrency tests honest.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000&_txlock=immediate"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := repository.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func seedUser(t *testing.T, db *gorm.DB, role domain.Role) *domain.User {
	t.Helper()
	u := &domain.User{
		ID:       uuid.NewString(),
		Email:    uuid.NewString() + "@example.com",
		FullName: "Test " + string(role),
		Role:     role,
		IsActive: true,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

// capturePublisher records published events for assertions.
type capturePublisher struct {
	keys []string
}

func (p *capturePublisher) PublishJSON(_ context.Context, key string, _ any) error {
	p.keys = append(p.keys, key)
	return nil
}

// captureNotifier records pushes per user for assertions.
type captureNotifier struct {
	messages      map[string][]*domain.Message
	conversations map[string][]*domain.ConversationSummary
	logouts       []string
}

func newCaptureNotifier() *captureNotifier {
	return &captureNotifier{
		messages:      make(map[string][]*domain.Message),
		conversations: make(map[string][]*domain.ConversationSummary),
	}
}

func (n *captureNotifier) NewMessage(userID string, msg *domain.Message) {
	n.messages[userID] = append(n.messages[userID], msg)
}

func (n *captureNotifier) ConversationUpdated(userID string, view *domain.ConversationSummary) {
	n.conversations[userID] = append(n.conversations[userID], view)
}

func (n *captureNotifier) ForceLogout(userID string) {
	n.logouts = append(n.logouts, userID)
}
