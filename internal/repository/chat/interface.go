package chat

import (
	"context"
	"time"

	"github.com/iitigpt/go-campusgpt/internal/domain"
)

// ChatRepository handles chat data operations. Every read or mutation that
// takes a userID is ownership-scoped: a chat owned by another user behaves
// exactly like a chat that does not exist.
type ChatRepository interface {
	Create(ctx context.Context, chat *domain.Chat) (*domain.Chat, error)
	FindByIDAndUserID(ctx context.Context, chatID, userID uint) (*domain.Chat, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.Chat, error)
	Delete(ctx context.Context, chatID, userID uint) error
	TouchUpdatedAt(ctx context.Context, chatID uint, ts time.Time) error
}
