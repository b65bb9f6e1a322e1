package message

import (
	"context"

	"github.com/iitigpt/go-campusgpt/internal/domain"
)

// MessageRepository handles the append-only message log of a chat.
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) (*domain.Message, error)
	FindByChatID(ctx context.Context, chatID uint) ([]domain.Message, error)
	DeleteByChatID(ctx context.Context, chatID uint) error
}
