// File: internal/repository/message/message_repository.go
package message

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/iitigpt/go-campusgpt/internal/domain"
)

type gormMessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &gormMessageRepository{db: db}
}

// Create inserts one message. There is no deduplication: a second identical
// call inserts a second, distinct row.
func (r *gormMessageRepository) Create(ctx context.Context, message *domain.Message) (*domain.Message, error) {
	if message == nil {
		return nil, errors.New("message cannot be nil")
	}
	if message.ChatID == 0 {
		return nil, errors.New("chat ID is required")
	}
	if !domain.ValidMessageRole(message.Role) {
		return nil, errors.New("invalid message role")
	}
	if strings.TrimSpace(message.Content) == "" {
		return nil, errors.New("message content cannot be empty")
	}

	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return nil, errors.New("database error creating message")
	}
	return message, nil
}

// FindByChatID returns the chat's messages in insertion order. The id
// tiebreak keeps the order stable when timestamps collide.
func (r *gormMessageRepository) FindByChatID(ctx context.Context, chatID uint) ([]domain.Message, error) {
	if chatID == 0 {
		return nil, errors.New("invalid chat ID")
	}

	var messages []domain.Message
	err := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, errors.New("database error fetching messages")
	}
	return messages, nil
}

// DeleteByChatID removes every message belonging to chatID.
func (r *gormMessageRepository) DeleteByChatID(ctx context.Context, chatID uint) error {
	if chatID == 0 {
		return errors.New("invalid chat ID")
	}

	result := r.db.WithContext(ctx).Where("chat_id = ?", chatID).Delete(&domain.Message{})
	if result.Error != nil {
		return errors.New("database error deleting messages")
	}
	return nil
}
