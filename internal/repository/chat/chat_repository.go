// File: internal/repository/chat/chat_repository.go
package chat

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/iitigpt/go-campusgpt/internal/domain"
)

var ErrChatNotFound = errors.New("chat not found")

type gormChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &gormChatRepository{db: db}
}

func (r *gormChatRepository) Create(ctx context.Context, chat *domain.Chat) (*domain.Chat, error) {
	if chat == nil {
		return nil, errors.New("chat cannot be nil")
	}
	if chat.UserID == 0 {
		return nil, errors.New("user ID is required")
	}

	if err := r.db.WithContext(ctx).Create(chat).Error; err != nil {
		return nil, errors.New("database error creating chat")
	}
	return chat, nil
}

// FindByIDAndUserID returns the chat only when it is owned by userID.
// Absent and foreign chats are indistinguishable to the caller.
func (r *gormChatRepository) FindByIDAndUserID(ctx context.Context, chatID, userID uint) (*domain.Chat, error) {
	if chatID == 0 || userID == 0 {
		return nil, ErrChatNotFound
	}

	var chat domain.Chat
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", chatID, userID).
		First(&chat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, errors.New("database query failed")
	}
	return &chat, nil
}

func (r *gormChatRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.Chat, error) {
	if userID == 0 {
		return nil, errors.New("invalid user ID")
	}

	var chats []domain.Chat
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC, id DESC").
		Find(&chats).Error
	if err != nil {
		return nil, errors.New("database error fetching chats")
	}
	return chats, nil
}

// Delete removes the chat only when owned by userID. Deleting an absent or
// foreign chat is a no-op, not an error.
func (r *gormChatRepository) Delete(ctx context.Context, chatID, userID uint) error {
	if chatID == 0 || userID == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", chatID, userID).
		Delete(&domain.Chat{})
	if result.Error != nil {
		return errors.New("database error deleting chat")
	}
	return nil
}

// TouchUpdatedAt advances the chat's updated_at to ts with a single atomic
// UPDATE, so concurrent appends cannot clobber one another.
func (r *gormChatRepository) TouchUpdatedAt(ctx context.Context, chatID uint, ts time.Time) error {
	if chatID == 0 {
		return errors.New("invalid chat ID")
	}

	result := r.db.WithContext(ctx).
		Model(&domain.Chat{}).
		Where("id = ?", chatID).
		Update("updated_at", ts)
	if result.Error != nil {
		return errors.New("database error updating chat timestamp")
	}
	if result.RowsAffected == 0 {
		return ErrChatNotFound
	}
	return nil
}
