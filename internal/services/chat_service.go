// File: internal/services/chat_service.go
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/iitigpt/go-campusgpt/internal/domain"
	"github.com/iitigpt/go-campusgpt/internal/repository/chat"
	"github.com/iitigpt/go-campusgpt/internal/repository/message"
	"github.com/iitigpt/go-campusgpt/internal/services/assistant"
)

const (
	maxTitleLength   = 50
	defaultChatTitle = "New Chat"

	// Returned as the assistant turn when the inference service cannot be
	// reached. The user's question is already persisted at that point, so the
	// turn is recoverable by asking again.
	assistantUnavailableReply = "Sorry, I couldn't reach the assistant right now. Please try again in a moment."
)

var (
	ErrInvalidRole  = errors.New("invalid message role")
	ErrEmptyContent = errors.New("message content cannot be empty")
)

// ChatService owns the chat aggregate: listing, reads, appends, deletion, and
// the ask flow against the assistant collaborator. Every operation takes the
// authenticated user id and treats foreign chats as non-existent.
type ChatService struct {
	chatRepo    chat.ChatRepository
	messageRepo message.MessageRepository
	assistant   assistant.Provider
	logger      Logger
}

func NewChatService(
	chatRepo chat.ChatRepository,
	messageRepo message.MessageRepository,
	provider assistant.Provider,
	logger Logger,
) (*ChatService, error) {
	if chatRepo == nil {
		return nil, errors.New("chat repository is required")
	}
	if messageRepo == nil {
		return nil, errors.New("message repository is required")
	}
	if provider == nil {
		return nil, errors.New("assistant provider is required")
	}
	if logger == nil {
		logger = &NoOpLogger{}
	}
	return &ChatService{
		chatRepo:    chatRepo,
		messageRepo: messageRepo,
		assistant:   provider,
		logger:      logger,
	}, nil
}

// ListChats returns the user's chat summaries, most recently updated first.
// Message bodies are not loaded for list views.
func (s *ChatService) ListChats(ctx context.Context, userID uint) ([]domain.Chat, error) {
	return s.chatRepo.FindByUserID(ctx, userID)
}

// GetChat returns the full chat including its messages, or ErrChatNotFound
// when the chat is absent or owned by someone else.
func (s *ChatService) GetChat(ctx context.Context, userID, chatID uint) (*domain.Chat, error) {
	chatRecord, err := s.chatRepo.FindByIDAndUserID(ctx, chatID, userID)
	if err != nil {
		return nil, err
	}
	messages, err := s.messageRepo.FindByChatID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	chatRecord.Messages = messages
	return chatRecord, nil
}

// CreateChat starts a new chat seeded with a single user message. An empty
// title is derived from that first message.
func (s *ChatService) CreateChat(ctx context.Context, userID uint, title, firstMessage string) (*domain.Chat, error) {
	if strings.TrimSpace(firstMessage) == "" {
		return nil, ErrEmptyContent
	}
	if strings.TrimSpace(title) == "" {
		title = deriveTitle(firstMessage)
	}

	created, err := s.chatRepo.Create(ctx, &domain.Chat{UserID: userID, Title: title})
	if err != nil {
		return nil, err
	}
	if _, err := s.appendToChat(ctx, created.ID, domain.MessageRoleUser, firstMessage); err != nil {
		return nil, err
	}

	s.logger.Info("chat created", "chat_id", created.ID, "user_id", userID)
	return s.GetChat(ctx, userID, created.ID)
}

// AppendMessage records one turn verbatim and advances the chat's updated_at
// to the message timestamp. It is deliberately not idempotent: identical
// calls append distinct messages.
func (s *ChatService) AppendMessage(ctx context.Context, userID, chatID uint, role, content string) (*domain.Chat, error) {
	if !domain.ValidMessageRole(role) {
		return nil, ErrInvalidRole
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if _, err := s.chatRepo.FindByIDAndUserID(ctx, chatID, userID); err != nil {
		return nil, err
	}

	if _, err := s.appendToChat(ctx, chatID, role, content); err != nil {
		return nil, err
	}
	return s.GetChat(ctx, userID, chatID)
}

// SendMessage is the ask flow: persist the user's question, call the
// assistant with the prior transcript, and persist the answer. A collaborator
// failure never rolls back the user turn; the chat gets an apology
// placeholder as the assistant turn instead.
func (s *ChatService) SendMessage(ctx context.Context, userID, chatID uint, question string) (*domain.Chat, error) {
	if strings.TrimSpace(question) == "" {
		return nil, ErrEmptyContent
	}
	if _, err := s.chatRepo.FindByIDAndUserID(ctx, chatID, userID); err != nil {
		return nil, err
	}

	// History is the transcript before this question.
	prior, err := s.messageRepo.FindByChatID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if _, err := s.appendToChat(ctx, chatID, domain.MessageRoleUser, question); err != nil {
		return nil, err
	}

	history := make([]assistant.Turn, len(prior))
	for i, m := range prior {
		history[i] = assistant.Turn{Role: m.Role, Content: m.Content}
	}

	answer, err := s.assistant.Ask(ctx, question, history)
	if err != nil {
		s.logger.Warn("assistant unavailable, returning placeholder",
			"chat_id", chatID, "user_id", userID, "error", err)
		answer = assistantUnavailableReply
	}

	if _, err := s.appendToChat(ctx, chatID, domain.MessageRoleAssistant, answer); err != nil {
		return nil, err
	}
	return s.GetChat(ctx, userID, chatID)
}

// DeleteChat removes the chat and its messages when owned by userID.
// Deleting an absent or foreign chat is a no-op.
func (s *ChatService) DeleteChat(ctx context.Context, userID, chatID uint) error {
	if _, err := s.chatRepo.FindByIDAndUserID(ctx, chatID, userID); err != nil {
		if errors.Is(err, chat.ErrChatNotFound) {
			return nil
		}
		return err
	}

	if err := s.messageRepo.DeleteByChatID(ctx, chatID); err != nil {
		return err
	}
	if err := s.chatRepo.Delete(ctx, chatID, userID); err != nil {
		return err
	}

	s.logger.Info("chat deleted", "chat_id", chatID, "user_id", userID)
	return nil
}

// appendToChat inserts the message and advances the chat's updated_at to the
// same timestamp.
func (s *ChatService) appendToChat(ctx context.Context, chatID uint, role, content string) (*domain.Message, error) {
	now := time.Now()
	msg := &domain.Message{ChatID: chatID, Role: role, Content: content, CreatedAt: now}
	if _, err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}
	if err := s.chatRepo.TouchUpdatedAt(ctx, chatID, now); err != nil {
		return nil, err
	}
	return msg, nil
}

// deriveTitle builds a chat title from the first user message: the message
// verbatim up to 50 characters, truncated with an ellipsis marker beyond that.
func deriveTitle(firstMessage string) string {
	title := strings.TrimSpace(firstMessage)
	if title == "" {
		return defaultChatTitle
	}
	runes := []rune(title)
	if len(runes) <= maxTitleLength {
		return title
	}
	return string(runes[:maxTitleLength]) + "..."
}
