package message

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/iitigpt/go-campusgpt/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.Chat{}, &domain.Message{}); err != nil {
		t.Fatalf("migrating: %v", err)
	}
	return db
}

func TestCreate_AppendOnlyOrdering(t *testing.T) {
	repo := NewMessageRepository(newTestDB(t))
	ctx := context.Background()

	contents := []string{"What are the library hours?", "9am-9pm", "Thanks!"}
	roles := []string{domain.MessageRoleUser, domain.MessageRoleAssistant, domain.MessageRoleUser}
	for i := range contents {
		_, err := repo.Create(ctx, &domain.Message{ChatID: 1, Role: roles[i], Content: contents[i]})
		if err != nil {
			t.Fatalf("Create %d error: %v", i, err)
		}
	}

	messages, err := repo.FindByChatID(ctx, 1)
	if err != nil {
		t.Fatalf("FindByChatID error: %v", err)
	}
	if len(messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(messages))
	}
	for i, m := range messages {
		if m.Content != contents[i] || m.Role != roles[i] {
			t.Fatalf("message %d out of order: got %s/%q", i, m.Role, m.Content)
		}
	}
}

func TestCreate_NotIdempotent(t *testing.T) {
	repo := NewMessageRepository(newTestDB(t))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := repo.Create(ctx, &domain.Message{ChatID: 1, Role: domain.MessageRoleUser, Content: "same"})
		if err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}

	messages, err := repo.FindByChatID(ctx, 1)
	if err != nil {
		t.Fatalf("FindByChatID error: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("identical appends must both land, got %d messages", len(messages))
	}
	if messages[0].ID == messages[1].ID {
		t.Fatal("expected two distinct rows")
	}
}

func TestCreate_RejectsInvalidInput(t *testing.T) {
	repo := NewMessageRepository(newTestDB(t))
	ctx := context.Background()

	if _, err := repo.Create(ctx, &domain.Message{ChatID: 1, Role: "system", Content: "x"}); err == nil {
		t.Fatal("expected error for role outside user/assistant")
	}
	if _, err := repo.Create(ctx, &domain.Message{ChatID: 1, Role: domain.MessageRoleUser, Content: "  "}); err == nil {
		t.Fatal("expected error for blank content")
	}
}

func TestDeleteByChatID(t *testing.T) {
	repo := NewMessageRepository(newTestDB(t))
	ctx := context.Background()

	for _, chatID := range []uint{1, 1, 2} {
		if _, err := repo.Create(ctx, &domain.Message{ChatID: chatID, Role: domain.MessageRoleUser, Content: "hi"}); err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}

	if err := repo.DeleteByChatID(ctx, 1); err != nil {
		t.Fatalf("DeleteByChatID error: %v", err)
	}

	gone, err := repo.FindByChatID(ctx, 1)
	if err != nil {
		t.Fatalf("FindByChatID error: %v", err)
	}
	if len(gone) != 0 {
		t.Fatalf("expected chat 1 messages gone, got %d", len(gone))
	}

	kept, err := repo.FindByChatID(ctx, 2)
	if err != nil {
		t.Fatalf("FindByChatID error: %v", err)
	}
	if len(kept) != 1 {
		t.Fatalf("expected chat 2 untouched, got %d messages", len(kept))
	}
}
