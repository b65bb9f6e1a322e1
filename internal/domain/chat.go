// File: internal/domain/chat.go
package domain

import "time"

// Chat represents a single conversation thread owned by exactly one user.
// Its message list is only ever mutated through the chat service's append
// operation, so ordering and ownership hold together.
type Chat struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Messages is populated on single-chat reads only; list views return
	// summaries without message bodies.
	Messages []Message `json:"messages,omitempty" gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE"`
}
