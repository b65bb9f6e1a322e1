// File: internal/domain/message.go
package domain

import "time"

// Message roles. Roles are restricted to this two-value set.
const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
)

// ValidMessageRole reports whether role is one of the allowed message roles.
func ValidMessageRole(role string) bool {
	return role == MessageRoleUser || role == MessageRoleAssistant
}

// Message represents a single turn within a chat. Messages are append-only
// and strictly ordered by insertion; they have no lifecycle outside their chat.
type Message struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	ChatID    uint      `json:"chat_id" gorm:"index;not null"`
	Role      string    `json:"role" gorm:"not null"`
	Content   string    `json:"content" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}
