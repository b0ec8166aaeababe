package entities

import "time"

// ChatRole identifies the author of a chat message.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one turn of an assistant conversation. The transcript lives
// in the client; the server only receives the history it needs to build the
// next prompt.
type ChatMessage struct {
	ID        string    `json:"id,omitempty"`
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}
