package models

import (
	"time"
)

// Message roles as sent to the LLM provider
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is one stored chat message
type Message struct {
	ID        string    `json:"id" badgerhold:"key"` // msg_{uuid}
	Username  string    `json:"username"`
	Role      string    `json:"role"` // user or assistant
	Content   string    `json:"content"`
	Filename  string    `json:"filename,omitempty"` // Attached upload, if any
	Timestamp time.Time `json:"timestamp"`          // UTC
	Seq       uint64    `json:"-"`                  // Monotonic insertion ordinal
}
