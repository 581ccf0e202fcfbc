// Package models holds the domain records shared between the session core,
// the record store, and the HTTP surface.
package models

// AccessLevel is the coarse capability tier gating which views are
// reachable. It is a soft UX gate, not an authentication boundary: the
// codes are checked in client-visible logic and only distinguish casual
// visitors from known users.
type AccessLevel string

const (
	AccessNone   AccessLevel = "none"
	AccessClient AccessLevel = "client"
	AccessAdmin  AccessLevel = "admin"
)

// Valid reports whether the level is one of the three enumerated values.
// Anything else read back from storage is treated as AccessNone.
func (l AccessLevel) Valid() bool {
	switch l {
	case AccessNone, AccessClient, AccessAdmin:
		return true
	}
	return false
}

// AdminSettings is saved and loaded as a unit; a save takes effect
// immediately for subsequent access-code checks.
type AdminSettings struct {
	AccessSecret string `json:"accessSecret"`
	GateEnabled  bool   `json:"isGateEnabled"`
}

// HistoryItem records one completed generation. Items are never mutated
// after creation; they are only prepended, selected, or deleted.
type HistoryItem struct {
	ID             string `json:"id"`
	Prompt         string `json:"prompt"`
	Timestamp      int64  `json:"timestamp"` // epoch milliseconds
	UserInput      string `json:"userInput"`
	Tone           string `json:"tone"`
	TargetAudience string `json:"targetAudience"`
}

// Role labels one side of a chat exchange.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// ChatMessage is one entry in a refine or test thread. Content is mutable
// only while the message is the most recently appended model message during
// active streaming; after that it is frozen until the thread resets.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Thread names one of the two chat channels.
type Thread string

const (
	ThreadRefine Thread = "refine"
	ThreadTest   Thread = "test"
)
