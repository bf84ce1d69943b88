package store

// Sender identifies who produced a conversation turn.
type Sender string

const (
	SenderUser      Sender = "User"
	SenderAssistant Sender = "Assistant"
)

// Turn is a single conversation turn. Turns are appended in User/Assistant
// pairs after every fallback exchange and never for direct or command replies.
type Turn struct {
	Sender Sender `json:"sender"`
	Text   string `json:"text"`
}

// Session represents the active conversation state kept in memory.
// It is never persisted; defaults apply on first contact.
type Session struct {
	ID       string `json:"id"`
	Tone     string `json:"tone"`
	Language string `json:"language"`
	History  []Turn `json:"history"`
}

const (
	DefaultTone     = "neutral"
	DefaultLanguage = "English"
)

// NewSession creates a session with default tone and language.
func NewSession(id string) *Session {
	return &Session{
		ID:       id,
		Tone:     DefaultTone,
		Language: DefaultLanguage,
	}
}
