package dto

// SendChatRequest is the single inbound message contract. SessionId is
// optional; a blank value falls back to the shared "default" session.
type SendChatRequest struct {
	Message   string `json:"message" validate:"required"`
	SessionId string `json:"session_id"`
}

type SendChatResponse struct {
	Reply     string `json:"reply"`
	Intent    string `json:"intent"`
	Branch    string `json:"branch"`
	SessionId string `json:"session_id"`
}

// SessionStateResponse is the read-only session inspection view.
type SessionStateResponse struct {
	SessionId     string `json:"session_id"`
	Tone          string `json:"tone"`
	Language      string `json:"language"`
	HistoryLength int    `json:"history_length"`
}

// ChatStatsResponse is the usage recorder snapshot.
type ChatStatsResponse struct {
	TotalExchanges int            `json:"total_exchanges"`
	PerSession     map[string]int `json:"per_session"`
}

// PublishChatExchangeMessage is the payload published on the exchange topic.
type PublishChatExchangeMessage struct {
	SessionId string `json:"session_id"`
	Intent    string `json:"intent"`
}
