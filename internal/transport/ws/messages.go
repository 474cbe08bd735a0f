package ws

import (
	"time"

	"quizrush/internal/domain"
)

// MessageType represents the type of WebSocket message
type MessageType string

// Client → Server message types
const (
	MsgJoinLobby         MessageType = "join_lobby"
	MsgStartGame         MessageType = "start_game"
	MsgSelectCategory    MessageType = "select_category"
	MsgSubmitAnswer      MessageType = "submit_answer"
	MsgSubmitDictionary  MessageType = "submit_dictionary_answer"
	MsgSubmitRankingVote MessageType = "submit_ranking_vote"
	MsgActivateBooster   MessageType = "activate_booster"
	MsgLeaveGame         MessageType = "leave_game"
	MsgPing              MessageType = "ping"
)

// Server → Client message types
const (
	MsgConnected     MessageType = "connected"
	MsgError         MessageType = "error"
	MsgBoosterResult MessageType = "booster_result"
	MsgPong          MessageType = "pong"
)

// ClientMessage represents a message from client to server
type ClientMessage struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// ServerMessage represents a message from server to client
type ServerMessage struct {
	Type      MessageType `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// NewServerMessage creates a new server message with current timestamp
func NewServerMessage(msgType MessageType, payload interface{}) *ServerMessage {
	return &ServerMessage{
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// ConnectedPayload is the payload for the connected message. State and View
// are only set when a game is already running, so reconnecting clients can
// resynchronize in one message.
type ConnectedPayload struct {
	PlayerID string                  `json:"playerId"`
	RoomCode string                  `json:"roomCode"`
	State    *domain.StateProjection `json:"state,omitempty"`
	View     *domain.PlayerView      `json:"view,omitempty"`
}

// ErrorPayload is the payload for error messages. Code carries the stable
// reason code clients switch on; Message is for humans.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BoosterResultPayload reports the outcome of a booster activation to the
// activator.
type BoosterResultPayload struct {
	Kind    domain.BoosterKind `json:"kind"`
	Blocked bool               `json:"blocked"`
}

// Transport-level error codes. Domain rejections use domain.ReasonCode
// values instead.
const (
	ErrCodeInvalidMessage = "invalid_message"
	ErrCodeGameFull       = "game_full"
	ErrCodeGameStarted    = "game_already_started"
	ErrCodeNotHost        = "not_host"
	ErrCodeTooFewPlayers  = "not_enough_players"
	ErrCodeRateLimited    = "rate_limited"
	ErrCodeInternalError  = "internal_error"
)
