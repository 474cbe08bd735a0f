package app

import (
	"time"

	"quizrush/internal/domain"
)

// EventType represents the type of outbound game event
type EventType string

const (
	EventLobbyUpdate EventType = "LOBBY_UPDATE"
	EventStateUpdate EventType = "STATE_UPDATE"
	EventPlayerView  EventType = "PLAYER_VIEW"
	EventGameEnded   EventType = "GAME_ENDED"
)

// Event is an outbound message queued for delivery. PlayerID empty means
// broadcast to every client in the room; otherwise the event is private to
// that player and must never reach anyone else.
type Event struct {
	Type      EventType   `json:"type"`
	RoomID    string      `json:"roomId"`
	PlayerID  string      `json:"playerId,omitempty"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// LobbyUpdatePayload is sent whenever lobby membership changes
type LobbyUpdatePayload struct {
	Players  []domain.PlayerInfo `json:"players"`
	HostID   string              `json:"hostId"`
	CanStart bool                `json:"canStart"`
}
