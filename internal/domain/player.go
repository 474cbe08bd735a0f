package domain

import "time"

// ConnectionStatus represents a player's connection state
type ConnectionStatus string

const (
	StatusConnected    ConnectionStatus = "CONNECTED"
	StatusDisconnected ConnectionStatus = "DISCONNECTED"
)

// Player represents a player in the game. Join order is significant: it is
// the stable order used for tie-breaking in round leader selection.
type Player struct {
	ID       string           `json:"id"`
	Nickname string           `json:"nickname"`
	Status   ConnectionStatus `json:"status"`
	JoinedAt time.Time        `json:"joinedAt"`
}

// NewPlayer creates a new player with the given ID and nickname
func NewPlayer(id, nickname string, now time.Time) *Player {
	return &Player{
		ID:       id,
		Nickname: nickname,
		Status:   StatusConnected,
		JoinedAt: now,
	}
}

// IsConnected returns true if the player is currently connected
func (p *Player) IsConnected() bool {
	return p.Status == StatusConnected
}

// Disconnect marks the player as disconnected
func (p *Player) Disconnect() {
	p.Status = StatusDisconnected
}

// Reconnect marks the player as connected
func (p *Player) Reconnect() {
	p.Status = StatusConnected
}

// PlayerInfo is a safe view of player data for broadcasting
type PlayerInfo struct {
	ID       string           `json:"id"`
	Nickname string           `json:"nickname"`
	Status   ConnectionStatus `json:"status"`
}

// ToInfo converts a Player to PlayerInfo
func (p *Player) ToInfo() PlayerInfo {
	return PlayerInfo{
		ID:       p.ID,
		Nickname: p.Nickname,
		Status:   p.Status,
	}
}
