package app

import (
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"quizrush/internal/config"
	"quizrush/internal/domain"
)

// roomCodeChars deliberately omits ambiguous characters (0/O, 1/I/L)
const roomCodeChars = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const (
	cleanupInterval = 5 * time.Minute
	staleLobbyAge   = 30 * time.Minute
	finishedLinger  = 10 * time.Minute
)

// GameHub manages all active game sessions
type GameHub struct {
	mu       sync.RWMutex
	sessions map[string]*GameSession

	logger    *slog.Logger
	clock     Clock
	rng       *rand.Rand
	rngMu     sync.Mutex
	providers Providers
	cfg       config.GameConfig

	done chan struct{}
}

// NewGameHub creates a hub and starts its background cleanup
func NewGameHub(cfg config.GameConfig, providers Providers, clock Clock, rng *rand.Rand, logger *slog.Logger) *GameHub {
	hub := &GameHub{
		sessions:  make(map[string]*GameSession),
		logger:    logger,
		clock:     clock,
		rng:       rng,
		providers: providers,
		cfg:       cfg,
		done:      make(chan struct{}),
	}

	go hub.cleanupLoop()

	return hub
}

// generateRoomCode produces a code not currently in use. Caller must hold mu.
func (h *GameHub) generateRoomCode() string {
	h.rngMu.Lock()
	defer h.rngMu.Unlock()

	for {
		code := make([]byte, h.cfg.RoomCodeLength)
		for i := range code {
			code[i] = roomCodeChars[h.rng.Intn(len(roomCodeChars))]
		}
		if _, exists := h.sessions[string(code)]; !exists {
			return string(code)
		}
	}
}

// newSessionRng derives an independent generator for one room. *rand.Rand
// is not safe for concurrent use, and each session locks only its own
// mutex, so sessions must never share the hub's generator.
func (h *GameHub) newSessionRng() *rand.Rand {
	h.rngMu.Lock()
	defer h.rngMu.Unlock()
	return rand.New(rand.NewSource(h.rng.Int63()))
}

// CreateSession creates a new room and returns its session
func (h *GameHub) CreateSession() *GameSession {
	h.mu.Lock()
	defer h.mu.Unlock()

	code := h.generateRoomCode()
	session := NewGameSession(code, h.cfg, h.providers, h.clock, h.newSessionRng(), h.logger)
	h.sessions[code] = session

	h.logger.Info("room created", "roomCode", code, "totalRooms", len(h.sessions))
	return session
}

// GetSession returns the session for a room code
func (h *GameHub) GetSession(roomCode string) (*GameSession, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	session, ok := h.sessions[roomCode]
	return session, ok
}

// DeleteSession closes and removes a session
func (h *GameHub) DeleteSession(roomCode string) {
	h.mu.Lock()
	session, ok := h.sessions[roomCode]
	if ok {
		delete(h.sessions, roomCode)
	}
	h.mu.Unlock()

	if ok {
		session.Close()
		h.logger.Info("room deleted", "roomCode", roomCode)
	}
}

// SessionCount returns the number of active rooms
func (h *GameHub) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// PlayerCount returns the total number of players across all rooms
func (h *GameHub) PlayerCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, session := range h.sessions {
		total += session.GetPlayerCount()
	}
	return total
}

// cleanupLoop periodically removes abandoned rooms
func (h *GameHub) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-h.done:
			return
		case <-ticker.C:
			h.cleanupStale()
		}
	}
}

// cleanupStale removes empty rooms, lobbies nobody started and games that
// finished a while ago.
func (h *GameHub) cleanupStale() {
	now := h.clock.Now()

	h.mu.Lock()
	var stale []*GameSession
	for code, session := range h.sessions {
		remove := false
		switch {
		case session.GetPlayerCount() == 0 && now.Sub(session.GetCreatedAt()) > cleanupInterval:
			remove = true
		case session.GetPhase() == domain.PhaseLobby && now.Sub(session.GetCreatedAt()) > staleLobbyAge:
			remove = true
		case session.GetPhase() == domain.PhaseFinished && !session.GetFinishedAt().IsZero() && now.Sub(session.GetFinishedAt()) > finishedLinger:
			remove = true
		}
		if remove {
			delete(h.sessions, code)
			stale = append(stale, session)
		}
	}
	h.mu.Unlock()

	for _, session := range stale {
		session.Close()
		h.logger.Info("cleaned up stale room", "roomCode", session.GetRoomCode())
	}
}

// Close shuts down the hub and all sessions
func (h *GameHub) Close() {
	close(h.done)

	h.mu.Lock()
	sessions := make([]*GameSession, 0, len(h.sessions))
	for _, session := range h.sessions {
		sessions = append(sessions, session)
	}
	h.sessions = make(map[string]*GameSession)
	h.mu.Unlock()

	for _, session := range sessions {
		session.Close()
	}
}
