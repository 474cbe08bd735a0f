package app

import (
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"quizrush/internal/config"
	"quizrush/internal/domain"
)

// OrchestratorStatus is the lifecycle state of a room's phase loop
type OrchestratorStatus string

const (
	StatusIdle    OrchestratorStatus = "IDLE"
	StatusRunning OrchestratorStatus = "RUNNING"
	StatusStopped OrchestratorStatus = "STOPPED"
)

// ClientConnection represents a connected client
type ClientConnection interface {
	Send(message interface{}) error
	GetPlayerID() string
	Close() error
}

// Providers bundles the external content sources a game consumes
type Providers struct {
	Questions  domain.QuestionProvider
	Words      domain.WordProvider
	Prompts    domain.PromptProvider
	Categories domain.CategoryProvider
}

// GameSession owns one room: the lobby roster, the authoritative game
// state and the phase orchestration loop. All state mutation happens under
// mu — the session is the single writer for its room. Broadcasts use
// materialized snapshots taken under the lock and sent outside it.
type GameSession struct {
	roomCode  string
	locale    string
	createdAt time.Time

	mu         sync.Mutex
	roster     []*domain.Player
	hostID     string
	game       *domain.GameState
	status     OrchestratorStatus
	finishedAt time.Time

	clients   map[string]ClientConnection
	clientsMu sync.RWMutex

	logger    *slog.Logger
	clock     Clock
	rng       *rand.Rand
	providers Providers
	cfg       config.GameConfig

	wake   chan struct{}
	done   chan struct{}
	events chan *Event
}

// NewGameSession creates a session for one room
func NewGameSession(roomCode string, cfg config.GameConfig, providers Providers, clock Clock, rng *rand.Rand, logger *slog.Logger) *GameSession {
	session := &GameSession{
		roomCode:  roomCode,
		locale:    cfg.Locale,
		createdAt: clock.Now(),
		status:    StatusIdle,
		clients:   make(map[string]ClientConnection),
		logger:    logger.With("roomCode", roomCode),
		clock:     clock,
		rng:       rng,
		providers: providers,
		cfg:       cfg,
		wake:      make(chan struct{}, 1),
		done:      make(chan struct{}),
		events:    make(chan *Event, 100),
	}

	go session.eventLoop()

	return session
}

// GetRoomCode returns the room code
func (s *GameSession) GetRoomCode() string {
	return s.roomCode
}

// GetCreatedAt returns when the room was created
func (s *GameSession) GetCreatedAt() time.Time {
	return s.createdAt
}

// GetPlayerCount returns the number of players in the room
func (s *GameSession) GetPlayerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.roster)
}

// GetPhase returns the current game phase, or the lobby phase before start
func (s *GameSession) GetPhase() domain.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.game == nil {
		return domain.PhaseLobby
	}
	return s.game.Phase
}

// GetFinishedAt returns when the game finished, zero if it has not
func (s *GameSession) GetFinishedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finishedAt
}

// GetStatus returns the orchestrator status
func (s *GameSession) GetStatus() OrchestratorStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// CanJoin checks if a new player can join the room
func (s *GameSession) CanJoin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game == nil && len(s.roster) < s.cfg.MaxPlayers
}

// RegisterClient registers a client connection for a player
func (s *GameSession) RegisterClient(playerID string, client ClientConnection) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[playerID] = client
}

// UnregisterClient removes a client connection
func (s *GameSession) UnregisterClient(playerID string) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	delete(s.clients, playerID)
}

// IsHost checks whether the given player is the room's host
func (s *GameSession) IsHost(playerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hostID == playerID
}

// AddPlayer adds a player to the lobby. The first player becomes host.
func (s *GameSession) AddPlayer(playerID, nickname string) (*domain.Player, error) {
	s.mu.Lock()

	if s.game != nil {
		s.mu.Unlock()
		return nil, domain.ErrGameAlreadyStarted
	}
	if len(s.roster) >= s.cfg.MaxPlayers {
		s.mu.Unlock()
		return nil, domain.ErrGameFull
	}

	player := domain.NewPlayer(playerID, nickname, s.clock.Now())
	s.roster = append(s.roster, player)
	if s.hostID == "" {
		s.hostID = playerID
	}
	s.mu.Unlock()

	s.queueLobbyUpdate()
	return player, nil
}

// RemovePlayer removes a player from the lobby. Players in a running game
// are only marked disconnected, never removed: the state machine's player
// list is fixed for the lifetime of a game.
func (s *GameSession) RemovePlayer(playerID string) error {
	s.mu.Lock()

	if s.game != nil {
		s.mu.Unlock()
		s.DisconnectPlayer(playerID)
		return nil
	}

	idx := -1
	for i, p := range s.roster {
		if p.ID == playerID {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return domain.ErrPlayerNotFound
	}

	s.roster = append(s.roster[:idx], s.roster[idx+1:]...)
	if s.hostID == playerID && len(s.roster) > 0 {
		s.hostID = s.roster[0].ID
	}
	s.mu.Unlock()

	s.queueLobbyUpdate()
	return nil
}

// DisconnectPlayer marks a player as disconnected
func (s *GameSession) DisconnectPlayer(playerID string) {
	s.mu.Lock()
	for _, p := range s.roster {
		if p.ID == playerID {
			p.Disconnect()
		}
	}
	s.mu.Unlock()

	s.queueLobbyUpdate()
}

// ReconnectPlayer marks a player as reconnected and returns them
func (s *GameSession) ReconnectPlayer(playerID string) (*domain.Player, error) {
	s.mu.Lock()
	var found *domain.Player
	for _, p := range s.roster {
		if p.ID == playerID {
			p.Reconnect()
			found = p
			break
		}
	}
	s.mu.Unlock()

	if found == nil {
		return nil, domain.ErrPlayerNotFound
	}

	s.queueLobbyUpdate()
	return found, nil
}

// roundPlan builds the planned round sequence from config. The dictionary
// round, when enabled, is always last.
func (s *GameSession) roundPlan() []domain.RoundType {
	plan := make([]domain.RoundType, 0, s.cfg.QuizRounds+2)
	for i := 0; i < s.cfg.QuizRounds; i++ {
		plan = append(plan, domain.RoundCategoryQuiz)
	}
	if s.cfg.IncludeRanking {
		plan = append(plan, domain.RoundRankingStars)
	}
	if s.cfg.IncludeDictionary {
		plan = append(plan, domain.RoundDictionaryGame)
	}
	return plan
}

func (s *GameSession) timings() domain.Timings {
	return domain.Timings{
		CategorySelection:   config.Seconds(s.cfg.CategorySelectionSeconds),
		Question:            config.Seconds(s.cfg.QuestionSeconds),
		Answering:           config.Seconds(s.cfg.AnsweringSeconds),
		Reveal:              config.Seconds(s.cfg.RevealSeconds),
		Scoreboard:          config.Seconds(s.cfg.ScoreboardSeconds),
		DictionaryWord:      config.Seconds(s.cfg.DictionaryWordSeconds),
		DictionaryAnswering: config.Seconds(s.cfg.DictionaryAnsweringSeconds),
		RankingPrompt:       config.Seconds(s.cfg.RankingPromptSeconds),
		RankingVoting:       config.Seconds(s.cfg.RankingVotingSeconds),
		RankingReveal:       config.Seconds(s.cfg.RankingRevealSeconds),
	}
}

// StartGame builds the authoritative game state for the current roster and
// starts the phase loop. Host only. A finished game may be restarted: the
// old state is discarded wholesale.
func (s *GameSession) StartGame(playerID string) error {
	s.mu.Lock()

	if s.hostID != playerID {
		s.mu.Unlock()
		return domain.ErrNotHost
	}
	if s.game != nil && !s.game.IsFinished() {
		s.mu.Unlock()
		return domain.ErrGameAlreadyStarted
	}
	if len(s.roster) < s.cfg.MinPlayers {
		s.mu.Unlock()
		return domain.ErrNotEnoughPlayers
	}

	now := s.clock.Now()
	game, err := domain.NewGame(s.roomCode, s.locale, s.roster, s.roundPlan(), s.timings(), s.rng, now)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	s.game = game
	s.finishedAt = time.Time{}
	s.startRoundLocked(now)
	s.status = StatusRunning
	s.mu.Unlock()

	s.logger.Info("game started", "players", len(s.roster))
	s.publishState()
	go s.runLoop()

	return nil
}

// runLoop is the room's phase orchestration loop: sleep until the current
// phase's deadline (or an early-completion wake-up), advance, repeat. It
// exits when the game finishes or the session is closed.
func (s *GameSession) runLoop() {
	for {
		s.mu.Lock()
		if s.game == nil || s.game.IsFinished() || s.status != StatusRunning {
			if s.status == StatusRunning {
				s.status = StatusStopped
			}
			s.mu.Unlock()
			return
		}
		deadline := s.game.AnsweringDeadline()
		s.mu.Unlock()

		timer := s.clock.NewTimer(deadline.Sub(s.clock.Now()))

		select {
		case <-s.done:
			timer.Stop()
			return
		case <-s.wake:
			timer.Stop()
		case <-timer.C():
		}

		s.advance()
	}
}

// signalWake nudges the loop without blocking
func (s *GameSession) signalWake() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// advance performs one orchestration step if the current phase is due,
// either because its deadline passed or because every expected player
// already acted.
func (s *GameSession) advance() {
	s.mu.Lock()
	g := s.game
	if g == nil || g.IsFinished() {
		s.mu.Unlock()
		return
	}

	now := s.clock.Now()
	if now.Before(g.AnsweringDeadline()) && !s.earlyCompleteLocked() {
		s.mu.Unlock()
		return
	}

	s.advanceLocked(now)
	finished := g.IsFinished()
	if finished && s.finishedAt.IsZero() {
		s.finishedAt = now
	}
	s.mu.Unlock()

	s.publishState()
	if finished {
		s.logger.Info("game finished")
		s.queueEvent(&Event{Type: EventGameEnded, RoomID: s.roomCode, Timestamp: s.clock.Now()})
	}
}

// earlyCompleteLocked reports whether the current phase may end before its
// deadline because all expected input arrived.
func (s *GameSession) earlyCompleteLocked() bool {
	g := s.game
	switch g.Phase {
	case domain.PhaseCategorySelection:
		return g.CurrentRound != nil && g.CurrentRound.Category != ""
	case domain.PhaseAnswering:
		return g.AllAnswered()
	case domain.PhaseDictionaryAnswering:
		return g.AllDictionaryAnswered()
	case domain.PhaseRankingVoting:
		return g.AllVoted()
	default:
		return false
	}
}

// advanceLocked moves the game to its next phase. Transition errors here
// indicate the orchestrator and the state machine desynchronized; they are
// logged loudly rather than silently absorbed.
func (s *GameSession) advanceLocked(now time.Time) {
	g := s.game

	var err error
	switch g.Phase {
	case domain.PhaseCategorySelection:
		if g.CurrentRound != nil && g.CurrentRound.Category == "" {
			if len(g.AvailableCategories) == 0 {
				s.logger.Warn("no categories available, finishing game")
				err = g.FinishGame(now)
				break
			}
			err = g.SetRoundCategory("", g.AvailableCategories[0])
			if err != nil {
				break
			}
		}
		s.startItemLocked(now)

	case domain.PhaseQuestion:
		err = g.BeginAnswering(now)

	case domain.PhaseAnswering:
		err = g.RevealAnswer(now)

	case domain.PhaseDictionaryWord:
		err = g.BeginDictionaryAnswering(now)

	case domain.PhaseDictionaryAnswering:
		err = g.RevealDictionaryAnswer(now)

	case domain.PhaseRankingPrompt:
		err = g.BeginRankingVoting(now)

	case domain.PhaseRankingVoting:
		err = g.RevealRankingVotes(now)

	case domain.PhaseReveal, domain.PhaseRankingReveal:
		if g.HasMoreQuestionsInRound() {
			s.startItemLocked(now)
		} else {
			err = g.CompleteRound(now)
		}

	case domain.PhaseScoreboard:
		if g.HasMorePlannedRounds() {
			s.startRoundLocked(now)
		} else {
			err = g.FinishGame(now)
		}
	}

	if err != nil {
		s.logger.Error("phase transition failed", "phase", g.Phase, "error", err)
	}
}

// startRoundLocked begins the next planned round. Non-quiz rounds have no
// category selection, so their first item starts immediately.
func (s *GameSession) startRoundLocked(now time.Time) {
	g := s.game

	if err := g.StartNewRound(s.providers.Categories, now); err != nil {
		s.logger.Error("failed to start round", "error", err)
		if ferr := g.FinishGame(now); ferr != nil {
			s.logger.Error("failed to finish game", "error", ferr)
		}
		return
	}

	if g.CurrentRound != nil && g.CurrentRound.Type != domain.RoundCategoryQuiz {
		s.startItemLocked(now)
	}
}

// startItemLocked starts the next question, word or prompt of the current
// round. Content exhaustion completes the round instead of erroring.
func (s *GameSession) startItemLocked(now time.Time) {
	g := s.game
	if g.CurrentRound == nil {
		s.logger.Error("start item with no current round", "phase", g.Phase)
		return
	}

	var (
		ok  bool
		err error
	)
	switch g.CurrentRound.Type {
	case domain.RoundCategoryQuiz:
		ok, err = g.StartNextQuestion(s.providers.Questions, now)
	case domain.RoundDictionaryGame:
		ok, err = g.StartNextDictionaryWord(s.providers.Words, now)
	case domain.RoundRankingStars:
		ok, err = g.StartNextRankingPrompt(s.providers.Prompts, now)
	}

	if err != nil {
		s.logger.Error("content provider failed", "roundType", g.CurrentRound.Type, "error", err)
	}
	if !ok {
		// Out of content: the round is over, not broken.
		if cerr := g.CompleteRound(now); cerr != nil {
			s.logger.Error("failed to complete round", "error", cerr)
		}
	}
}

// SelectCategory records the round leader's pick and advances immediately
func (s *GameSession) SelectCategory(playerID, category string) domain.ReasonCode {
	s.mu.Lock()
	if s.game == nil {
		s.mu.Unlock()
		return domain.ReasonInvalidPhase
	}
	err := s.game.SetRoundCategory(playerID, category)
	s.mu.Unlock()

	if err != nil {
		return domain.ReasonFor(err)
	}
	s.signalWake()
	return domain.ReasonNone
}

// SubmitAnswer records a quiz answer; the phase ends early once everyone
// able to answer has done so.
func (s *GameSession) SubmitAnswer(playerID, optionKey string) domain.ReasonCode {
	s.mu.Lock()
	if s.game == nil {
		s.mu.Unlock()
		return domain.ReasonInvalidPhase
	}
	err := s.game.SubmitAnswer(playerID, optionKey, s.clock.Now())
	all := err == nil && s.game.AllAnswered()
	s.mu.Unlock()

	if err != nil {
		return domain.ReasonFor(err)
	}
	s.publishState()
	if all {
		s.signalWake()
	}
	return domain.ReasonNone
}

// SubmitDictionaryAnswer records a definition pick
func (s *GameSession) SubmitDictionaryAnswer(playerID, optionKey string) domain.ReasonCode {
	s.mu.Lock()
	if s.game == nil {
		s.mu.Unlock()
		return domain.ReasonInvalidPhase
	}
	err := s.game.SubmitDictionaryAnswer(playerID, optionKey, s.clock.Now())
	all := err == nil && s.game.AllDictionaryAnswered()
	s.mu.Unlock()

	if err != nil {
		return domain.ReasonFor(err)
	}
	s.publishState()
	if all {
		s.signalWake()
	}
	return domain.ReasonNone
}

// SubmitRankingVote records a ranking vote
func (s *GameSession) SubmitRankingVote(playerID, targetID string) domain.ReasonCode {
	s.mu.Lock()
	if s.game == nil {
		s.mu.Unlock()
		return domain.ReasonInvalidPhase
	}
	err := s.game.SubmitRankingVote(playerID, targetID, s.clock.Now())
	all := err == nil && s.game.AllVoted()
	s.mu.Unlock()

	if err != nil {
		return domain.ReasonFor(err)
	}
	s.publishState()
	if all {
		s.signalWake()
	}
	return domain.ReasonNone
}

// ActivateBooster runs the two-phase activation protocol and pushes fresh
// private views to everyone affected.
func (s *GameSession) ActivateBooster(playerID string, kind domain.BoosterKind, targetID string) (*domain.ActivationOutcome, domain.ReasonCode) {
	s.mu.Lock()
	if s.game == nil {
		s.mu.Unlock()
		return nil, domain.ReasonInvalidPhase
	}
	outcome, reason := s.game.ActivateBooster(playerID, kind, targetID, s.clock.Now(), s.rng)
	s.mu.Unlock()

	if reason != domain.ReasonNone {
		return nil, reason
	}

	s.logger.Info("booster activated",
		"playerID", playerID,
		"kind", kind,
		"targetID", targetID,
		"blocked", outcome.Blocked,
	)
	s.publishState()
	return outcome, domain.ReasonNone
}

// GetStateFor returns the shared projection and the player's private view,
// for reconnection.
func (s *GameSession) GetStateFor(playerID string) (*domain.StateProjection, *domain.PlayerView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.game == nil {
		return nil, nil
	}
	return s.game.Projection(), s.game.ViewFor(playerID)
}

// GetLobbyState returns the lobby payload for broadcasting
func (s *GameSession) GetLobbyState() *LobbyUpdatePayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lobbyStateLocked()
}

func (s *GameSession) lobbyStateLocked() *LobbyUpdatePayload {
	players := make([]domain.PlayerInfo, 0, len(s.roster))
	for _, p := range s.roster {
		players = append(players, p.ToInfo())
	}
	return &LobbyUpdatePayload{
		Players:  players,
		HostID:   s.hostID,
		CanStart: s.game == nil && len(s.roster) >= s.cfg.MinPlayers,
	}
}

// publishState snapshots the shared projection and every player's private
// view under the lock, then queues them for delivery outside it.
func (s *GameSession) publishState() {
	s.mu.Lock()
	if s.game == nil {
		s.mu.Unlock()
		return
	}
	projection := s.game.Projection()
	views := make([]*domain.PlayerView, 0, len(s.roster))
	for _, p := range s.roster {
		views = append(views, s.game.ViewFor(p.ID))
	}
	s.mu.Unlock()

	now := s.clock.Now()
	s.queueEvent(&Event{Type: EventStateUpdate, RoomID: s.roomCode, Payload: projection, Timestamp: now})
	for _, v := range views {
		s.queueEvent(&Event{Type: EventPlayerView, RoomID: s.roomCode, PlayerID: v.PlayerID, Payload: v, Timestamp: now})
	}
}

func (s *GameSession) queueLobbyUpdate() {
	s.queueEvent(&Event{
		Type:      EventLobbyUpdate,
		RoomID:    s.roomCode,
		Payload:   s.GetLobbyState(),
		Timestamp: s.clock.Now(),
	})
}

// queueEvent adds an event to the broadcast queue
func (s *GameSession) queueEvent(event *Event) {
	select {
	case s.events <- event:
	default:
		s.logger.Warn("event queue full, dropping event", "type", event.Type)
	}
}

// eventLoop delivers queued events to clients
func (s *GameSession) eventLoop() {
	for {
		select {
		case <-s.done:
			return
		case event := <-s.events:
			s.deliverEvent(event)
		}
	}
}

// deliverEvent sends an event to its audience. Player-specific events go
// only to their player.
func (s *GameSession) deliverEvent(event *Event) {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()

	if event.PlayerID != "" {
		if client, ok := s.clients[event.PlayerID]; ok {
			if err := client.Send(event); err != nil {
				s.logger.Debug("failed to send to client", "playerID", event.PlayerID, "error", err)
			}
		}
		return
	}

	for playerID, client := range s.clients {
		if err := client.Send(event); err != nil {
			s.logger.Debug("failed to send to client", "playerID", playerID, "error", err)
		}
	}
}

// Close tears the room down: the pending wake-up is cancelled before any
// state is released so a stale timer can never touch a dead room.
func (s *GameSession) Close() {
	select {
	case <-s.done:
		return // Already closed
	default:
		close(s.done)
	}

	s.mu.Lock()
	s.status = StatusStopped
	s.mu.Unlock()

	s.clientsMu.Lock()
	for _, client := range s.clients {
		client.Close()
	}
	s.clients = make(map[string]ClientConnection)
	s.clientsMu.Unlock()
}
