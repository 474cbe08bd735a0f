package ws

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"quizrush/internal/app"
	"quizrush/internal/domain"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096

	// Size of the send channel buffer
	sendBufferSize = 256

	// Sustained and burst message rates per connection
	messagesPerSecond = 10
	messageBurst      = 20
)

// Client represents a WebSocket client connection
type Client struct {
	conn     *websocket.Conn
	session  *app.GameSession
	playerID string
	send     chan []byte
	done     chan struct{}
	limiter  *rate.Limiter
	logger   *slog.Logger
	mu       sync.Mutex
	closed   bool
}

// NewClient creates a new WebSocket client
func NewClient(conn *websocket.Conn, session *app.GameSession, playerID string, logger *slog.Logger) *Client {
	return &Client{
		conn:     conn,
		session:  session,
		playerID: playerID,
		send:     make(chan []byte, sendBufferSize),
		done:     make(chan struct{}),
		limiter:  rate.NewLimiter(rate.Limit(messagesPerSecond), messageBurst),
		logger:   logger,
	}
}

// GetPlayerID returns the player ID for this client
func (c *Client) GetPlayerID() string {
	return c.playerID
}

// Send implements app.ClientConnection interface
func (c *Client) Send(message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	select {
	case c.send <- data:
		return nil
	default:
		// Buffer full, message dropped
		c.logger.Warn("send buffer full, message dropped", "playerID", c.playerID)
		return nil
	}
}

// Close implements app.ClientConnection interface
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	c.closed = true
	close(c.done)
	return c.conn.Close()
}

// Run starts the client's read and write pumps
func (c *Client) Run() {
	go c.writePump()
	c.readPump()
}

// readPump pumps messages from the WebSocket connection
func (c *Client) readPump() {
	defer func() {
		c.session.UnregisterClient(c.playerID)
		c.session.DisconnectPlayer(c.playerID)
		c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Debug("websocket read error", "error", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

// writePump pumps messages from the send channel to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			return
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current websocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage processes an incoming message from the client
func (c *Client) handleMessage(data []byte) {
	if !c.limiter.Allow() {
		c.sendError(ErrCodeRateLimited, "Too many messages, slow down")
		return
	}

	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.sendError(ErrCodeInvalidMessage, "Invalid message format")
		return
	}

	switch msg.Type {
	case MsgJoinLobby:
		c.handleJoinLobby(msg.Payload)
	case MsgStartGame:
		c.handleStartGame()
	case MsgSelectCategory:
		c.handleSelectCategory(msg.Payload)
	case MsgSubmitAnswer:
		c.handleSubmitAnswer(msg.Payload)
	case MsgSubmitDictionary:
		c.handleSubmitDictionaryAnswer(msg.Payload)
	case MsgSubmitRankingVote:
		c.handleSubmitRankingVote(msg.Payload)
	case MsgActivateBooster:
		c.handleActivateBooster(msg.Payload)
	case MsgLeaveGame:
		c.handleLeaveGame()
	case MsgPing:
		c.sendPong()
	default:
		c.sendError(ErrCodeInvalidMessage, "Unknown message type")
	}
}

// payloadString extracts a string field from a raw message payload
func payloadString(payload interface{}, key string) (string, bool) {
	payloadMap, ok := payload.(map[string]interface{})
	if !ok {
		return "", false
	}
	value, ok := payloadMap[key].(string)
	return value, ok
}

// handleJoinLobby handles a join_lobby message
func (c *Client) handleJoinLobby(payload interface{}) {
	nickname, ok := payloadString(payload, "nickname")
	if !ok || nickname == "" {
		c.sendError(ErrCodeInvalidMessage, "Nickname is required")
		return
	}

	_, err := c.session.AddPlayer(c.playerID, nickname)
	if err != nil {
		switch err {
		case domain.ErrGameFull:
			c.sendError(ErrCodeGameFull, "Game is full")
		case domain.ErrGameAlreadyStarted:
			c.sendError(ErrCodeGameStarted, "Game has already started")
		default:
			c.sendError(ErrCodeInternalError, err.Error())
		}
		return
	}

	c.sendConnected()
}

// handleStartGame handles a start_game message
func (c *Client) handleStartGame() {
	err := c.session.StartGame(c.playerID)
	if err != nil {
		switch err {
		case domain.ErrNotHost:
			c.sendError(ErrCodeNotHost, "Only the host can start the game")
		case domain.ErrNotEnoughPlayers:
			c.sendError(ErrCodeTooFewPlayers, "Not enough players to start")
		case domain.ErrGameAlreadyStarted:
			c.sendError(ErrCodeGameStarted, "Game has already started")
		default:
			c.sendError(ErrCodeInternalError, err.Error())
		}
		return
	}
}

// handleSelectCategory handles a select_category message
func (c *Client) handleSelectCategory(payload interface{}) {
	category, ok := payloadString(payload, "category")
	if !ok || category == "" {
		c.sendError(ErrCodeInvalidMessage, "Category is required")
		return
	}

	if reason := c.session.SelectCategory(c.playerID, category); reason != domain.ReasonNone {
		c.sendReason(reason)
	}
}

// handleSubmitAnswer handles a submit_answer message
func (c *Client) handleSubmitAnswer(payload interface{}) {
	optionKey, ok := payloadString(payload, "optionKey")
	if !ok || optionKey == "" {
		c.sendError(ErrCodeInvalidMessage, "Option key is required")
		return
	}

	if reason := c.session.SubmitAnswer(c.playerID, optionKey); reason != domain.ReasonNone {
		c.sendReason(reason)
	}
}

// handleSubmitDictionaryAnswer handles a submit_dictionary_answer message
func (c *Client) handleSubmitDictionaryAnswer(payload interface{}) {
	optionKey, ok := payloadString(payload, "optionKey")
	if !ok || optionKey == "" {
		c.sendError(ErrCodeInvalidMessage, "Option key is required")
		return
	}

	if reason := c.session.SubmitDictionaryAnswer(c.playerID, optionKey); reason != domain.ReasonNone {
		c.sendReason(reason)
	}
}

// handleSubmitRankingVote handles a submit_ranking_vote message
func (c *Client) handleSubmitRankingVote(payload interface{}) {
	targetID, ok := payloadString(payload, "targetPlayerId")
	if !ok || targetID == "" {
		c.sendError(ErrCodeInvalidMessage, "Target player ID is required")
		return
	}

	if reason := c.session.SubmitRankingVote(c.playerID, targetID); reason != domain.ReasonNone {
		c.sendReason(reason)
	}
}

// handleActivateBooster handles an activate_booster message. The target is
// optional: only targeted boosters require one.
func (c *Client) handleActivateBooster(payload interface{}) {
	kind, ok := payloadString(payload, "kind")
	if !ok || kind == "" {
		c.sendError(ErrCodeInvalidMessage, "Booster kind is required")
		return
	}
	targetID, _ := payloadString(payload, "targetPlayerId")

	outcome, reason := c.session.ActivateBooster(c.playerID, domain.BoosterKind(kind), targetID)
	if reason != domain.ReasonNone {
		c.sendReason(reason)
		return
	}

	c.Send(NewServerMessage(MsgBoosterResult, &BoosterResultPayload{
		Kind:    domain.BoosterKind(kind),
		Blocked: outcome.Blocked,
	}))
}

// handleLeaveGame handles a leave_game message
func (c *Client) handleLeaveGame() {
	if err := c.session.RemovePlayer(c.playerID); err != nil {
		c.sendError(ErrCodeInternalError, err.Error())
	}
}

// sendConnected sends the connected message to the client
func (c *Client) sendConnected() {
	state, view := c.session.GetStateFor(c.playerID)
	payload := &ConnectedPayload{
		PlayerID: c.playerID,
		RoomCode: c.session.GetRoomCode(),
		State:    state,
		View:     view,
	}

	c.Send(NewServerMessage(MsgConnected, payload))
}

// sendReason sends an error carrying a domain rejection reason code
func (c *Client) sendReason(reason domain.ReasonCode) {
	c.sendError(string(reason), reasonMessage(reason))
}

// sendError sends an error message to the client
func (c *Client) sendError(code, message string) {
	payload := &ErrorPayload{
		Code:    code,
		Message: message,
	}

	c.Send(NewServerMessage(MsgError, payload))
}

// sendPong sends a pong message in response to ping
func (c *Client) sendPong() {
	c.Send(NewServerMessage(MsgPong, nil))
}

// reasonMessage maps reason codes to human-readable text
func reasonMessage(reason domain.ReasonCode) string {
	switch reason {
	case domain.ReasonInvalidPhase:
		return "That action is not allowed right now"
	case domain.ReasonInvalidCategory:
		return "That category is not available"
	case domain.ReasonNotRoundLeader:
		return "Only the round leader can pick the category"
	case domain.ReasonInvalidOption:
		return "That option is not available"
	case domain.ReasonAlreadyAnswered:
		return "You have already answered"
	case domain.ReasonAlreadyVoted:
		return "You have already voted"
	case domain.ReasonBlockedByBooster:
		return "A booster is blocking you this question"
	case domain.ReasonCannotVoteSelf:
		return "You cannot vote for yourself"
	case domain.ReasonInvalidTarget:
		return "Invalid target player"
	case domain.ReasonBoosterNotOwned:
		return "You do not own that booster"
	case domain.ReasonBoosterUsed:
		return "That booster was already used"
	case domain.ReasonBoosterPassive:
		return "That booster triggers automatically"
	case domain.ReasonTargetRequired:
		return "That booster needs a target"
	case domain.ReasonTargetNotAllowed:
		return "That booster cannot be targeted"
	case domain.ReasonPlayerNotFound:
		return "Player not found"
	default:
		return "Something went wrong"
	}
}
