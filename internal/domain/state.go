package domain

import (
	"math/rand"
	"sort"
	"time"
)

// Answer is a single recorded submission. The first accepted answer per
// player per item is final.
type Answer struct {
	PlayerID    string    `json:"playerId"`
	OptionKey   string    `json:"optionKey"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// ScoreboardEntry is one player's cumulative score snapshot plus the
// outcome of the most recent item.
type ScoreboardEntry struct {
	PlayerID       string `json:"playerId"`
	Nickname       string `json:"nickname"`
	Score          int    `json:"score"`
	Position       int    `json:"position"`
	LastCorrect    bool   `json:"lastCorrect"`
	LastSelected   string `json:"lastSelected,omitempty"`
	LastPoints     int    `json:"lastPoints"`
	LastSpeedBonus bool   `json:"lastSpeedBonus"`
}

// DictionaryState is the dictionary round's sub-state
type DictionaryState struct {
	CurrentWord *DictionaryWord    `json:"currentWord,omitempty"`
	Answers     map[string]*Answer `json:"answers"`
	WordIndex   int                `json:"wordIndex"`
	WordCap     int                `json:"wordCap"`
}

// Vote is one ranking-round vote
type Vote struct {
	VoterID     string    `json:"voterId"`
	TargetID    string    `json:"targetId"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// VoteResult is the computed outcome of one ranking prompt for one player
type VoteResult struct {
	PlayerID string `json:"playerId"`
	Nickname string `json:"nickname"`
	Votes    int    `json:"votes"`
	Points   int    `json:"points"`
	Starred  bool   `json:"starred"`
}

// RankingState is the ranking round's sub-state
type RankingState struct {
	CurrentPrompt *RankingPrompt   `json:"currentPrompt,omitempty"`
	Votes         map[string]*Vote `json:"votes"`
	PromptIndex   int              `json:"promptIndex"`
	PromptCap     int              `json:"promptCap"`
	LastResult    []VoteResult     `json:"lastResult,omitempty"`
}

// GameState is the single authoritative aggregate for one running game.
// It is created once when the host starts the game and only ever mutated
// through its transition methods, under the owning session's lock.
// Transitions never read the wall clock or perform I/O themselves; time
// and randomness are explicit inputs.
type GameState struct {
	RoomID string `json:"roomId"`
	Locale string `json:"locale"`

	Phase       Phase     `json:"phase"`
	PhaseEndsAt time.Time `json:"phaseEndsAt"`
	Timings     Timings   `json:"-"`

	QuestionNumber int `json:"questionNumber"` // global item counter, 1-based
	TotalQuestions int `json:"totalQuestions"`
	RoundNumber    int `json:"roundNumber"`

	RoundPlan  []RoundType `json:"roundPlan"`
	RoundIndex int         `json:"roundIndex"` // index into RoundPlan, -1 before first round

	CurrentRound    *Round   `json:"currentRound,omitempty"`
	CompletedRounds []*Round `json:"completedRounds"`

	Players    []*Player          `json:"players"` // stable join order
	Scoreboard []*ScoreboardEntry `json:"scoreboard"`

	CurrentQuestion *Question          `json:"currentQuestion,omitempty"`
	Answers         map[string]*Answer `json:"answers"`

	AvailableCategories []string            `json:"availableCategories,omitempty"`
	UsedCategories      map[string]struct{} `json:"-"`
	UsedQuestionIDs     map[string]struct{} `json:"-"`
	UsedWordIDs         map[string]struct{} `json:"-"`
	UsedPromptIDs       map[string]struct{} `json:"-"`

	Dictionary *DictionaryState `json:"dictionary,omitempty"`
	Ranking    *RankingState    `json:"ranking,omitempty"`

	PlayerBoosters map[string]*PlayerBooster `json:"playerBoosters"`
	ActiveEffects  []*Effect                 `json:"activeEffects"`
}

// NewGame builds the authoritative state for every connected player and
// assigns each of them one booster from the assignable pool. The plan is
// validated: a dictionary round must be last.
func NewGame(roomID, locale string, players []*Player, plan []RoundType, timings Timings, rng *rand.Rand, now time.Time) (*GameState, error) {
	if err := ValidatePlan(plan); err != nil {
		return nil, err
	}
	if len(players) == 0 {
		return nil, ErrNotEnoughPlayers
	}

	g := &GameState{
		RoomID:          roomID,
		Locale:          locale,
		Phase:           PhaseLobby,
		Timings:         timings,
		TotalQuestions:  ItemsPerRound * len(plan),
		RoundPlan:       plan,
		RoundIndex:      -1,
		CompletedRounds: make([]*Round, 0, len(plan)),
		Players:         players,
		Scoreboard:      make([]*ScoreboardEntry, 0, len(players)),
		Answers:         make(map[string]*Answer),
		UsedCategories:  make(map[string]struct{}),
		UsedQuestionIDs: make(map[string]struct{}),
		UsedWordIDs:     make(map[string]struct{}),
		UsedPromptIDs:   make(map[string]struct{}),
		PlayerBoosters:  make(map[string]*PlayerBooster),
	}

	for _, p := range players {
		g.Scoreboard = append(g.Scoreboard, &ScoreboardEntry{
			PlayerID: p.ID,
			Nickname: p.Nickname,
			Position: 1,
		})
	}

	g.assignBoosters(rng)

	return g, nil
}

// GetPlayer returns a player by ID
func (g *GameState) GetPlayer(playerID string) (*Player, error) {
	for _, p := range g.Players {
		if p.ID == playerID {
			return p, nil
		}
	}
	return nil, ErrPlayerNotFound
}

// EntryFor returns the scoreboard entry for a player, or nil
func (g *GameState) EntryFor(playerID string) *ScoreboardEntry {
	for _, e := range g.Scoreboard {
		if e.PlayerID == playerID {
			return e
		}
	}
	return nil
}

// positions returns the current scoreboard position per player id
func (g *GameState) positions() map[string]int {
	pos := make(map[string]int, len(g.Scoreboard))
	for _, e := range g.Scoreboard {
		pos[e.PlayerID] = e.Position
	}
	return pos
}

// updatePositions re-sorts the scoreboard by score descending and assigns
// competition-style positions: equal scores share a position. Join order
// keeps the listing stable for tied players.
func (g *GameState) updatePositions() {
	order := make(map[string]int, len(g.Players))
	for i, p := range g.Players {
		order[p.ID] = i
	}

	sort.SliceStable(g.Scoreboard, func(i, j int) bool {
		if g.Scoreboard[i].Score != g.Scoreboard[j].Score {
			return g.Scoreboard[i].Score > g.Scoreboard[j].Score
		}
		return order[g.Scoreboard[i].PlayerID] < order[g.Scoreboard[j].PlayerID]
	})

	for i, e := range g.Scoreboard {
		if i > 0 && e.Score == g.Scoreboard[i-1].Score {
			e.Position = g.Scoreboard[i-1].Position
		} else {
			e.Position = i + 1
		}
	}
}

// setPhase moves the game to the given phase and stamps its deadline
func (g *GameState) setPhase(p Phase, now time.Time) {
	g.Phase = p
	g.PhaseEndsAt = now.Add(g.Timings.For(p))
}

// IsFinished reports whether the game reached its terminal phase
func (g *GameState) IsFinished() bool {
	return g.Phase == PhaseFinished
}
