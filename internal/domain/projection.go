package domain

import "time"

// QuestionView is the client-safe shape of a question. CorrectKey and
// Explanation are only populated during reveal phases.
type QuestionView struct {
	ID          string   `json:"id"`
	Text        string   `json:"text"`
	Category    string   `json:"category,omitempty"`
	Options     []Option `json:"options"`
	CorrectKey  string   `json:"correctKey,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
}

// WordView is the client-safe shape of a dictionary word
type WordView struct {
	ID          string   `json:"id"`
	Word        string   `json:"word"`
	Definitions []Option `json:"definitions"`
	CorrectKey  string   `json:"correctKey,omitempty"`
}

// StateProjection is the client-safe snapshot of a game, identical for
// every player in the room. Player-specific data (assigned boosters,
// answering effects) is delivered separately through PlayerView.
type StateProjection struct {
	RoomID      string    `json:"roomId"`
	Phase       Phase     `json:"phase"`
	PhaseEndsAt time.Time `json:"phaseEndsAt"`

	QuestionNumber int `json:"questionNumber"`
	TotalQuestions int `json:"totalQuestions"`
	RoundNumber    int `json:"roundNumber"`
	TotalRounds    int `json:"totalRounds"`

	RoundType     RoundType `json:"roundType,omitempty"`
	Category      string    `json:"category,omitempty"`
	RoundLeaderID string    `json:"roundLeaderId,omitempty"`

	AvailableCategories []string `json:"availableCategories,omitempty"`

	Question *QuestionView  `json:"question,omitempty"`
	Word     *WordView      `json:"word,omitempty"`
	Prompt   *RankingPrompt `json:"prompt,omitempty"`

	AnswerCount int `json:"answerCount"`
	VoteCount   int `json:"voteCount"`

	VoteResult []VoteResult `json:"voteResult,omitempty"`

	Players    []PlayerInfo       `json:"players"`
	Scoreboard []*ScoreboardEntry `json:"scoreboard"`
}

// Projection materializes the client-safe snapshot. It is safe to marshal
// and broadcast outside the room's exclusive section.
func (g *GameState) Projection() *StateProjection {
	p := &StateProjection{
		RoomID:         g.RoomID,
		Phase:          g.Phase,
		PhaseEndsAt:    g.PhaseEndsAt,
		QuestionNumber: g.QuestionNumber,
		TotalQuestions: g.TotalQuestions,
		RoundNumber:    g.RoundNumber,
		TotalRounds:    len(g.RoundPlan),
		Players:        make([]PlayerInfo, 0, len(g.Players)),
		Scoreboard:     make([]*ScoreboardEntry, 0, len(g.Scoreboard)),
	}

	for _, player := range g.Players {
		p.Players = append(p.Players, player.ToInfo())
	}
	for _, e := range g.Scoreboard {
		entry := *e
		p.Scoreboard = append(p.Scoreboard, &entry)
	}

	if g.CurrentRound != nil {
		p.RoundType = g.CurrentRound.Type
		p.Category = g.CurrentRound.Category
		p.RoundLeaderID = g.CurrentRound.LeaderID
	}

	if g.Phase == PhaseCategorySelection {
		p.AvailableCategories = append([]string(nil), g.AvailableCategories...)
	}

	reveal := g.Phase.IsRevealPhase()

	if g.CurrentQuestion != nil && g.Phase != PhaseScoreboard {
		qv := &QuestionView{
			ID:       g.CurrentQuestion.ID,
			Text:     g.CurrentQuestion.Text,
			Category: g.CurrentQuestion.Category,
			Options:  append([]Option(nil), g.CurrentQuestion.Options...),
		}
		if reveal {
			qv.CorrectKey = g.CurrentQuestion.CorrectKey
			qv.Explanation = g.CurrentQuestion.Explanation
		}
		p.Question = qv
		p.AnswerCount = len(g.Answers)
	}

	if g.Dictionary != nil && g.Dictionary.CurrentWord != nil {
		wv := &WordView{
			ID:          g.Dictionary.CurrentWord.ID,
			Word:        g.Dictionary.CurrentWord.Word,
			Definitions: append([]Option(nil), g.Dictionary.CurrentWord.Definitions...),
		}
		if reveal {
			wv.CorrectKey = g.Dictionary.CurrentWord.CorrectKey
		}
		p.Word = wv
		p.AnswerCount = len(g.Dictionary.Answers)
	}

	if g.Ranking != nil {
		if g.Ranking.CurrentPrompt != nil {
			prompt := *g.Ranking.CurrentPrompt
			p.Prompt = &prompt
		}
		p.VoteCount = len(g.Ranking.Votes)
		if g.Phase == PhaseRankingReveal {
			p.VoteResult = append([]VoteResult(nil), g.Ranking.LastResult...)
		}
	}

	return p
}

// PlayerView is the player-specific slice of game state. It must only ever
// be delivered to the player it belongs to.
type PlayerView struct {
	PlayerID string           `json:"playerId"`
	Booster  *PlayerBooster   `json:"booster,omitempty"`
	Meta     *BoosterMeta     `json:"boosterMeta,omitempty"`
	Effects  AnsweringEffects `json:"effects"`
}

// ViewFor materializes one player's private view: their assigned booster
// and the answering effects that apply to them.
func (g *GameState) ViewFor(playerID string) *PlayerView {
	view := &PlayerView{
		PlayerID: playerID,
		Effects:  g.AnsweringEffectsFor(playerID),
	}
	if pb, ok := g.PlayerBoosters[playerID]; ok {
		boosterCopy := *pb
		view.Booster = &boosterCopy
		if meta, ok := MetaFor(pb.Kind); ok {
			view.Meta = &meta
		}
	}
	return view
}
