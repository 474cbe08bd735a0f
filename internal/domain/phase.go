package domain

import "time"

// Phase represents the current phase of a game
type Phase string

const (
	PhaseLobby               Phase = "LOBBY"                // Waiting for players to join
	PhaseCategorySelection   Phase = "CATEGORY_SELECTION"   // Round leader picks a category
	PhaseQuestion            Phase = "QUESTION"             // Question is displayed, answering not open yet
	PhaseAnswering           Phase = "ANSWERING"            // Players submit answers
	PhaseReveal              Phase = "REVEAL"               // Correct answer and per-question points shown
	PhaseScoreboard          Phase = "SCOREBOARD"           // Cumulative standings between rounds
	PhaseDictionaryWord      Phase = "DICTIONARY_WORD"      // Dictionary word is displayed
	PhaseDictionaryAnswering Phase = "DICTIONARY_ANSWERING" // Players pick a definition
	PhaseRankingPrompt       Phase = "RANKING_PROMPT"       // Ranking prompt is displayed
	PhaseRankingVoting       Phase = "RANKING_VOTING"       // Players vote for each other
	PhaseRankingReveal       Phase = "RANKING_REVEAL"       // Vote counts and points shown
	PhaseFinished            Phase = "FINISHED"             // Game over, terminal
)

// String returns the string representation of the phase
func (p Phase) String() string {
	return string(p)
}

// IsAnsweringPhase returns true for phases in which submissions are accepted
func (p Phase) IsAnsweringPhase() bool {
	return p == PhaseAnswering || p == PhaseDictionaryAnswering || p == PhaseRankingVoting
}

// IsRevealPhase returns true for phases in which the correct key may be shown to clients
func (p Phase) IsRevealPhase() bool {
	return p == PhaseReveal || p == PhaseRankingReveal || p == PhaseScoreboard || p == PhaseFinished
}

// CanTransitionTo checks if a transition from current phase to target phase is valid
func (p Phase) CanTransitionTo(target Phase) bool {
	validTransitions := map[Phase][]Phase{
		PhaseLobby:               {PhaseCategorySelection, PhaseQuestion, PhaseDictionaryWord, PhaseRankingPrompt},
		PhaseCategorySelection:   {PhaseQuestion},
		PhaseQuestion:            {PhaseAnswering},
		PhaseAnswering:           {PhaseReveal},
		PhaseReveal:              {PhaseQuestion, PhaseDictionaryWord, PhaseScoreboard},
		PhaseScoreboard:          {PhaseCategorySelection, PhaseDictionaryWord, PhaseRankingPrompt, PhaseFinished},
		PhaseDictionaryWord:      {PhaseDictionaryAnswering},
		PhaseDictionaryAnswering: {PhaseReveal},
		PhaseRankingPrompt:       {PhaseRankingVoting},
		PhaseRankingVoting:       {PhaseRankingReveal},
		PhaseRankingReveal:       {PhaseRankingPrompt, PhaseScoreboard},
	}

	allowed, ok := validTransitions[p]
	if !ok {
		return false
	}

	for _, phase := range allowed {
		if phase == target {
			return true
		}
	}
	return false
}

// Timings holds the duration of every timed phase. It is fixed at game start
// so transitions stay deterministic: PhaseEndsAt is always computed from an
// explicit "now" plus one of these durations, never from the wall clock.
type Timings struct {
	CategorySelection   time.Duration
	Question            time.Duration
	Answering           time.Duration
	Reveal              time.Duration
	Scoreboard          time.Duration
	DictionaryWord      time.Duration
	DictionaryAnswering time.Duration
	RankingPrompt       time.Duration
	RankingVoting       time.Duration
	RankingReveal       time.Duration
}

// For returns the configured duration for a phase. Untimed phases return 0.
func (t Timings) For(p Phase) time.Duration {
	switch p {
	case PhaseCategorySelection:
		return t.CategorySelection
	case PhaseQuestion:
		return t.Question
	case PhaseAnswering:
		return t.Answering
	case PhaseReveal:
		return t.Reveal
	case PhaseScoreboard:
		return t.Scoreboard
	case PhaseDictionaryWord:
		return t.DictionaryWord
	case PhaseDictionaryAnswering:
		return t.DictionaryAnswering
	case PhaseRankingPrompt:
		return t.RankingPrompt
	case PhaseRankingVoting:
		return t.RankingVoting
	case PhaseRankingReveal:
		return t.RankingReveal
	default:
		return 0
	}
}
