package domain

import (
	"math/rand"
	"time"

	"quizrush/internal/scoring"
)

// Effect is the recorded consequence of a booster activation. It belongs to
// exactly one item (question, word or prompt, identified by QuestionNumber)
// and must be consumed or expired before the next item starts.
type Effect struct {
	Kind           BoosterKind `json:"kind"`
	ActivatorID    string      `json:"activatorId"`
	TargetID       string      `json:"targetId,omitempty"`
	QuestionNumber int         `json:"questionNumber"`
	RoundNumber    int         `json:"roundNumber"`
	CreatedAt      time.Time   `json:"createdAt"`
	Consumed       bool        `json:"consumed"`

	// Kind-specific payload
	RemovedOptions []string            `json:"removedOptions,omitempty"`
	ShuffledOrders map[string][]string `json:"-"` // playerID -> option key order, never broadcast
}

func (g *GameState) newEffect(kind BoosterKind, activatorID, targetID string, now time.Time) *Effect {
	return &Effect{
		Kind:           kind,
		ActivatorID:    activatorID,
		TargetID:       targetID,
		QuestionNumber: g.QuestionNumber,
		RoundNumber:    g.RoundNumber,
		CreatedAt:      now,
	}
}

// currentItemOptions returns the option set of whatever item is active
func (g *GameState) currentItemOptions() []Option {
	switch {
	case g.Phase == PhaseDictionaryWord || g.Phase == PhaseDictionaryAnswering:
		if g.Dictionary != nil && g.Dictionary.CurrentWord != nil {
			return g.Dictionary.CurrentWord.Definitions
		}
	default:
		if g.CurrentQuestion != nil {
			return g.CurrentQuestion.Options
		}
	}
	return nil
}

func (g *GameState) currentCorrectKey() string {
	switch {
	case g.Phase == PhaseDictionaryWord || g.Phase == PhaseDictionaryAnswering:
		if g.Dictionary != nil && g.Dictionary.CurrentWord != nil {
			return g.Dictionary.CurrentWord.CorrectKey
		}
	default:
		if g.CurrentQuestion != nil {
			return g.CurrentQuestion.CorrectKey
		}
	}
	return ""
}

// pickRemovableOptions selects half of the wrong options of the current
// item, rounded down but at least one.
func (g *GameState) pickRemovableOptions(rng *rand.Rand) []string {
	correct := g.currentCorrectKey()
	wrong := make([]string, 0, 3)
	for _, o := range g.currentItemOptions() {
		if o.Key != correct {
			wrong = append(wrong, o.Key)
		}
	}
	if len(wrong) == 0 {
		return nil
	}

	rng.Shuffle(len(wrong), func(i, j int) {
		wrong[i], wrong[j] = wrong[j], wrong[i]
	})

	n := len(wrong) / 2
	if n == 0 {
		n = 1
	}
	return wrong[:n]
}

// shuffleOrdersExcept computes a per-player shuffled option key order for
// every player except the activator. Each player gets their own order.
func (g *GameState) shuffleOrdersExcept(activatorID string, rng *rand.Rand) map[string][]string {
	options := g.currentItemOptions()
	keys := make([]string, 0, len(options))
	for _, o := range options {
		keys = append(keys, o.Key)
	}

	orders := make(map[string][]string, len(g.Players))
	for _, p := range g.Players {
		if p.ID == activatorID {
			continue
		}
		order := make([]string, len(keys))
		copy(order, keys)
		rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
		orders[p.ID] = order
	}
	return orders
}

// currentEffects iterates unconsumed effects belonging to the active item
func (g *GameState) currentEffects() []*Effect {
	out := make([]*Effect, 0, len(g.ActiveEffects))
	for _, e := range g.ActiveEffects {
		if !e.Consumed && e.QuestionNumber == g.QuestionNumber {
			out = append(out, e)
		}
	}
	return out
}

// isNoped reports whether a nope effect blocks the player this item
func (g *GameState) isNoped(playerID string) bool {
	for _, e := range g.currentEffects() {
		if e.Kind == BoosterNope && e.TargetID == playerID {
			return true
		}
	}
	return false
}

// isOptionRemovedFor reports whether a fifty-fifty removed the given option
// from the player's own view
func (g *GameState) isOptionRemovedFor(playerID, optionKey string) bool {
	for _, e := range g.currentEffects() {
		if e.Kind != BoosterFiftyFifty || e.ActivatorID != playerID {
			continue
		}
		for _, k := range e.RemovedOptions {
			if k == optionKey {
				return true
			}
		}
	}
	return false
}

// AnsweringEffects is the per-player projection of answering-phase effects.
// It is computed on demand and must only ever be sent to the player it was
// computed for: one player's removed options or shuffle order are invisible
// to everyone else.
type AnsweringEffects struct {
	IsNoped             bool       `json:"isNoped"`
	RemovedOptions      []string   `json:"removedOptions,omitempty"`
	ShuffledOptionOrder []string   `json:"shuffledOptionOrder,omitempty"`
	ExtendedDeadline    *time.Time `json:"extendedDeadline,omitempty"`
	MirroredFrom        string     `json:"mirroredFrom,omitempty"`
}

// AnsweringEffectsFor projects the current item's effects for one player
// without mutating shared state.
func (g *GameState) AnsweringEffectsFor(playerID string) AnsweringEffects {
	var fx AnsweringEffects
	for _, e := range g.currentEffects() {
		switch e.Kind {
		case BoosterNope:
			if e.TargetID == playerID {
				fx.IsNoped = true
			}
		case BoosterFiftyFifty:
			if e.ActivatorID == playerID {
				fx.RemovedOptions = append(fx.RemovedOptions, e.RemovedOptions...)
			}
		case BoosterShuffle:
			if order, ok := e.ShuffledOrders[playerID]; ok {
				fx.ShuffledOptionOrder = order
			}
		case BoosterExtraTime:
			if e.ActivatorID == playerID {
				deadline := g.PhaseEndsAt.Add(ExtraTimeExtension)
				fx.ExtendedDeadline = &deadline
			}
		case BoosterMirror:
			if e.ActivatorID == playerID {
				fx.MirroredFrom = e.TargetID
			}
		}
	}
	return fx
}

// applyPostScoringEffects mutates per-item scoring results in effect
// registration order. It must run before results are folded into
// cumulative scores.
func (g *GameState) applyPostScoringEffects(results map[string]*scoring.Result) {
	for _, e := range g.currentEffects() {
		switch e.Kind {
		case BoosterDoublePoints:
			if r := results[e.ActivatorID]; r != nil && r.Correct {
				r.Base *= 2
				r.Bonus *= 2
			}
		case BoosterPointSwap:
			a, t := results[e.ActivatorID], results[e.TargetID]
			if a != nil && t != nil && !a.Correct && t.Correct {
				a.Base, t.Base = t.Base, a.Base
				a.Bonus, t.Bonus = t.Bonus, a.Bonus
				a.Rank, t.Rank = t.Rank, a.Rank
			}
		case BoosterSabotage:
			if t := results[e.TargetID]; t != nil {
				t.Base = 0
				t.Bonus = 0
				t.Rank = 0
			}
		}
	}
}

// consumeCurrentEffects marks the active item's effects consumed and purges
// them from the list.
func (g *GameState) consumeCurrentEffects() {
	kept := g.ActiveEffects[:0]
	for _, e := range g.ActiveEffects {
		if e.QuestionNumber == g.QuestionNumber {
			e.Consumed = true
			continue
		}
		if !e.Consumed {
			kept = append(kept, e)
		}
	}
	g.ActiveEffects = kept
}

// expireStaleEffects drops consumed effects and any effect left over from a
// previous item. An effect must never leak into a subsequent item.
func (g *GameState) expireStaleEffects() {
	kept := g.ActiveEffects[:0]
	for _, e := range g.ActiveEffects {
		if e.Consumed || e.QuestionNumber <= g.QuestionNumber {
			continue
		}
		kept = append(kept, e)
	}
	g.ActiveEffects = kept
}
