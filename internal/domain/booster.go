package domain

import (
	"math/rand"
	"time"
)

// BoosterKind identifies a booster. The set is closed; handlers are looked
// up from a registry built once at package init.
type BoosterKind string

const (
	BoosterShield       BoosterKind = "SHIELD"        // passive: nullifies the next negative booster targeting its holder
	BoosterNope         BoosterKind = "NOPE"          // target cannot answer the current item
	BoosterFiftyFifty   BoosterKind = "FIFTY_FIFTY"   // removes half of the wrong options for the activator
	BoosterExtraTime    BoosterKind = "EXTRA_TIME"    // extends the activator's answering deadline
	BoosterShuffle      BoosterKind = "SHUFFLE"       // shuffles option order for everyone but the activator
	BoosterMirror       BoosterKind = "MIRROR"        // the activator's scored answer becomes the target's
	BoosterDoublePoints BoosterKind = "DOUBLE_POINTS" // doubles the activator's points if correct
	BoosterPointSwap    BoosterKind = "POINT_SWAP"    // swaps point outcomes when activator wrong, target right
	BoosterSabotage     BoosterKind = "SABOTAGE"      // zeroes the target's points for the current item
)

// ExtraTimeExtension is how far the extra-time booster pushes out its
// activator's personal answering deadline.
const ExtraTimeExtension = 10 * time.Second

// PlayerBooster is the single-use booster assigned to one player
type PlayerBooster struct {
	Kind       BoosterKind        `json:"kind"`
	Used       bool               `json:"used"`
	Activation *BoosterActivation `json:"activation,omitempty"`
}

// BoosterActivation records when and against whom a booster was used
type BoosterActivation struct {
	TargetID       string      `json:"targetId,omitempty"`
	QuestionNumber int         `json:"questionNumber"`
	RoundNumber    int         `json:"roundNumber"`
	ActivatedAt    time.Time   `json:"activatedAt"`
	Blocked        bool        `json:"blocked"`
	BlockedKind    BoosterKind `json:"blockedKind,omitempty"` // set on a consumed Shield
}

// ActivationOutcome is the result of a successful activation call. Blocked
// means a Shield intercepted the booster: the activator's booster is spent
// but its effect never applied.
type ActivationOutcome struct {
	Blocked bool    `json:"blocked"`
	Effect  *Effect `json:"-"`
}

// boosterHandler is the fixed capability record for one booster kind
type boosterHandler struct {
	kind           BoosterKind
	name           string
	description    string
	requiresTarget bool
	passive        bool
	negative       bool
	validPhases    map[Phase]bool
	apply          func(g *GameState, playerID, targetID string, now time.Time, rng *rand.Rand) *Effect
}

// itemPhases are the phases during which boosters affecting the current
// item may be activated.
var itemPhases = map[Phase]bool{
	PhaseQuestion:            true,
	PhaseAnswering:           true,
	PhaseDictionaryWord:      true,
	PhaseDictionaryAnswering: true,
}

// preAnsweringPhases restrict boosters that must land before answering opens
var preAnsweringPhases = map[Phase]bool{
	PhaseQuestion:       true,
	PhaseDictionaryWord: true,
}

var boosterRegistry = buildBoosterRegistry()

func buildBoosterRegistry() map[BoosterKind]*boosterHandler {
	handlers := []*boosterHandler{
		{
			kind:        BoosterShield,
			name:        "Shield",
			description: "Silently blocks the next negative booster aimed at you.",
			passive:     true,
		},
		{
			kind:           BoosterNope,
			name:           "Nope",
			description:    "The target cannot answer the current question.",
			requiresTarget: true,
			negative:       true,
			validPhases:    itemPhases,
			apply: func(g *GameState, playerID, targetID string, now time.Time, _ *rand.Rand) *Effect {
				return g.newEffect(BoosterNope, playerID, targetID, now)
			},
		},
		{
			kind:        BoosterFiftyFifty,
			name:        "Fifty-Fifty",
			description: "Removes half of the wrong options, for your eyes only.",
			validPhases: itemPhases,
			apply: func(g *GameState, playerID, targetID string, now time.Time, rng *rand.Rand) *Effect {
				e := g.newEffect(BoosterFiftyFifty, playerID, targetID, now)
				e.RemovedOptions = g.pickRemovableOptions(rng)
				return e
			},
		},
		{
			kind:        BoosterExtraTime,
			name:        "Extra Time",
			description: "Extends your answering deadline by a few seconds.",
			validPhases: itemPhases,
			apply: func(g *GameState, playerID, targetID string, now time.Time, _ *rand.Rand) *Effect {
				return g.newEffect(BoosterExtraTime, playerID, targetID, now)
			},
		},
		{
			kind:        BoosterShuffle,
			name:        "Shuffle",
			description: "Scrambles the option order for everyone else.",
			negative:    true,
			validPhases: preAnsweringPhases,
			apply: func(g *GameState, playerID, targetID string, now time.Time, rng *rand.Rand) *Effect {
				e := g.newEffect(BoosterShuffle, playerID, targetID, now)
				e.ShuffledOrders = g.shuffleOrdersExcept(playerID, rng)
				return e
			},
		},
		{
			kind:           BoosterMirror,
			name:           "Mirror",
			description:    "Your answer silently becomes a copy of the target's.",
			requiresTarget: true,
			validPhases:    itemPhases,
			apply: func(g *GameState, playerID, targetID string, now time.Time, _ *rand.Rand) *Effect {
				return g.newEffect(BoosterMirror, playerID, targetID, now)
			},
		},
		{
			kind:        BoosterDoublePoints,
			name:        "Double Points",
			description: "Doubles your points for this question if you answer correctly.",
			validPhases: itemPhases,
			apply: func(g *GameState, playerID, targetID string, now time.Time, _ *rand.Rand) *Effect {
				return g.newEffect(BoosterDoublePoints, playerID, targetID, now)
			},
		},
		{
			kind:           BoosterPointSwap,
			name:           "Point Swap",
			description:    "If you are wrong and the target is right, you take their points.",
			requiresTarget: true,
			negative:       true,
			validPhases:    itemPhases,
			apply: func(g *GameState, playerID, targetID string, now time.Time, _ *rand.Rand) *Effect {
				return g.newEffect(BoosterPointSwap, playerID, targetID, now)
			},
		},
		{
			kind:           BoosterSabotage,
			name:           "Sabotage",
			description:    "The target earns nothing for the current question.",
			requiresTarget: true,
			negative:       true,
			validPhases:    itemPhases,
			apply: func(g *GameState, playerID, targetID string, now time.Time, _ *rand.Rand) *Effect {
				return g.newEffect(BoosterSabotage, playerID, targetID, now)
			},
		},
	}

	registry := make(map[BoosterKind]*boosterHandler, len(handlers))
	for _, h := range handlers {
		registry[h.kind] = h
	}
	return registry
}

// AssignableBoosters is the draw pool for game start. Shield stays in the
// pool alongside the active kinds (see DESIGN.md for the policy decision).
var AssignableBoosters = []BoosterKind{
	BoosterShield,
	BoosterNope,
	BoosterFiftyFifty,
	BoosterExtraTime,
	BoosterShuffle,
	BoosterMirror,
	BoosterDoublePoints,
	BoosterPointSwap,
	BoosterSabotage,
}

// BoosterMeta is display metadata for one booster kind
type BoosterMeta struct {
	Kind           BoosterKind `json:"kind"`
	Name           string      `json:"name"`
	Description    string      `json:"description"`
	RequiresTarget bool        `json:"requiresTarget"`
	Passive        bool        `json:"passive"`
	Negative       bool        `json:"negative"`
}

// MetaFor returns display metadata for a booster kind
func MetaFor(kind BoosterKind) (BoosterMeta, bool) {
	h, ok := boosterRegistry[kind]
	if !ok {
		return BoosterMeta{}, false
	}
	return BoosterMeta{
		Kind:           h.kind,
		Name:           h.name,
		Description:    h.description,
		RequiresTarget: h.requiresTarget,
		Passive:        h.passive,
		Negative:       h.negative,
	}, true
}

// assignBoosters deals one booster to every player. The shuffled pool is
// cycled when there are more players than kinds.
func (g *GameState) assignBoosters(rng *rand.Rand) {
	pool := make([]BoosterKind, len(AssignableBoosters))
	copy(pool, AssignableBoosters)
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	for i, p := range g.Players {
		g.PlayerBoosters[p.ID] = &PlayerBooster{Kind: pool[i%len(pool)]}
	}
}

// CanActivateBooster validates ownership, phase legality and target
// legality without changing state. It returns ReasonNone when the
// activation would succeed.
func (g *GameState) CanActivateBooster(playerID string, kind BoosterKind, targetID string) ReasonCode {
	h, ok := boosterRegistry[kind]
	if !ok {
		return ReasonBoosterNotOwned
	}

	pb, ok := g.PlayerBoosters[playerID]
	if !ok || pb.Kind != kind {
		return ReasonBoosterNotOwned
	}
	if pb.Used {
		return ReasonBoosterUsed
	}
	if h.passive {
		return ReasonBoosterPassive
	}
	if !h.validPhases[g.Phase] {
		return ReasonInvalidPhase
	}

	if h.requiresTarget {
		if targetID == "" {
			return ReasonTargetRequired
		}
		if targetID == playerID {
			return ReasonTargetNotAllowed
		}
		if _, err := g.GetPlayer(targetID); err != nil {
			return ReasonInvalidTarget
		}
	} else if targetID != "" {
		return ReasonTargetNotAllowed
	}

	return ReasonNone
}

// ActivateBooster re-validates and then either applies the booster's effect
// or, for negative targeted boosters, lets an unused Shield on the target
// consume both boosters with no effect applied.
func (g *GameState) ActivateBooster(playerID string, kind BoosterKind, targetID string, now time.Time, rng *rand.Rand) (*ActivationOutcome, ReasonCode) {
	if reason := g.CanActivateBooster(playerID, kind, targetID); reason != ReasonNone {
		return nil, reason
	}

	h := boosterRegistry[kind]
	pb := g.PlayerBoosters[playerID]

	activation := &BoosterActivation{
		TargetID:       targetID,
		QuestionNumber: g.QuestionNumber,
		RoundNumber:    g.RoundNumber,
		ActivatedAt:    now,
	}

	if h.negative && targetID != "" {
		if shield, ok := g.PlayerBoosters[targetID]; ok && shield.Kind == BoosterShield && !shield.Used {
			shield.Used = true
			shield.Activation = &BoosterActivation{
				QuestionNumber: g.QuestionNumber,
				RoundNumber:    g.RoundNumber,
				ActivatedAt:    now,
				Blocked:        true,
				BlockedKind:    kind,
			}
			activation.Blocked = true
			pb.Used = true
			pb.Activation = activation
			return &ActivationOutcome{Blocked: true}, ReasonNone
		}
	}

	effect := h.apply(g, playerID, targetID, now, rng)
	g.ActiveEffects = append(g.ActiveEffects, effect)
	pb.Used = true
	pb.Activation = activation

	return &ActivationOutcome{Effect: effect}, ReasonNone
}
