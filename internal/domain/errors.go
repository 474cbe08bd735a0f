package domain

import "errors"

// Domain errors. Input rejections never mutate state; callers translate
// them to reason codes at the transport boundary.
var (
	ErrGameNotFound       = errors.New("game not found")
	ErrGameFull           = errors.New("game is full")
	ErrGameAlreadyStarted = errors.New("game already started")
	ErrNotEnoughPlayers   = errors.New("not enough players to start")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrNotHost            = errors.New("only host can perform this action")
	ErrInvalidPhase       = errors.New("invalid action for current phase")
	ErrGameFinished       = errors.New("game is finished")

	ErrNotRoundLeader   = errors.New("only the round leader can pick the category")
	ErrInvalidCategory  = errors.New("category is not available")
	ErrInvalidOption    = errors.New("invalid option key")
	ErrOptionRemoved    = errors.New("option was removed by a booster")
	ErrAlreadyAnswered  = errors.New("already answered this question")
	ErrAnsweringClosed  = errors.New("answering window has closed")
	ErrAlreadyVoted     = errors.New("already voted this prompt")
	ErrBlockedByBooster = errors.New("answering blocked by a booster")
	ErrCannotVoteSelf   = errors.New("cannot vote for yourself")
	ErrInvalidTarget    = errors.New("invalid target player")

	ErrEmptyRoundPlan    = errors.New("round plan is empty")
	ErrDictionaryNotLast = errors.New("dictionary round must be the last round")
	ErrUnknownRoundType  = errors.New("unknown round type")

	// Invariant violations: these indicate the orchestrator and the state
	// machine have desynchronized and should be logged loudly.
	ErrNoCurrentRound    = errors.New("no round in progress")
	ErrNoCurrentQuestion = errors.New("no question in progress")
	ErrNoCurrentWord     = errors.New("no dictionary word in progress")
	ErrNoCurrentPrompt   = errors.New("no ranking prompt in progress")
)

// ReasonCode is the stable string surfaced to clients when an action is
// rejected. Raw error types never cross the transport boundary.
type ReasonCode string

const (
	ReasonNone             ReasonCode = ""
	ReasonInvalidPhase     ReasonCode = "invalid_phase"
	ReasonInvalidCategory  ReasonCode = "invalid_category"
	ReasonNotRoundLeader   ReasonCode = "not_round_leader"
	ReasonInvalidOption    ReasonCode = "invalid_option"
	ReasonAlreadyAnswered  ReasonCode = "already_answered"
	ReasonAlreadyVoted     ReasonCode = "already_voted"
	ReasonBlockedByBooster ReasonCode = "blocked_by_booster"
	ReasonCannotVoteSelf   ReasonCode = "cannot_vote_self"
	ReasonInvalidTarget    ReasonCode = "invalid_target"
	ReasonBoosterNotOwned  ReasonCode = "booster_not_owned"
	ReasonBoosterUsed      ReasonCode = "booster_already_used"
	ReasonBoosterPassive   ReasonCode = "booster_is_passive"
	ReasonTargetRequired   ReasonCode = "target_required"
	ReasonTargetNotAllowed ReasonCode = "target_not_allowed"
	ReasonPlayerNotFound   ReasonCode = "player_not_found"
	ReasonInternal         ReasonCode = "internal_error"
)

// ReasonFor maps a domain error to its client-facing reason code
func ReasonFor(err error) ReasonCode {
	switch {
	case err == nil:
		return ReasonNone
	case errors.Is(err, ErrInvalidPhase), errors.Is(err, ErrGameFinished), errors.Is(err, ErrAnsweringClosed):
		return ReasonInvalidPhase
	case errors.Is(err, ErrInvalidCategory):
		return ReasonInvalidCategory
	case errors.Is(err, ErrNotRoundLeader):
		return ReasonNotRoundLeader
	case errors.Is(err, ErrInvalidOption), errors.Is(err, ErrOptionRemoved):
		return ReasonInvalidOption
	case errors.Is(err, ErrAlreadyAnswered):
		return ReasonAlreadyAnswered
	case errors.Is(err, ErrAlreadyVoted):
		return ReasonAlreadyVoted
	case errors.Is(err, ErrBlockedByBooster):
		return ReasonBlockedByBooster
	case errors.Is(err, ErrCannotVoteSelf):
		return ReasonCannotVoteSelf
	case errors.Is(err, ErrInvalidTarget):
		return ReasonInvalidTarget
	case errors.Is(err, ErrPlayerNotFound):
		return ReasonPlayerNotFound
	default:
		return ReasonInternal
	}
}
