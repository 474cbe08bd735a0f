package domain

// RoundType identifies one of the supported round types
type RoundType string

const (
	RoundCategoryQuiz   RoundType = "CATEGORY_QUIZ"
	RoundRankingStars   RoundType = "RANKING_STARS"
	RoundDictionaryGame RoundType = "DICTIONARY_GAME"
)

// ItemsPerRound is the fixed number of questions, prompts or words in a round
const ItemsPerRound = 3

// Round is one group of exactly ItemsPerRound items of a single type.
// Category and LeaderID are only set for category quiz rounds.
type Round struct {
	Type             RoundType `json:"type"`
	Number           int       `json:"number"`
	Category         string    `json:"category,omitempty"`
	LeaderID         string    `json:"leaderId,omitempty"`
	CurrentItemIndex int       `json:"currentItemIndex"`
	Completed        bool      `json:"completed"`
}

// NewRound creates a round of the given type. The first item has not
// started yet, so CurrentItemIndex is -1.
func NewRound(roundType RoundType, number int) *Round {
	return &Round{
		Type:             roundType,
		Number:           number,
		CurrentItemIndex: -1,
	}
}

// HasMoreItems reports whether the round still has items left to play
func (r *Round) HasMoreItems() bool {
	return !r.Completed && r.CurrentItemIndex < ItemsPerRound-1
}

// ValidatePlan checks a planned round sequence: it must be non-empty and a
// dictionary round, if present, must be the last entry. This is enforced,
// not a convention.
func ValidatePlan(plan []RoundType) error {
	if len(plan) == 0 {
		return ErrEmptyRoundPlan
	}
	for i, rt := range plan {
		switch rt {
		case RoundCategoryQuiz, RoundRankingStars:
		case RoundDictionaryGame:
			if i != len(plan)-1 {
				return ErrDictionaryNotLast
			}
		default:
			return ErrUnknownRoundType
		}
	}
	return nil
}
