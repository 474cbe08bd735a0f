// Package scoring turns per-player submissions into ranked point awards.
// It has no knowledge of rounds, boosters or phases: callers hand it the
// correct key and timestamped submissions and fold the results themselves.
package scoring

import (
	"sort"
	"time"
)

// Submission is one player's submitted value with its submission time. An
// empty Value means the player did not answer.
type Submission struct {
	Value       string
	SubmittedAt time.Time
}

// Result is the scoring outcome for one player. Total is always derived
// from Base and Bonus, never stored, so the parts cannot drift apart.
type Result struct {
	PlayerID string
	Correct  bool
	Rank     int // 1-based among correct answerers, 0 for incorrect/absent
	Base     int
	Bonus    int
}

// Total returns the player's points for the item
func (r *Result) Total() int {
	return r.Base + r.Bonus
}

// awardForRank is the fixed point schedule: 1st 100, 2nd 90, 3rd 85,
// everyone else who is correct 80.
func awardForRank(rank int) int {
	switch rank {
	case 1:
		return 100
	case 2:
		return 90
	case 3:
		return 85
	default:
		return 80
	}
}

// Score partitions players into correct and incorrect answerers and ranks
// the correct ones by submission time ascending. Identical timestamps share
// the same rank and the same award; there is no tie-break by player id.
func Score(correctValue string, submissions map[string]Submission) map[string]*Result {
	results := make(map[string]*Result, len(submissions))

	type timed struct {
		playerID string
		at       time.Time
	}
	correct := make([]timed, 0, len(submissions))

	for playerID, sub := range submissions {
		res := &Result{PlayerID: playerID}
		results[playerID] = res
		if sub.Value != "" && sub.Value == correctValue {
			res.Correct = true
			correct = append(correct, timed{playerID: playerID, at: sub.SubmittedAt})
		}
	}

	sort.Slice(correct, func(i, j int) bool {
		return correct[i].at.Before(correct[j].at)
	})

	for i, c := range correct {
		rank := i + 1
		if i > 0 && c.at.Equal(correct[i-1].at) {
			rank = results[correct[i-1].playerID].Rank
		}
		res := results[c.playerID]
		res.Rank = rank
		res.Base = awardForRank(rank)
	}

	return results
}

// ApplyCatchUp grants a flat bonus to correct answerers in the bottom half
// of the current standings. It is a separate, explicitly invoked pass, not
// folded into the base award. positions maps player id to 1-based standing.
func ApplyCatchUp(results map[string]*Result, positions map[string]int, playerCount, bonus int) {
	if playerCount < 2 {
		return
	}
	// Bottom half: strictly below the median position.
	threshold := (playerCount + 1) / 2
	for playerID, res := range results {
		if !res.Correct {
			continue
		}
		if pos, ok := positions[playerID]; ok && pos > threshold {
			res.Bonus += bonus
		}
	}
}
