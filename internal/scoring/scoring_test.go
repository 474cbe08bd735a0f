package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestScoreRanksBySubmissionTime(t *testing.T) {
	subs := map[string]Submission{
		"p1": {Value: "B", SubmittedAt: base},
		"p2": {Value: "B", SubmittedAt: base.Add(1 * time.Second)},
		"p3": {Value: "A", SubmittedAt: base.Add(500 * time.Millisecond)},
	}

	results := Score("B", subs)
	require.Len(t, results, 3)

	assert.True(t, results["p1"].Correct)
	assert.Equal(t, 1, results["p1"].Rank)
	assert.Equal(t, 100, results["p1"].Total())

	assert.True(t, results["p2"].Correct)
	assert.Equal(t, 2, results["p2"].Rank)
	assert.Equal(t, 90, results["p2"].Total())

	assert.False(t, results["p3"].Correct)
	assert.Equal(t, 0, results["p3"].Rank)
	assert.Equal(t, 0, results["p3"].Total())
}

func TestScoreAwardSchedule(t *testing.T) {
	subs := map[string]Submission{
		"p1": {Value: "A", SubmittedAt: base},
		"p2": {Value: "A", SubmittedAt: base.Add(1 * time.Second)},
		"p3": {Value: "A", SubmittedAt: base.Add(2 * time.Second)},
		"p4": {Value: "A", SubmittedAt: base.Add(3 * time.Second)},
		"p5": {Value: "A", SubmittedAt: base.Add(4 * time.Second)},
	}

	results := Score("A", subs)

	assert.Equal(t, 100, results["p1"].Base)
	assert.Equal(t, 90, results["p2"].Base)
	assert.Equal(t, 85, results["p3"].Base)
	assert.Equal(t, 80, results["p4"].Base)
	assert.Equal(t, 80, results["p5"].Base)
}

func TestScoreIdenticalTimestampsShareRank(t *testing.T) {
	subs := map[string]Submission{
		"p1": {Value: "C", SubmittedAt: base},
		"p2": {Value: "C", SubmittedAt: base},
		"p3": {Value: "C", SubmittedAt: base.Add(time.Second)},
	}

	results := Score("C", subs)

	assert.Equal(t, 1, results["p1"].Rank)
	assert.Equal(t, 1, results["p2"].Rank)
	assert.Equal(t, 100, results["p1"].Base)
	assert.Equal(t, 100, results["p2"].Base)
	// The third answerer's rank reflects how many answered before them.
	assert.Equal(t, 3, results["p3"].Rank)
	assert.Equal(t, 85, results["p3"].Base)
}

func TestScoreAbsentPlayersScoreNothing(t *testing.T) {
	subs := map[string]Submission{
		"p1": {Value: "A", SubmittedAt: base},
		"p2": {}, // did not answer
	}

	results := Score("A", subs)

	assert.False(t, results["p2"].Correct)
	assert.Equal(t, 0, results["p2"].Total())
}

func TestScoreNoCorrectAnswers(t *testing.T) {
	subs := map[string]Submission{
		"p1": {Value: "A", SubmittedAt: base},
		"p2": {Value: "B", SubmittedAt: base},
	}

	results := Score("D", subs)

	for _, r := range results {
		assert.False(t, r.Correct)
		assert.Equal(t, 0, r.Total())
	}
}

func TestApplyCatchUpBottomHalfOnly(t *testing.T) {
	results := map[string]*Result{
		"p1": {PlayerID: "p1", Correct: true, Rank: 1, Base: 100},
		"p2": {PlayerID: "p2", Correct: true, Rank: 2, Base: 90},
		"p3": {PlayerID: "p3", Correct: true, Rank: 3, Base: 85},
		"p4": {PlayerID: "p4", Correct: false},
	}
	positions := map[string]int{"p1": 1, "p2": 2, "p3": 3, "p4": 4}

	ApplyCatchUp(results, positions, 4, 15)

	assert.Equal(t, 0, results["p1"].Bonus)
	assert.Equal(t, 0, results["p2"].Bonus)
	assert.Equal(t, 15, results["p3"].Bonus)
	// Incorrect answerers never receive the bonus.
	assert.Equal(t, 0, results["p4"].Bonus)
}

func TestApplyCatchUpSinglePlayerNoop(t *testing.T) {
	results := map[string]*Result{
		"p1": {PlayerID: "p1", Correct: true, Rank: 1, Base: 100},
	}

	ApplyCatchUp(results, map[string]int{"p1": 1}, 1, 15)

	assert.Equal(t, 0, results["p1"].Bonus)
}

func TestApplyCatchUpOddPlayerCount(t *testing.T) {
	results := map[string]*Result{
		"p1": {PlayerID: "p1", Correct: true, Base: 100},
		"p2": {PlayerID: "p2", Correct: true, Base: 90},
		"p3": {PlayerID: "p3", Correct: true, Base: 85},
	}
	positions := map[string]int{"p1": 1, "p2": 2, "p3": 3}

	ApplyCatchUp(results, positions, 3, 15)

	// Threshold is (3+1)/2 = 2: only position 3 is bottom half.
	assert.Equal(t, 0, results["p1"].Bonus)
	assert.Equal(t, 0, results["p2"].Bonus)
	assert.Equal(t, 15, results["p3"].Bonus)
}
