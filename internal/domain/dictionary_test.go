package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startDictionaryAnswering(t *testing.T, g *GameState, content *stubContent) {
	t.Helper()
	require.NoError(t, g.StartNewRound(content, testStart))
	ok, err := g.StartNextDictionaryWord(content, testStart)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, PhaseDictionaryWord, g.Phase)
	require.NoError(t, g.BeginDictionaryAnswering(testStart))
}

func TestDictionaryAnswerFlow(t *testing.T) {
	content := quizContent()
	g := newTestGame(t, []RoundType{RoundDictionaryGame})
	startDictionaryAnswering(t, g, content)

	assert.Equal(t, "w1", g.Dictionary.CurrentWord.ID)
	assert.Equal(t, 1, g.QuestionNumber)

	assert.ErrorIs(t, g.SubmitDictionaryAnswer("p1", "E", testStart), ErrInvalidOption)
	require.NoError(t, g.SubmitDictionaryAnswer("p1", "A", testStart.Add(1*time.Second)))
	assert.ErrorIs(t, g.SubmitDictionaryAnswer("p1", "B", testStart.Add(2*time.Second)), ErrAlreadyAnswered)

	require.NoError(t, g.SubmitDictionaryAnswer("p2", "A", testStart.Add(2*time.Second)))
	assert.False(t, g.AllDictionaryAnswered())
	require.NoError(t, g.SubmitDictionaryAnswer("p3", "C", testStart.Add(3*time.Second)))
	assert.True(t, g.AllDictionaryAnswered())

	require.NoError(t, g.RevealDictionaryAnswer(testStart.Add(4*time.Second)))
	assert.Equal(t, PhaseReveal, g.Phase)

	// Words are scored exactly like quiz questions.
	assert.Equal(t, 100, g.EntryFor("p1").Score)
	assert.Equal(t, 90, g.EntryFor("p2").Score)
	assert.Equal(t, 0, g.EntryFor("p3").Score)
}

func TestDictionaryLateAnswerRejected(t *testing.T) {
	content := quizContent()
	g := newTestGame(t, []RoundType{RoundDictionaryGame})
	startDictionaryAnswering(t, g, content)

	assert.ErrorIs(t, g.SubmitDictionaryAnswer("p1", "A", g.PhaseEndsAt.Add(time.Second)), ErrAnsweringClosed)
	assert.Empty(t, g.Dictionary.Answers)
}

func TestDictionaryNopeApplies(t *testing.T) {
	content := quizContent()
	g := newTestGame(t, []RoundType{RoundDictionaryGame})
	giveBooster(g, "p1", BoosterNope)
	giveBooster(g, "p2", BoosterDoublePoints)
	startDictionaryAnswering(t, g, content)

	_, reason := g.ActivateBooster("p1", BoosterNope, "p2", testStart, testRNG())
	require.Equal(t, ReasonNone, reason)

	assert.ErrorIs(t, g.SubmitDictionaryAnswer("p2", "A", testStart), ErrBlockedByBooster)

	require.NoError(t, g.SubmitDictionaryAnswer("p1", "A", testStart))
	require.NoError(t, g.SubmitDictionaryAnswer("p3", "A", testStart))
	assert.True(t, g.AllDictionaryAnswered())
}

func TestDictionaryRoundRunsExactlyThreeWords(t *testing.T) {
	content := quizContent()
	g := newTestGame(t, []RoundType{RoundDictionaryGame})
	require.NoError(t, g.StartNewRound(content, testStart))

	for i := 0; i < ItemsPerRound; i++ {
		ok, err := g.StartNextDictionaryWord(content, testStart)
		require.NoError(t, err)
		require.True(t, ok)
		require.NoError(t, g.BeginDictionaryAnswering(testStart))
		require.NoError(t, g.RevealDictionaryAnswer(testStart))
	}

	ok, err := g.StartNextDictionaryWord(content, testStart)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, g.CompleteRound(testStart))
	assert.Nil(t, g.Dictionary)
}

func TestDictionaryProjectionHidesCorrectKey(t *testing.T) {
	content := quizContent()
	g := newTestGame(t, []RoundType{RoundDictionaryGame})
	startDictionaryAnswering(t, g, content)

	p := g.Projection()
	require.NotNil(t, p.Word)
	assert.Empty(t, p.Word.CorrectKey)
	assert.Nil(t, p.Question)

	require.NoError(t, g.RevealDictionaryAnswer(testStart))
	p = g.Projection()
	assert.Equal(t, "A", p.Word.CorrectKey)
}
