package domain

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePlan(t *testing.T) {
	assert.ErrorIs(t, ValidatePlan(nil), ErrEmptyRoundPlan)
	assert.ErrorIs(t, ValidatePlan([]RoundType{RoundDictionaryGame, RoundCategoryQuiz}), ErrDictionaryNotLast)
	assert.ErrorIs(t, ValidatePlan([]RoundType{RoundCategoryQuiz, RoundType("BOGUS")}), ErrUnknownRoundType)

	assert.NoError(t, ValidatePlan([]RoundType{RoundCategoryQuiz}))
	assert.NoError(t, ValidatePlan([]RoundType{RoundCategoryQuiz, RoundRankingStars, RoundDictionaryGame}))
}

func TestNewGameInitialState(t *testing.T) {
	g := newTestGame(t, []RoundType{RoundCategoryQuiz, RoundRankingStars})

	assert.Equal(t, PhaseLobby, g.Phase)
	assert.Equal(t, -1, g.RoundIndex)
	assert.Equal(t, 2*ItemsPerRound, g.TotalQuestions)
	assert.Len(t, g.Scoreboard, 3)
	for _, e := range g.Scoreboard {
		assert.Equal(t, 0, e.Score)
		assert.Equal(t, 1, e.Position)
	}
	// Every player holds exactly one unused booster.
	assert.Len(t, g.PlayerBoosters, 3)
	for _, pb := range g.PlayerBoosters {
		assert.False(t, pb.Used)
	}
}

func TestNewGameRejectsBadPlans(t *testing.T) {
	_, err := NewGame("R", "en", testPlayers("p1", "p2"), nil, testTimings, testRNG(), testStart)
	assert.ErrorIs(t, err, ErrEmptyRoundPlan)

	_, err = NewGame("R", "en", nil, []RoundType{RoundCategoryQuiz}, testTimings, testRNG(), testStart)
	assert.ErrorIs(t, err, ErrNotEnoughPlayers)
}

func TestCategorySelection(t *testing.T) {
	content := quizContent()
	g := newTestGame(t, []RoundType{RoundCategoryQuiz})
	require.NoError(t, g.StartNewRound(content, testStart))

	require.Equal(t, PhaseCategorySelection, g.Phase)
	require.NotNil(t, g.CurrentRound)
	assert.Equal(t, "p1", g.CurrentRound.LeaderID)
	assert.Equal(t, []string{"Science", "History", "Geography", "Movies"}, g.AvailableCategories)

	// Only the round leader may pick.
	assert.ErrorIs(t, g.SetRoundCategory("p2", "Science"), ErrNotRoundLeader)
	// The pick must come from the offered set.
	assert.ErrorIs(t, g.SetRoundCategory("p1", "Sports"), ErrInvalidCategory)

	require.NoError(t, g.SetRoundCategory("p1", "Science"))
	assert.Equal(t, "Science", g.CurrentRound.Category)
	assert.Nil(t, g.AvailableCategories)
	_, used := g.UsedCategories["Science"]
	assert.True(t, used)
}

func TestCategoryAutoPickBypassesLeaderCheck(t *testing.T) {
	content := quizContent()
	g := newTestGame(t, []RoundType{RoundCategoryQuiz})
	require.NoError(t, g.StartNewRound(content, testStart))

	// Empty player id is the timeout auto-pick path.
	require.NoError(t, g.SetRoundCategory("", "History"))
	assert.Equal(t, "History", g.CurrentRound.Category)
}

func TestQuizQuestionFlow(t *testing.T) {
	content := quizContent()
	g := newTestGame(t, []RoundType{RoundCategoryQuiz})
	startQuizQuestion(t, g, content)

	assert.Equal(t, 1, g.QuestionNumber)
	assert.Equal(t, 0, g.CurrentRound.CurrentItemIndex)
	assert.Equal(t, "q1", g.CurrentQuestion.ID)
	assert.Equal(t, testStart.Add(testTimings.Question), g.PhaseEndsAt)

	// Answers are rejected before answering opens.
	assert.ErrorIs(t, g.SubmitAnswer("p1", "B", testStart), ErrInvalidPhase)

	openAnswering(t, g)
	assert.Equal(t, PhaseAnswering, g.Phase)

	require.NoError(t, g.SubmitAnswer("p1", "B", testStart.Add(1*time.Second)))
	assert.ErrorIs(t, g.SubmitAnswer("p1", "C", testStart.Add(2*time.Second)), ErrAlreadyAnswered)
	assert.ErrorIs(t, g.SubmitAnswer("p2", "E", testStart.Add(2*time.Second)), ErrInvalidOption)
	assert.ErrorIs(t, g.SubmitAnswer("ghost", "B", testStart.Add(2*time.Second)), ErrPlayerNotFound)

	assert.False(t, g.AllAnswered())
	require.NoError(t, g.SubmitAnswer("p2", "B", testStart.Add(2*time.Second)))
	require.NoError(t, g.SubmitAnswer("p3", "A", testStart.Add(3*time.Second)))
	assert.True(t, g.AllAnswered())

	require.NoError(t, g.RevealAnswer(testStart.Add(4*time.Second)))
	assert.Equal(t, PhaseReveal, g.Phase)

	p1, p2, p3 := g.EntryFor("p1"), g.EntryFor("p2"), g.EntryFor("p3")
	assert.Equal(t, 100, p1.Score)
	assert.True(t, p1.LastCorrect)
	assert.True(t, p1.LastSpeedBonus)
	assert.Equal(t, 1, p1.Position)

	assert.Equal(t, 90, p2.Score)
	assert.Equal(t, 2, p2.Position)
	assert.False(t, p2.LastSpeedBonus)

	assert.Equal(t, 0, p3.Score)
	assert.False(t, p3.LastCorrect)
	assert.Equal(t, "A", p3.LastSelected)
	assert.Equal(t, 3, p3.Position)
}

func TestLateAnswerRejected(t *testing.T) {
	content := quizContent()
	g := newTestGame(t, []RoundType{RoundCategoryQuiz})
	startQuizQuestion(t, g, content)
	openAnswering(t, g)

	assert.ErrorIs(t, g.SubmitAnswer("p1", "B", g.PhaseEndsAt.Add(time.Second)), ErrAnsweringClosed)
	assert.Empty(t, g.Answers)

	// The deadline itself is still inside the window.
	require.NoError(t, g.SubmitAnswer("p1", "B", g.PhaseEndsAt))
}

func TestQuizRoundRunsExactlyThreeItems(t *testing.T) {
	content := quizContent()
	g := newTestGame(t, []RoundType{RoundCategoryQuiz})
	startQuizQuestion(t, g, content)

	for i := 0; i < ItemsPerRound; i++ {
		if i > 0 {
			ok, err := g.StartNextQuestion(content, testStart)
			require.NoError(t, err)
			require.True(t, ok)
		}
		openAnswering(t, g)
		require.NoError(t, g.RevealAnswer(testStart))
	}

	assert.Equal(t, ItemsPerRound, g.QuestionNumber)
	assert.False(t, g.HasMoreQuestionsInRound())

	require.NoError(t, g.CompleteRound(testStart))
	assert.Equal(t, PhaseScoreboard, g.Phase)
	assert.Nil(t, g.CurrentRound)
	require.Len(t, g.CompletedRounds, 1)
	assert.True(t, g.CompletedRounds[0].Completed)
	assert.False(t, g.HasMorePlannedRounds())
}

func TestLeaderRotationExcludesPreviousLeader(t *testing.T) {
	content := quizContent()
	g := newTestGame(t, []RoundType{RoundCategoryQuiz, RoundCategoryQuiz})

	require.NoError(t, g.StartNewRound(content, testStart))
	assert.Equal(t, "p1", g.CurrentRound.LeaderID)
	require.NoError(t, g.CompleteRound(testStart))

	require.NoError(t, g.StartNewRound(content, testStart))
	// All scores are level, so the tie-break is join order minus the
	// previous leader.
	assert.Equal(t, "p2", g.CurrentRound.LeaderID)
}

func TestLeaderIsLowestScorer(t *testing.T) {
	content := quizContent()
	g := newTestGame(t, []RoundType{RoundCategoryQuiz, RoundCategoryQuiz})

	require.NoError(t, g.StartNewRound(content, testStart))
	require.NoError(t, g.CompleteRound(testStart))

	g.EntryFor("p2").Score = 200
	g.EntryFor("p3").Score = 50

	require.NoError(t, g.StartNewRound(content, testStart))
	assert.Equal(t, "p3", g.CurrentRound.LeaderID)
}

func TestCatchUpBonusFromSecondQuestion(t *testing.T) {
	content := quizContent()
	g := newTestGame(t, []RoundType{RoundCategoryQuiz}, "p1", "p2")
	startQuizQuestion(t, g, content)
	openAnswering(t, g)

	require.NoError(t, g.SubmitAnswer("p1", "B", testStart.Add(1*time.Second)))
	require.NoError(t, g.SubmitAnswer("p2", "A", testStart.Add(2*time.Second)))
	require.NoError(t, g.RevealAnswer(testStart.Add(3*time.Second)))

	require.Equal(t, 100, g.EntryFor("p1").Score)
	require.Equal(t, 0, g.EntryFor("p2").Score)

	ok, err := g.StartNextQuestion(content, testStart)
	require.NoError(t, err)
	require.True(t, ok)
	openAnswering(t, g)

	// p2 answers first and is in the bottom half of the standings, so the
	// speed award is topped up with the catch-up bonus.
	require.NoError(t, g.SubmitAnswer("p2", "B", testStart.Add(1*time.Second)))
	require.NoError(t, g.SubmitAnswer("p1", "B", testStart.Add(2*time.Second)))
	require.NoError(t, g.RevealAnswer(testStart.Add(3*time.Second)))

	assert.Equal(t, 100+CatchUpBonusPoints, g.EntryFor("p2").LastPoints)
	assert.Equal(t, 90, g.EntryFor("p1").LastPoints)
	assert.Equal(t, 190, g.EntryFor("p1").Score)
	assert.Equal(t, 115, g.EntryFor("p2").Score)
}

func TestQuestionProviderExhaustion(t *testing.T) {
	content := &stubContent{
		questions:  []*Question{testQuestion("q1", "Science")},
		categories: []string{"Science"},
	}
	g := newTestGame(t, []RoundType{RoundCategoryQuiz})

	require.NoError(t, g.StartNewRound(content, testStart))
	require.NoError(t, g.SetRoundCategory("p1", "Science"))

	ok, err := g.StartNextQuestion(content, testStart)
	require.NoError(t, err)
	require.True(t, ok)
	openAnswering(t, g)
	require.NoError(t, g.RevealAnswer(testStart))

	ok, err = g.StartNextQuestion(content, testStart)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFinishGameIsTerminal(t *testing.T) {
	content := quizContent()
	g := newTestGame(t, []RoundType{RoundCategoryQuiz})
	startQuizQuestion(t, g, content)

	require.NoError(t, g.FinishGame(testStart))
	assert.True(t, g.IsFinished())
	assert.Nil(t, g.CurrentRound)
	require.Len(t, g.CompletedRounds, 1)

	assert.ErrorIs(t, g.FinishGame(testStart), ErrGameFinished)
	assert.ErrorIs(t, g.StartNewRound(content, testStart), ErrGameFinished)
	assert.ErrorIs(t, g.SubmitAnswer("p1", "B", testStart), ErrInvalidPhase)
}

func TestUpdatePositionsCompetitionRanking(t *testing.T) {
	g := newTestGame(t, []RoundType{RoundCategoryQuiz}, "p1", "p2", "p3", "p4")

	g.EntryFor("p1").Score = 100
	g.EntryFor("p2").Score = 200
	g.EntryFor("p3").Score = 100
	g.EntryFor("p4").Score = 50
	g.updatePositions()

	assert.Equal(t, 1, g.EntryFor("p2").Position)
	assert.Equal(t, 2, g.EntryFor("p1").Position)
	assert.Equal(t, 2, g.EntryFor("p3").Position)
	assert.Equal(t, 4, g.EntryFor("p4").Position)

	// Tied players keep join order in the listing.
	assert.Equal(t, "p2", g.Scoreboard[0].PlayerID)
	assert.Equal(t, "p1", g.Scoreboard[1].PlayerID)
	assert.Equal(t, "p3", g.Scoreboard[2].PlayerID)
}

func TestProjectionHidesAnswersUntilReveal(t *testing.T) {
	content := quizContent()
	g := newTestGame(t, []RoundType{RoundCategoryQuiz})
	startQuizQuestion(t, g, content)
	openAnswering(t, g)

	p := g.Projection()
	require.NotNil(t, p.Question)
	assert.Empty(t, p.Question.CorrectKey)
	assert.Empty(t, p.AvailableCategories)

	require.NoError(t, g.SubmitAnswer("p1", "B", testStart))
	p = g.Projection()
	assert.Equal(t, 1, p.AnswerCount)

	require.NoError(t, g.RevealAnswer(testStart))
	p = g.Projection()
	assert.Equal(t, "B", p.Question.CorrectKey)
}

func TestProjectionCategoriesOnlyDuringSelection(t *testing.T) {
	content := quizContent()
	g := newTestGame(t, []RoundType{RoundCategoryQuiz})
	require.NoError(t, g.StartNewRound(content, testStart))

	p := g.Projection()
	assert.Equal(t, []string{"Science", "History", "Geography", "Movies"}, p.AvailableCategories)
	assert.Equal(t, "p1", p.RoundLeaderID)
}

func TestAssignBoostersCyclesPool(t *testing.T) {
	ids := make([]string, 0, 12)
	for i := 0; i < 12; i++ {
		ids = append(ids, string(rune('a'+i)))
	}
	g, err := NewGame("R", "en", testPlayers(ids...), []RoundType{RoundCategoryQuiz}, testTimings, rand.New(rand.NewSource(7)), testStart)
	require.NoError(t, err)

	require.Len(t, g.PlayerBoosters, 12)
	for _, pb := range g.PlayerBoosters {
		_, ok := MetaFor(pb.Kind)
		assert.True(t, ok)
	}
}
