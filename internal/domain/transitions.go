package domain

import (
	"time"

	"quizrush/internal/scoring"
)

// CatchUpBonusPoints is the flat bonus granted to correct answerers in the
// bottom half of the standings.
const CatchUpBonusPoints = 15

// StartNewRound advances to the next planned round. For category quiz
// rounds it selects the round leader, fetches selectable categories and
// enters CategorySelection. For other round types the round is set up and
// the caller is expected to start the first item immediately.
func (g *GameState) StartNewRound(categories CategoryProvider, now time.Time) error {
	if g.Phase == PhaseFinished {
		return ErrGameFinished
	}
	if !g.HasMorePlannedRounds() {
		return ErrInvalidPhase
	}

	g.RoundIndex++
	g.RoundNumber++
	roundType := g.RoundPlan[g.RoundIndex]
	round := NewRound(roundType, g.RoundNumber)

	switch roundType {
	case RoundCategoryQuiz:
		round.LeaderID = g.selectRoundLeader()
		available, err := categories.RandomCategories(g.Locale, 4, g.UsedCategories)
		if err != nil {
			return err
		}
		g.AvailableCategories = available
		g.CurrentRound = round
		g.setPhase(PhaseCategorySelection, now)

	case RoundRankingStars:
		g.Ranking = &RankingState{
			Votes:     make(map[string]*Vote),
			PromptCap: ItemsPerRound,
		}
		g.CurrentRound = round

	case RoundDictionaryGame:
		g.Dictionary = &DictionaryState{
			Answers: make(map[string]*Answer),
			WordCap: ItemsPerRound,
		}
		g.CurrentRound = round
	}

	return nil
}

// selectRoundLeader picks the player with the lowest cumulative score, ties
// broken by join order. The leader of the immediately preceding round is
// excluded whenever an alternative exists.
func (g *GameState) selectRoundLeader() string {
	previous := ""
	if n := len(g.CompletedRounds); n > 0 {
		previous = g.CompletedRounds[n-1].LeaderID
	}

	scores := make(map[string]int, len(g.Scoreboard))
	for _, e := range g.Scoreboard {
		scores[e.PlayerID] = e.Score
	}

	leader := ""
	for _, p := range g.Players {
		if p.ID == previous && len(g.Players) > 1 {
			continue
		}
		if leader == "" || scores[p.ID] < scores[leader] {
			leader = p.ID
		}
	}
	return leader
}

// SetRoundCategory records the round leader's category pick and moves on
// from CategorySelection. Categories outside the offered set are rejected.
func (g *GameState) SetRoundCategory(playerID, category string) error {
	if g.Phase != PhaseCategorySelection {
		return ErrInvalidPhase
	}
	if g.CurrentRound == nil {
		return ErrNoCurrentRound
	}
	if playerID != "" && playerID != g.CurrentRound.LeaderID {
		return ErrNotRoundLeader
	}

	found := false
	for _, c := range g.AvailableCategories {
		if c == category {
			found = true
			break
		}
	}
	if !found {
		return ErrInvalidCategory
	}

	g.CurrentRound.Category = category
	g.UsedCategories[category] = struct{}{}
	g.AvailableCategories = nil
	return nil
}

// StartNextQuestion fetches the next question for the current quiz round
// and enters the Question phase. A false return means the provider has no
// more content; the caller treats that as round/game completion.
func (g *GameState) StartNextQuestion(questions QuestionProvider, now time.Time) (bool, error) {
	if g.CurrentRound == nil || g.CurrentRound.Type != RoundCategoryQuiz {
		return false, ErrNoCurrentRound
	}

	q, err := questions.RandomQuestion(g.Locale, g.CurrentRound.Category, g.UsedQuestionIDs)
	if err != nil {
		return false, err
	}
	if q == nil {
		return false, nil
	}

	g.expireStaleEffects()
	g.CurrentQuestion = q
	g.UsedQuestionIDs[q.ID] = struct{}{}
	g.Answers = make(map[string]*Answer)
	g.QuestionNumber++
	g.CurrentRound.CurrentItemIndex++
	g.setPhase(PhaseQuestion, now)
	return true, nil
}

// BeginAnswering opens the current question for submissions
func (g *GameState) BeginAnswering(now time.Time) error {
	if g.Phase != PhaseQuestion {
		return ErrInvalidPhase
	}
	if g.CurrentQuestion == nil {
		return ErrNoCurrentQuestion
	}
	g.setPhase(PhaseAnswering, now)
	return nil
}

// SubmitAnswer records a player's option pick. The first submission is
// final: a second submission is rejected without touching the recorded
// value. Removed options and booster blocks are rejected with their own
// errors.
func (g *GameState) SubmitAnswer(playerID, optionKey string, now time.Time) error {
	if g.Phase != PhaseAnswering {
		return ErrInvalidPhase
	}
	if g.CurrentQuestion == nil {
		return ErrNoCurrentQuestion
	}
	if _, err := g.GetPlayer(playerID); err != nil {
		return err
	}
	if !g.answeringOpenFor(playerID, now) {
		return ErrAnsweringClosed
	}
	if g.isNoped(playerID) {
		return ErrBlockedByBooster
	}
	if !g.CurrentQuestion.HasOption(optionKey) {
		return ErrInvalidOption
	}
	if g.isOptionRemovedFor(playerID, optionKey) {
		return ErrOptionRemoved
	}
	if _, exists := g.Answers[playerID]; exists {
		return ErrAlreadyAnswered
	}

	g.Answers[playerID] = &Answer{
		PlayerID:    playerID,
		OptionKey:   optionKey,
		SubmittedAt: now,
	}
	return nil
}

// AllAnswered reports whether every player able to answer has answered.
// Noped players are not waited for.
func (g *GameState) AllAnswered() bool {
	if g.CurrentQuestion == nil {
		return false
	}
	return g.allSubmitted(g.Answers)
}

func (g *GameState) allSubmitted(answers map[string]*Answer) bool {
	for _, p := range g.Players {
		if g.isNoped(p.ID) {
			continue
		}
		if _, ok := answers[p.ID]; !ok {
			return false
		}
	}
	return true
}

// answeringOpenFor reports whether the answering window is still open for
// the given player. An extra-time effect extends the window for its
// activator only; everyone else stays bound to the phase deadline.
func (g *GameState) answeringOpenFor(playerID string, now time.Time) bool {
	if !now.After(g.PhaseEndsAt) {
		return true
	}
	for _, e := range g.currentEffects() {
		if e.Kind == BoosterExtraTime && e.ActivatorID == playerID {
			return !now.After(g.PhaseEndsAt.Add(ExtraTimeExtension))
		}
	}
	return false
}

// AnsweringDeadline returns the effective end of the answering window: the
// phase deadline, pushed out by an unconsumed extra-time effect whose
// activator has not answered yet.
func (g *GameState) AnsweringDeadline() time.Time {
	deadline := g.PhaseEndsAt
	if g.Phase != PhaseAnswering && g.Phase != PhaseDictionaryAnswering {
		return deadline
	}
	answers := g.currentAnswers()
	for _, e := range g.currentEffects() {
		if e.Kind != BoosterExtraTime {
			continue
		}
		if _, answered := answers[e.ActivatorID]; answered {
			continue
		}
		if extended := g.PhaseEndsAt.Add(ExtraTimeExtension); extended.After(deadline) {
			deadline = extended
		}
	}
	return deadline
}

func (g *GameState) currentAnswers() map[string]*Answer {
	if g.Phase == PhaseDictionaryAnswering && g.Dictionary != nil {
		return g.Dictionary.Answers
	}
	return g.Answers
}

// RevealAnswer scores the current question, applies post-scoring booster
// effects in registration order, folds the results into the cumulative
// scoreboard and enters Reveal. Effects for this item are consumed.
func (g *GameState) RevealAnswer(now time.Time) error {
	if g.Phase != PhaseAnswering {
		return ErrInvalidPhase
	}
	if g.CurrentQuestion == nil {
		return ErrNoCurrentQuestion
	}

	g.scoreAndFold(g.CurrentQuestion.CorrectKey, g.Answers)
	g.setPhase(PhaseReveal, now)
	return nil
}

// scoreAndFold runs the scoring engine over the given answers, applies the
// catch-up bonus and post-scoring effects, then updates cumulative scores
// and positions. Post-scoring effects must run before the cumulative fold;
// applying them afterwards would corrupt the running totals.
func (g *GameState) scoreAndFold(correctKey string, answers map[string]*Answer) {
	subs := make(map[string]scoring.Submission, len(g.Players))
	for _, p := range g.Players {
		value, submittedAt := "", time.Time{}
		if a, ok := answers[g.effectiveAnswerSource(p.ID)]; ok {
			value, submittedAt = a.OptionKey, a.SubmittedAt
		}
		subs[p.ID] = scoring.Submission{Value: value, SubmittedAt: submittedAt}
	}

	results := scoring.Score(correctKey, subs)
	if g.QuestionNumber > 1 {
		scoring.ApplyCatchUp(results, g.positions(), len(g.Players), CatchUpBonusPoints)
	}
	g.applyPostScoringEffects(results)

	for _, p := range g.Players {
		res := results[p.ID]
		entry := g.EntryFor(p.ID)
		if entry == nil || res == nil {
			continue
		}
		entry.Score += res.Total()
		entry.LastCorrect = res.Correct
		entry.LastPoints = res.Total()
		entry.LastSpeedBonus = res.Rank == 1
		// Reveal shows the submission that was actually scored, so a
		// mirror activator sees the copied key, not their own.
		entry.LastSelected = ""
		if a, ok := answers[g.effectiveAnswerSource(p.ID)]; ok {
			entry.LastSelected = a.OptionKey
		}
	}
	g.updatePositions()
	g.consumeCurrentEffects()
}

// effectiveAnswerSource resolves mirror effects: when a player activated a
// mirror on a target, their scored submission is the target's.
func (g *GameState) effectiveAnswerSource(playerID string) string {
	for _, e := range g.ActiveEffects {
		if e.Kind == BoosterMirror && !e.Consumed && e.ActivatorID == playerID && e.QuestionNumber == g.QuestionNumber {
			return e.TargetID
		}
	}
	return playerID
}

// CompleteRound marks the current round finished, archives it and shows the
// scoreboard.
func (g *GameState) CompleteRound(now time.Time) error {
	if g.CurrentRound == nil {
		return ErrNoCurrentRound
	}

	g.CurrentRound.Completed = true
	g.CompletedRounds = append(g.CompletedRounds, g.CurrentRound)
	g.CurrentRound = nil
	g.CurrentQuestion = nil
	g.Dictionary = nil
	g.Ranking = nil
	g.expireStaleEffects()
	g.setPhase(PhaseScoreboard, now)
	return nil
}

// FinishGame moves the game to its terminal phase. Any open round is
// archived first. No transitions are valid afterwards.
func (g *GameState) FinishGame(now time.Time) error {
	if g.Phase == PhaseFinished {
		return ErrGameFinished
	}
	if g.CurrentRound != nil {
		g.CurrentRound.Completed = true
		g.CompletedRounds = append(g.CompletedRounds, g.CurrentRound)
		g.CurrentRound = nil
	}
	g.CurrentQuestion = nil
	g.Dictionary = nil
	g.Ranking = nil
	g.ActiveEffects = nil
	g.setPhase(PhaseFinished, now)
	return nil
}

// HasMoreQuestionsInRound reports whether the current round has items left
func (g *GameState) HasMoreQuestionsInRound() bool {
	return g.CurrentRound != nil && g.CurrentRound.HasMoreItems()
}

// HasMoreQuestions reports whether the game as a whole has items left
func (g *GameState) HasMoreQuestions() bool {
	return g.QuestionNumber < g.TotalQuestions
}

// HasMorePlannedRounds reports whether another round is planned
func (g *GameState) HasMorePlannedRounds() bool {
	return g.RoundIndex+1 < len(g.RoundPlan)
}
