package domain

import "time"

// StartNextDictionaryWord fetches the next word for the dictionary round
// and enters DictionaryWord. A false return means the provider is out of
// words, which completes the round rather than erroring.
func (g *GameState) StartNextDictionaryWord(words WordProvider, now time.Time) (bool, error) {
	if g.CurrentRound == nil || g.CurrentRound.Type != RoundDictionaryGame || g.Dictionary == nil {
		return false, ErrNoCurrentRound
	}
	if g.Dictionary.WordIndex >= g.Dictionary.WordCap {
		return false, nil
	}

	w, err := words.RandomWord(g.Locale, g.UsedWordIDs)
	if err != nil {
		return false, err
	}
	if w == nil {
		return false, nil
	}

	g.expireStaleEffects()
	g.Dictionary.CurrentWord = w
	g.Dictionary.Answers = make(map[string]*Answer)
	g.Dictionary.WordIndex++
	g.UsedWordIDs[w.ID] = struct{}{}
	g.QuestionNumber++
	g.CurrentRound.CurrentItemIndex++
	g.setPhase(PhaseDictionaryWord, now)
	return true, nil
}

// BeginDictionaryAnswering opens the current word for definition picks
func (g *GameState) BeginDictionaryAnswering(now time.Time) error {
	if g.Phase != PhaseDictionaryWord {
		return ErrInvalidPhase
	}
	if g.Dictionary == nil || g.Dictionary.CurrentWord == nil {
		return ErrNoCurrentWord
	}
	g.setPhase(PhaseDictionaryAnswering, now)
	return nil
}

// SubmitDictionaryAnswer records a player's definition pick. Same finality
// and booster rules as quiz answers.
func (g *GameState) SubmitDictionaryAnswer(playerID, optionKey string, now time.Time) error {
	if g.Phase != PhaseDictionaryAnswering {
		return ErrInvalidPhase
	}
	if g.Dictionary == nil || g.Dictionary.CurrentWord == nil {
		return ErrNoCurrentWord
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
	if !g.Dictionary.CurrentWord.HasDefinition(optionKey) {
		return ErrInvalidOption
	}
	if g.isOptionRemovedFor(playerID, optionKey) {
		return ErrOptionRemoved
	}
	if _, exists := g.Dictionary.Answers[playerID]; exists {
		return ErrAlreadyAnswered
	}

	g.Dictionary.Answers[playerID] = &Answer{
		PlayerID:    playerID,
		OptionKey:   optionKey,
		SubmittedAt: now,
	}
	return nil
}

// AllDictionaryAnswered reports whether every player able to answer has
// picked a definition
func (g *GameState) AllDictionaryAnswered() bool {
	if g.Dictionary == nil || g.Dictionary.CurrentWord == nil {
		return false
	}
	return g.allSubmitted(g.Dictionary.Answers)
}

// RevealDictionaryAnswer scores the current word exactly like a quiz
// question and enters Reveal.
func (g *GameState) RevealDictionaryAnswer(now time.Time) error {
	if g.Phase != PhaseDictionaryAnswering {
		return ErrInvalidPhase
	}
	if g.Dictionary == nil || g.Dictionary.CurrentWord == nil {
		return ErrNoCurrentWord
	}

	g.scoreAndFold(g.Dictionary.CurrentWord.CorrectKey, g.Dictionary.Answers)
	g.setPhase(PhaseReveal, now)
	return nil
}
