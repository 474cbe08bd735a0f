package domain

import "time"

const (
	// VotePoints is awarded for every vote a player receives on a prompt
	VotePoints = 30
	// StarBonusPoints goes to the most voted player(s) of a prompt
	StarBonusPoints = 40
)

// StartNextRankingPrompt fetches the next prompt for the ranking round and
// enters RankingPrompt. A false return means the provider is out of
// prompts, which completes the round.
func (g *GameState) StartNextRankingPrompt(prompts PromptProvider, now time.Time) (bool, error) {
	if g.CurrentRound == nil || g.CurrentRound.Type != RoundRankingStars || g.Ranking == nil {
		return false, ErrNoCurrentRound
	}
	if g.Ranking.PromptIndex >= g.Ranking.PromptCap {
		return false, nil
	}

	p, err := prompts.RandomPrompt(g.Locale, g.UsedPromptIDs)
	if err != nil {
		return false, err
	}
	if p == nil {
		return false, nil
	}

	g.expireStaleEffects()
	g.Ranking.CurrentPrompt = p
	g.Ranking.Votes = make(map[string]*Vote)
	g.Ranking.LastResult = nil
	g.Ranking.PromptIndex++
	g.UsedPromptIDs[p.ID] = struct{}{}
	g.QuestionNumber++
	g.CurrentRound.CurrentItemIndex++
	g.setPhase(PhaseRankingPrompt, now)
	return true, nil
}

// BeginRankingVoting opens the current prompt for votes
func (g *GameState) BeginRankingVoting(now time.Time) error {
	if g.Phase != PhaseRankingPrompt {
		return ErrInvalidPhase
	}
	if g.Ranking == nil || g.Ranking.CurrentPrompt == nil {
		return ErrNoCurrentPrompt
	}
	g.setPhase(PhaseRankingVoting, now)
	return nil
}

// SubmitRankingVote records a player's vote for another player. Self-votes
// and votes for unknown players are rejected; the first vote is final.
func (g *GameState) SubmitRankingVote(voterID, targetID string, now time.Time) error {
	if g.Phase != PhaseRankingVoting {
		return ErrInvalidPhase
	}
	if g.Ranking == nil || g.Ranking.CurrentPrompt == nil {
		return ErrNoCurrentPrompt
	}
	if _, err := g.GetPlayer(voterID); err != nil {
		return err
	}
	if voterID == targetID {
		return ErrCannotVoteSelf
	}
	if _, err := g.GetPlayer(targetID); err != nil {
		return ErrInvalidTarget
	}
	if _, exists := g.Ranking.Votes[voterID]; exists {
		return ErrAlreadyVoted
	}

	g.Ranking.Votes[voterID] = &Vote{
		VoterID:     voterID,
		TargetID:    targetID,
		SubmittedAt: now,
	}
	return nil
}

// AllVoted reports whether every player has voted on the current prompt
func (g *GameState) AllVoted() bool {
	if g.Ranking == nil || g.Ranking.CurrentPrompt == nil {
		return false
	}
	return len(g.Ranking.Votes) >= len(g.Players)
}

// RevealRankingVotes counts the votes for the current prompt, awards vote
// and star points, folds them into cumulative scores and enters
// RankingReveal.
func (g *GameState) RevealRankingVotes(now time.Time) error {
	if g.Phase != PhaseRankingVoting {
		return ErrInvalidPhase
	}
	if g.Ranking == nil || g.Ranking.CurrentPrompt == nil {
		return ErrNoCurrentPrompt
	}

	counts := make(map[string]int, len(g.Players))
	for _, v := range g.Ranking.Votes {
		counts[v.TargetID]++
	}

	maxVotes := 0
	for _, c := range counts {
		if c > maxVotes {
			maxVotes = c
		}
	}

	results := make([]VoteResult, 0, len(g.Players))
	for _, p := range g.Players {
		votes := counts[p.ID]
		points := votes * VotePoints
		starred := votes > 0 && votes == maxVotes
		if starred {
			points += StarBonusPoints
		}

		results = append(results, VoteResult{
			PlayerID: p.ID,
			Nickname: p.Nickname,
			Votes:    votes,
			Points:   points,
			Starred:  starred,
		})

		entry := g.EntryFor(p.ID)
		if entry == nil {
			continue
		}
		entry.Score += points
		entry.LastCorrect = starred
		entry.LastPoints = points
		entry.LastSelected = ""
		entry.LastSpeedBonus = false
	}

	g.Ranking.LastResult = results
	g.updatePositions()
	g.consumeCurrentEffects()
	g.setPhase(PhaseRankingReveal, now)
	return nil
}
