package domain

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

var testTimings = Timings{
	CategorySelection:   15 * time.Second,
	Question:            5 * time.Second,
	Answering:           20 * time.Second,
	Reveal:              6 * time.Second,
	Scoreboard:          8 * time.Second,
	DictionaryWord:      5 * time.Second,
	DictionaryAnswering: 25 * time.Second,
	RankingPrompt:       5 * time.Second,
	RankingVoting:       20 * time.Second,
	RankingReveal:       6 * time.Second,
}

// stubContent is a deterministic in-test content source: items come back in
// declaration order, never randomly.
type stubContent struct {
	questions  []*Question
	words      []*DictionaryWord
	prompts    []*RankingPrompt
	categories []string
}

func (s *stubContent) RandomQuestion(locale, category string, excludeIDs map[string]struct{}) (*Question, error) {
	for _, q := range s.questions {
		if _, used := excludeIDs[q.ID]; used {
			continue
		}
		if category != "" && q.Category != category {
			continue
		}
		return q, nil
	}
	return nil, nil
}

func (s *stubContent) QuestionCount(locale string) (int, error) {
	return len(s.questions), nil
}

func (s *stubContent) RandomWord(locale string, excludeIDs map[string]struct{}) (*DictionaryWord, error) {
	for _, w := range s.words {
		if _, used := excludeIDs[w.ID]; used {
			continue
		}
		return w, nil
	}
	return nil, nil
}

func (s *stubContent) RandomPrompt(locale string, excludeIDs map[string]struct{}) (*RankingPrompt, error) {
	for _, p := range s.prompts {
		if _, used := excludeIDs[p.ID]; used {
			continue
		}
		return p, nil
	}
	return nil, nil
}

func (s *stubContent) RandomCategories(locale string, count int, exclude map[string]struct{}) ([]string, error) {
	out := make([]string, 0, count)
	for _, c := range s.categories {
		if _, used := exclude[c]; used {
			continue
		}
		out = append(out, c)
		if len(out) == count {
			break
		}
	}
	return out, nil
}

func testQuestion(id, category string) *Question {
	return &Question{
		ID:       id,
		Text:     "question " + id,
		Category: category,
		Options: []Option{
			{Key: "A", Text: "a"},
			{Key: "B", Text: "b"},
			{Key: "C", Text: "c"},
			{Key: "D", Text: "d"},
		},
		CorrectKey: "B",
	}
}

func testWord(id string) *DictionaryWord {
	return &DictionaryWord{
		ID:   id,
		Word: "word " + id,
		Definitions: []Option{
			{Key: "A", Text: "a"},
			{Key: "B", Text: "b"},
			{Key: "C", Text: "c"},
			{Key: "D", Text: "d"},
		},
		CorrectKey: "A",
	}
}

func quizContent() *stubContent {
	return &stubContent{
		questions: []*Question{
			testQuestion("q1", "Science"),
			testQuestion("q2", "Science"),
			testQuestion("q3", "Science"),
			testQuestion("q4", "History"),
			testQuestion("q5", "History"),
			testQuestion("q6", "History"),
		},
		words: []*DictionaryWord{
			testWord("w1"), testWord("w2"), testWord("w3"),
		},
		prompts: []*RankingPrompt{
			{ID: "pr1", Text: "prompt one"},
			{ID: "pr2", Text: "prompt two"},
			{ID: "pr3", Text: "prompt three"},
		},
		categories: []string{"Science", "History", "Geography", "Movies"},
	}
}

func testPlayers(ids ...string) []*Player {
	players := make([]*Player, 0, len(ids))
	for i, id := range ids {
		players = append(players, NewPlayer(id, "nick-"+id, testStart.Add(time.Duration(i)*time.Second)))
	}
	return players
}

func newTestGame(t *testing.T, plan []RoundType, playerIDs ...string) *GameState {
	t.Helper()
	if len(playerIDs) == 0 {
		playerIDs = []string{"p1", "p2", "p3"}
	}
	g, err := NewGame("ROOM1", "en", testPlayers(playerIDs...), plan, testTimings, rand.New(rand.NewSource(1)), testStart)
	require.NoError(t, err)
	return g
}

// startQuizQuestion walks a fresh game into the Question phase of its first
// quiz round.
func startQuizQuestion(t *testing.T, g *GameState, content *stubContent) {
	t.Helper()
	require.NoError(t, g.StartNewRound(content, testStart))
	require.Equal(t, PhaseCategorySelection, g.Phase)
	require.NoError(t, g.SetRoundCategory(g.CurrentRound.LeaderID, "Science"))
	ok, err := g.StartNextQuestion(content, testStart)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, PhaseQuestion, g.Phase)
}

// openAnswering moves Question -> Answering
func openAnswering(t *testing.T, g *GameState) {
	t.Helper()
	require.NoError(t, g.BeginAnswering(testStart))
}

// giveBooster overrides a player's assigned booster for targeted scenarios
func giveBooster(g *GameState, playerID string, kind BoosterKind) {
	g.PlayerBoosters[playerID] = &PlayerBooster{Kind: kind}
}

func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(42))
}
