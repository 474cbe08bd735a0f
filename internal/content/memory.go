// Package content implements the question, word, prompt and category
// providers the game consumes. The memory store is the zero-config default;
// the SQLite store backs the same interfaces with a database.
package content

import (
	"math/rand"
	"sync"

	"quizrush/internal/domain"
)

// MemoryStore serves embedded content banks. Safe for concurrent use by
// multiple rooms. The embedded banks are English only: the locale argument
// is accepted for provider-interface compatibility and every locale falls
// back to the same English content. Locale-aware content needs the SQLite
// store.
type MemoryStore struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewMemoryStore creates a memory store drawing from the given random source
func NewMemoryStore(rng *rand.Rand) *MemoryStore {
	return &MemoryStore{rng: rng}
}

// RandomQuestion returns a random not-yet-used question for the category,
// or (nil, nil) when the bank is exhausted.
func (s *MemoryStore) RandomQuestion(locale, category string, excludeIDs map[string]struct{}) (*domain.Question, error) {
	candidates := make([]*domain.Question, 0, len(questionBank))
	for i := range questionBank {
		q := &questionBank[i]
		if category != "" && q.Category != category {
			continue
		}
		if _, used := excludeIDs[q.ID]; used {
			continue
		}
		candidates = append(candidates, q)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	s.mu.Lock()
	pick := candidates[s.rng.Intn(len(candidates))]
	s.mu.Unlock()

	q := *pick
	q.Options = append([]domain.Option(nil), pick.Options...)
	return &q, nil
}

// QuestionCount returns the size of the question bank
func (s *MemoryStore) QuestionCount(locale string) (int, error) {
	return len(questionBank), nil
}

// RandomWord returns a random not-yet-used dictionary word, or (nil, nil)
// when exhausted.
func (s *MemoryStore) RandomWord(locale string, excludeIDs map[string]struct{}) (*domain.DictionaryWord, error) {
	candidates := make([]*domain.DictionaryWord, 0, len(wordBank))
	for i := range wordBank {
		w := &wordBank[i]
		if _, used := excludeIDs[w.ID]; used {
			continue
		}
		candidates = append(candidates, w)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	s.mu.Lock()
	pick := candidates[s.rng.Intn(len(candidates))]
	s.mu.Unlock()

	w := *pick
	w.Definitions = append([]domain.Option(nil), pick.Definitions...)
	return &w, nil
}

// RandomPrompt returns a random not-yet-used ranking prompt, or (nil, nil)
// when exhausted.
func (s *MemoryStore) RandomPrompt(locale string, excludeIDs map[string]struct{}) (*domain.RankingPrompt, error) {
	candidates := make([]*domain.RankingPrompt, 0, len(promptBank))
	for i := range promptBank {
		p := &promptBank[i]
		if _, used := excludeIDs[p.ID]; used {
			continue
		}
		candidates = append(candidates, p)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	s.mu.Lock()
	pick := candidates[s.rng.Intn(len(candidates))]
	s.mu.Unlock()

	p := *pick
	return &p, nil
}

// RandomCategories returns up to count distinct categories that still have
// questions, excluding the given set. May return fewer than requested.
func (s *MemoryStore) RandomCategories(locale string, count int, exclude map[string]struct{}) ([]string, error) {
	seen := make(map[string]struct{})
	available := make([]string, 0, count)
	for i := range questionBank {
		c := questionBank[i].Category
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		if _, skip := exclude[c]; skip {
			continue
		}
		available = append(available, c)
	}

	s.mu.Lock()
	s.rng.Shuffle(len(available), func(i, j int) {
		available[i], available[j] = available[j], available[i]
	})
	s.mu.Unlock()

	if len(available) > count {
		available = available[:count]
	}
	return available, nil
}
