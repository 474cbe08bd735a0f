package domain

// Option is one selectable choice of a question or dictionary word,
// identified by a short key ("A".."D").
type Option struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// Question is a multiple-choice quiz question. CorrectKey must never reach
// clients before the reveal phase.
type Question struct {
	ID          string   `json:"id"`
	Text        string   `json:"text"`
	Category    string   `json:"category"`
	Options     []Option `json:"options"`
	CorrectKey  string   `json:"correctKey"`
	Explanation string   `json:"explanation,omitempty"`
}

// HasOption reports whether the given key is a valid option of the question
func (q *Question) HasOption(key string) bool {
	for _, o := range q.Options {
		if o.Key == key {
			return true
		}
	}
	return false
}

// DictionaryWord is an obscure word with candidate definitions, exactly one
// of which is real.
type DictionaryWord struct {
	ID          string   `json:"id"`
	Word        string   `json:"word"`
	Definitions []Option `json:"definitions"`
	CorrectKey  string   `json:"correctKey"`
}

// HasDefinition reports whether the given key is a valid definition key
func (w *DictionaryWord) HasDefinition(key string) bool {
	for _, d := range w.Definitions {
		if d.Key == key {
			return true
		}
	}
	return false
}

// RankingPrompt is a "who in this group..." style prompt that players vote on
type RankingPrompt struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// QuestionProvider supplies quiz questions. A (nil, nil) return means the
// provider has no more matching content; it is an expected terminal signal,
// not an error.
type QuestionProvider interface {
	RandomQuestion(locale, category string, excludeIDs map[string]struct{}) (*Question, error)
	QuestionCount(locale string) (int, error)
}

// WordProvider supplies dictionary words. (nil, nil) means exhausted.
type WordProvider interface {
	RandomWord(locale string, excludeIDs map[string]struct{}) (*DictionaryWord, error)
}

// PromptProvider supplies ranking prompts. (nil, nil) means exhausted.
type PromptProvider interface {
	RandomPrompt(locale string, excludeIDs map[string]struct{}) (*RankingPrompt, error)
}

// CategoryProvider supplies quiz categories. It may return fewer categories
// than requested.
type CategoryProvider interface {
	RandomCategories(locale string, count int, exclude map[string]struct{}) ([]string, error)
}
