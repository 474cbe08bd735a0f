package content

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/ncruces/go-sqlite3/driver" // pure-Go SQLite driver
	_ "github.com/ncruces/go-sqlite3/embed"  // embedded SQLite binary

	"quizrush/internal/domain"
)

// SQLiteStore backs the content provider interfaces with a SQLite database
type SQLiteStore struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS questions (
	id TEXT PRIMARY KEY,
	locale TEXT NOT NULL,
	category TEXT NOT NULL,
	text TEXT NOT NULL,
	option_a TEXT NOT NULL,
	option_b TEXT NOT NULL,
	option_c TEXT NOT NULL,
	option_d TEXT NOT NULL,
	correct_key TEXT NOT NULL,
	explanation TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS dictionary_words (
	id TEXT PRIMARY KEY,
	locale TEXT NOT NULL,
	word TEXT NOT NULL,
	definition_a TEXT NOT NULL,
	definition_b TEXT NOT NULL,
	definition_c TEXT NOT NULL,
	definition_d TEXT NOT NULL,
	correct_key TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS ranking_prompts (
	id TEXT PRIMARY KEY,
	locale TEXT NOT NULL,
	text TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_questions_locale_category ON questions(locale, category);
`

// OpenSQLite opens the database at dsn and bootstraps the schema
func OpenSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("bootstrap schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// excludeClause builds a NOT IN clause for the given id set
func excludeClause(column string, exclude map[string]struct{}) (string, []any) {
	if len(exclude) == 0 {
		return "", nil
	}
	placeholders := make([]string, 0, len(exclude))
	args := make([]any, 0, len(exclude))
	for id := range exclude {
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}
	return fmt.Sprintf(" AND %s NOT IN (%s)", column, strings.Join(placeholders, ",")), args
}

// RandomQuestion returns a random matching question, or (nil, nil) when no
// unused question is left.
func (s *SQLiteStore) RandomQuestion(locale, category string, excludeIDs map[string]struct{}) (*domain.Question, error) {
	query := `SELECT id, category, text, option_a, option_b, option_c, option_d, correct_key, explanation
		FROM questions WHERE locale = ?`
	args := []any{locale}
	if category != "" {
		query += " AND category = ?"
		args = append(args, category)
	}
	clause, clauseArgs := excludeClause("id", excludeIDs)
	query += clause + " ORDER BY RANDOM() LIMIT 1"
	args = append(args, clauseArgs...)

	var q domain.Question
	var a, b, c, d string
	err := s.db.QueryRow(query, args...).Scan(&q.ID, &q.Category, &q.Text, &a, &b, &c, &d, &q.CorrectKey, &q.Explanation)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	q.Options = opts(a, b, c, d)
	return &q, nil
}

// QuestionCount returns the number of questions for a locale
func (s *SQLiteStore) QuestionCount(locale string) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM questions WHERE locale = ?`, locale).Scan(&count)
	return count, err
}

// RandomWord returns a random unused dictionary word, or (nil, nil)
func (s *SQLiteStore) RandomWord(locale string, excludeIDs map[string]struct{}) (*domain.DictionaryWord, error) {
	query := `SELECT id, word, definition_a, definition_b, definition_c, definition_d, correct_key
		FROM dictionary_words WHERE locale = ?`
	args := []any{locale}
	clause, clauseArgs := excludeClause("id", excludeIDs)
	query += clause + " ORDER BY RANDOM() LIMIT 1"
	args = append(args, clauseArgs...)

	var w domain.DictionaryWord
	var a, b, c, d string
	err := s.db.QueryRow(query, args...).Scan(&w.ID, &w.Word, &a, &b, &c, &d, &w.CorrectKey)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	w.Definitions = opts(a, b, c, d)
	return &w, nil
}

// RandomPrompt returns a random unused ranking prompt, or (nil, nil)
func (s *SQLiteStore) RandomPrompt(locale string, excludeIDs map[string]struct{}) (*domain.RankingPrompt, error) {
	query := `SELECT id, text FROM ranking_prompts WHERE locale = ?`
	args := []any{locale}
	clause, clauseArgs := excludeClause("id", excludeIDs)
	query += clause + " ORDER BY RANDOM() LIMIT 1"
	args = append(args, clauseArgs...)

	var p domain.RankingPrompt
	err := s.db.QueryRow(query, args...).Scan(&p.ID, &p.Text)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// RandomCategories returns up to count random categories that still have
// questions, excluding the given set. May return fewer than requested.
func (s *SQLiteStore) RandomCategories(locale string, count int, exclude map[string]struct{}) ([]string, error) {
	query := `SELECT DISTINCT category FROM questions WHERE locale = ?`
	args := []any{locale}
	clause, clauseArgs := excludeClause("category", exclude)
	query += clause + " ORDER BY RANDOM() LIMIT ?"
	args = append(args, clauseArgs...)
	args = append(args, count)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
