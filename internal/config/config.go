package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Game    GameConfig
	Content ContentConfig
	Logging LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port string
	Host string
	Env  string // "development" or "production"
}

// GameConfig holds game-related configuration
type GameConfig struct {
	MinPlayers int
	MaxPlayers int
	Locale     string

	QuizRounds        int
	IncludeRanking    bool
	IncludeDictionary bool

	CategorySelectionSeconds   int
	QuestionSeconds            int
	AnsweringSeconds           int
	RevealSeconds              int
	ScoreboardSeconds          int
	DictionaryWordSeconds      int
	DictionaryAnsweringSeconds int
	RankingPromptSeconds       int
	RankingVotingSeconds       int
	RankingRevealSeconds       int

	RoomCodeLength int
}

// ContentConfig selects the content provider backing questions, words,
// prompts and categories.
type ContentConfig struct {
	Source string // "memory" or "sqlite"
	DSN    string // SQLite file path when Source is "sqlite"
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "text"
}

// Load loads configuration from a .env file (if present) and environment
// variables, falling back to defaults.
func Load() *Config {
	// Missing .env is fine; env vars still apply.
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Host: getEnv("HOST", "0.0.0.0"),
			Env:  getEnv("ENV", "development"),
		},
		Game: GameConfig{
			MinPlayers:                 getEnvInt("MIN_PLAYERS", 2),
			MaxPlayers:                 getEnvInt("MAX_PLAYERS", 8),
			Locale:                     getEnv("GAME_LOCALE", "en"),
			QuizRounds:                 getEnvInt("QUIZ_ROUNDS", 2),
			IncludeRanking:             getEnvBool("INCLUDE_RANKING_ROUND", true),
			IncludeDictionary:          getEnvBool("INCLUDE_DICTIONARY_ROUND", true),
			CategorySelectionSeconds:   getEnvInt("CATEGORY_SELECTION_SECONDS", 15),
			QuestionSeconds:            getEnvInt("QUESTION_SECONDS", 5),
			AnsweringSeconds:           getEnvInt("ANSWERING_SECONDS", 20),
			RevealSeconds:              getEnvInt("REVEAL_SECONDS", 6),
			ScoreboardSeconds:          getEnvInt("SCOREBOARD_SECONDS", 8),
			DictionaryWordSeconds:      getEnvInt("DICTIONARY_WORD_SECONDS", 5),
			DictionaryAnsweringSeconds: getEnvInt("DICTIONARY_ANSWERING_SECONDS", 25),
			RankingPromptSeconds:       getEnvInt("RANKING_PROMPT_SECONDS", 5),
			RankingVotingSeconds:       getEnvInt("RANKING_VOTING_SECONDS", 20),
			RankingRevealSeconds:       getEnvInt("RANKING_REVEAL_SECONDS", 6),
			RoomCodeLength:             getEnvInt("ROOM_CODE_LENGTH", 6),
		},
		Content: ContentConfig{
			Source: getEnv("CONTENT_SOURCE", "memory"),
			DSN:    getEnv("CONTENT_DSN", "./quizrush.db"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}
}

// Seconds converts a configured whole-second value into a duration
func Seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// GetAddr returns the server address in host:port format
func (c *Config) GetAddr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// getEnv returns an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns an environment variable as an integer or a default value
func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool returns an environment variable as a boolean or a default value
func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
