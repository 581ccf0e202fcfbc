package config

import (
	"os"
	"strconv"
)

type ConfigStruct struct {
	Gemini  GeminiConfig
	Access  AccessConfig
	Options Options
}

type GeminiConfig struct {
	Enabled bool
	APIKey  string
	Model   string
}

type AccessConfig struct {
	// DefaultSecret seeds AdminSettings.AccessSecret on first run. After
	// that, the persisted value wins.
	DefaultSecret string
}

type Options struct {
	Port         string
	DBPath       string
	LogLevel     string
	HistoryLimit int
}

var Config *ConfigStruct

func NewConfig() {
	config := &ConfigStruct{
		Gemini: GeminiConfig{
			Enabled: os.Getenv("GEMINI_API_KEY") != "" && os.Getenv("GEMINI_ENABLED") != "false",
			APIKey:  os.Getenv("GEMINI_API_KEY"),
			Model:   getGeminiModel(),
		},
		Access: AccessConfig{
			DefaultSecret: getAccessSecret(),
		},
		Options: Options{
			Port:         os.Getenv("PORT"),
			DBPath:       getDBPath(),
			LogLevel:     getLogLevel(),
			HistoryLimit: getHistoryLimit(),
		},
	}

	Config = config
}

func getGeminiModel() string {
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		return "gemini-2.5-flash"
	}
	return model
}

func getAccessSecret() string {
	secret := os.Getenv("ACCESS_SECRET")
	if secret == "" {
		return "righteye"
	}
	return secret
}

func getDBPath() string {
	path := os.Getenv("DB_PATH")
	if path == "" {
		return "./data/promptsmith.db"
	}
	return path
}

func getLogLevel() string {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return "info"
	}
	return level
}

func getHistoryLimit() int {
	limitStr := os.Getenv("HISTORY_LIMIT")
	if limitStr == "" {
		return 50
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		return 50
	}
	if limit > 50 {
		return 50 // Hard cap, the history record is a single JSON blob
	}
	return limit
}
