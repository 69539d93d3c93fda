package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"voice-assistant/internal/application"
	"voice-assistant/internal/domain"
)

type Config struct {
	Audio    AudioConfig         `yaml:"audio"`
	OpenAI   OpenAIConfig        `yaml:"openai"`
	Speech   SpeechConfig        `yaml:"speech"`
	Display  DisplayConfig       `yaml:"display"`
	Pushover PushoverConfig      `yaml:"pushover"`
	Actions  ActionsConfig       `yaml:"actions"`
	Keywords map[string][]string `yaml:"keywords"`
	Log      LogConfig           `yaml:"log"`
}

type AudioConfig struct {
	Source     string `yaml:"source"`
	HTTPAddr   string `yaml:"http_addr"`
	FileDir    string `yaml:"file_dir"`
	SampleRate int    `yaml:"sample_rate"`
	AuthToken  string `yaml:"auth_token"`
}

type OpenAIConfig struct {
	APIKey   string `yaml:"api_key"`
	Language string `yaml:"language"`
}

type SpeechConfig struct {
	Enabled         bool     `yaml:"enabled"`
	Binary          string   `yaml:"binary"`
	VoicePreference []string `yaml:"voice_preference"`
}

type DisplayConfig struct {
	Console   bool `yaml:"console"`
	WebSocket bool `yaml:"websocket"`
}

type PushoverConfig struct {
	Token   string `yaml:"token"`
	UserKey string `yaml:"user_key"`
	Enabled bool   `yaml:"enabled"`
}

type ActionsConfig struct {
	City           string  `yaml:"city"`
	WeatherAPIKey  string  `yaml:"weather_api_key"`
	NewsAPIKey     string  `yaml:"news_api_key"`
	NewsCountry    string  `yaml:"news_country"`
	ExchangeAPIKey string  `yaml:"exchange_api_key"`
	CurrencyFrom   string  `yaml:"currency_from"`
	CurrencyTo     string  `yaml:"currency_to"`
	CurrencyAmount float64 `yaml:"currency_amount"`
	MathExpression string  `yaml:"math_expression"`
	TMDBAPIKey     string  `yaml:"tmdb_api_key"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads the YAML file at path. A .env file next to it, if present, is
// loaded first so ${VAR} references can resolve to keys kept out of the YAML.
// Variables already set in the environment win over the .env file.
func Load(path string) (*Config, error) {
	envPath := filepath.Join(filepath.Dir(path), ".env")
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", envPath, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes an already read config document.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	cfg := Config{
		Speech:  SpeechConfig{Enabled: true},
		Display: DisplayConfig{Console: true, WebSocket: true},
	}
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.setDefaults()

	if _, err := cfg.KeywordTable(); err != nil {
		return nil, fmt.Errorf("validating keywords: %w", err)
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Audio.Source == "" {
		c.Audio.Source = "http"
	}
	if c.Audio.HTTPAddr == "" {
		c.Audio.HTTPAddr = ":8080"
	}
	if c.Audio.FileDir == "" {
		c.Audio.FileDir = "./audio"
	}
	if c.Audio.SampleRate == 0 {
		c.Audio.SampleRate = 16000
	}
	if c.OpenAI.Language == "" {
		c.OpenAI.Language = "en"
	}
	if c.Speech.Binary == "" {
		c.Speech.Binary = "espeak-ng"
	}
	if len(c.Speech.VoicePreference) == 0 {
		c.Speech.VoicePreference = []string{"female", "voice"}
	}

	params := application.DefaultActionParams()
	if c.Actions.City == "" {
		c.Actions.City = params.City
	}
	if c.Actions.NewsCountry == "" {
		c.Actions.NewsCountry = "us"
	}
	if c.Actions.CurrencyFrom == "" {
		c.Actions.CurrencyFrom = params.CurrencyFrom
	}
	if c.Actions.CurrencyTo == "" {
		c.Actions.CurrencyTo = params.CurrencyTo
	}
	if c.Actions.CurrencyAmount == 0 {
		c.Actions.CurrencyAmount = params.CurrencyAmount
	}
	if c.Actions.MathExpression == "" {
		c.Actions.MathExpression = params.MathExpression
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// KeywordTable builds the matcher table, with any configured phrase lists
// replacing the built-in ones for their intent.
func (c *Config) KeywordTable() (*domain.KeywordTable, error) {
	overrides := make(map[domain.Intent][]string, len(c.Keywords))
	for name, phrases := range c.Keywords {
		intent, err := domain.ParseIntent(name)
		if err != nil {
			return nil, err
		}
		overrides[intent] = phrases
	}
	return domain.NewKeywordTable(overrides)
}

func (c *Config) ActionParams() application.ActionParams {
	return application.ActionParams{
		City:           c.Actions.City,
		CurrencyFrom:   c.Actions.CurrencyFrom,
		CurrencyTo:     c.Actions.CurrencyTo,
		CurrencyAmount: c.Actions.CurrencyAmount,
		MathExpression: c.Actions.MathExpression,
	}
}

func (c *Config) AudioFormat() application.AudioFormat {
	format := application.DefaultAudioFormat()
	format.SampleRate = c.Audio.SampleRate
	return format
}
