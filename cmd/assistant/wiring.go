package main

import (
	"log/slog"

	"voice-assistant/config"
	"voice-assistant/internal/application"
	"voice-assistant/internal/infra/audio"
	"voice-assistant/internal/infra/exchangerate"
	"voice-assistant/internal/infra/jokeapi"
	"voice-assistant/internal/infra/mathjs"
	"voice-assistant/internal/infra/newsapi"
	"voice-assistant/internal/infra/openai"
	"voice-assistant/internal/infra/openweather"
	"voice-assistant/internal/infra/speech"
	"voice-assistant/internal/infra/tmdb"
	"voice-assistant/internal/infra/zenquotes"
)

// buildActions leaves a provider nil when its API key is missing, so the
// intent fails with a "not configured" log line instead of a 401.
func buildActions(cfg config.ActionsConfig) application.Actions {
	actions := application.Actions{
		Math:   mathjs.NewClient(),
		Jokes:  jokeapi.NewClient(),
		Quotes: zenquotes.NewClient(),
	}
	if cfg.WeatherAPIKey != "" {
		actions.Weather = openweather.NewClient(cfg.WeatherAPIKey)
	}
	if cfg.NewsAPIKey != "" {
		actions.News = newsapi.NewClient(cfg.NewsAPIKey, cfg.NewsCountry)
	}
	if cfg.ExchangeAPIKey != "" {
		actions.Currency = exchangerate.NewClient(cfg.ExchangeAPIKey)
	}
	if cfg.TMDBAPIKey != "" {
		actions.Movies = tmdb.NewClient(cfg.TMDBAPIKey)
	}
	return actions
}

func buildSTT(cfg config.OpenAIConfig, logger *slog.Logger) application.SpeechToText {
	if cfg.APIKey == "" {
		logger.Warn("openai api_key not set, audio commands cannot be transcribed")
		return &application.NoopSTT{}
	}
	return openai.NewWhisperClient(cfg.APIKey, cfg.Language)
}

func buildSpeech(cfg config.SpeechConfig, logger *slog.Logger) application.OutputSink {
	if !cfg.Enabled {
		return &application.NoopSink{}
	}
	return application.NewSpeechSink(speech.NewEspeak(cfg.Binary, logger), cfg.VoicePreference, logger)
}

func createAudioSource(cfg *config.Config, logger *slog.Logger) application.AudioSource {
	switch cfg.Audio.Source {
	case "http":
		return audio.NewHTTPSource(cfg.Audio.HTTPAddr, cfg.Audio.AuthToken, logger)
	case "file":
		return audio.NewFileSource(cfg.Audio.FileDir, logger)
	case "microphone":
		return audio.NewMicrophoneSource(cfg.AudioFormat(), logger)
	default:
		logger.Warn("unknown audio source, using http", "source", cfg.Audio.Source)
		return audio.NewHTTPSource(cfg.Audio.HTTPAddr, cfg.Audio.AuthToken, logger)
	}
}
