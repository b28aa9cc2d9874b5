package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/darch7/zenko/engine"
	"github.com/darch7/zenko/providers/groq"
	"github.com/darch7/zenko/providers/info"
)

func engineFromViper(logger *slog.Logger) (*engine.Engine, error) {
	apiKey := strings.TrimSpace(viper.GetString("llm.api_key"))
	if apiKey == "" {
		return nil, fmt.Errorf("missing llm.api_key (set via config or ZENKO_LLM_API_KEY)")
	}

	client := groq.New(
		viper.GetString("llm.endpoint"),
		apiKey,
		viper.GetDuration("llm.request_timeout"),
	)

	infoClient := info.New(info.Options{
		WeatherBaseURL:  viper.GetString("providers.weather_base_url"),
		NewsFeedURL:     viper.GetString("providers.news_feed_url"),
		WikiBaseURL:     viper.GetString("providers.wiki_base_url"),
		CurrencyBaseURL: viper.GetString("providers.currency_base_url"),
		Timeout:         viper.GetDuration("providers.timeout"),
	})

	return engine.New(engine.Options{
		Client:           client,
		Info:             infoClient,
		Model:            viper.GetString("llm.model"),
		Logger:           logger,
		DefaultLanguage:  viper.GetString("session.default_language"),
		MaxConcurrentLLM: viper.GetInt("engine.max_concurrent_llm"),
	}), nil
}
