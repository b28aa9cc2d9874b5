package main

import (
	"time"

	"github.com/spf13/viper"

	"github.com/darch7/zenko/engine"
	"github.com/darch7/zenko/providers/groq"
)

func initViperDefaults() {
	viper.SetDefault("llm.endpoint", groq.DefaultBaseURL)
	viper.SetDefault("llm.model", "llama-3.1-8b-instant")
	viper.SetDefault("llm.api_key", "")
	viper.SetDefault("llm.request_timeout", 60*time.Second)

	viper.SetDefault("providers.timeout", 10*time.Second)
	viper.SetDefault("providers.news_feed_url", "")
	viper.SetDefault("providers.weather_base_url", "https://wttr.in")
	viper.SetDefault("providers.wiki_base_url", "https://es.wikipedia.org")
	viper.SetDefault("providers.currency_base_url", "https://open.er-api.com")

	viper.SetDefault("session.default_language", engine.DefaultLanguage)
	viper.SetDefault("session.snapshot_path", "")
	viper.SetDefault("session.snapshot_interval", 5*time.Minute)

	viper.SetDefault("engine.max_concurrent_llm", 8)

	viper.SetDefault("server.bind", "127.0.0.1")
	viper.SetDefault("server.port", 8080)

	viper.SetDefault("logging.format", "text")
	viper.SetDefault("logging.add_source", false)
}
