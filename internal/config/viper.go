package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

func NewViper() *viper.Viper {
	config := viper.New()

	if os.Getenv("ENV") == "production" {
		config.SetConfigName("config.prod")
	} else {
		config.SetConfigName("config")
	}

	config.SetConfigType("yaml")
	config.AddConfigPath(".")

	// TUTORLY_LLM_OPENAI_API_KEY -> llm.openai.api_key
	config.SetEnvPrefix("tutorly")
	config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	config.AutomaticEnv()

	setDefaults(config)

	if err := config.ReadInConfig(); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}

	return config
}

func setDefaults(config *viper.Viper) {
	config.SetDefault("app.name", "tutorly-be")
	config.SetDefault("api.port", 8080)
	config.SetDefault("log.level", "info")
	config.SetDefault("log.format", "text")
	config.SetDefault("database.driver", "postgres")
	config.SetDefault("llm.provider", "openai")
	config.SetDefault("llm.timeout", "60s")
	config.SetDefault("tutor.history_limit", 20)
	config.SetDefault("tutor.quiz_question_count", 5)
	config.SetDefault("redis.ttl", "1h")
	config.SetDefault("rabbitmq.exchange", "tutorly.events")
}
