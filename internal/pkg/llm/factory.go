package llm

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// NewProvider builds the provider named by llm.provider and wraps it:
// caller -> retry -> observability -> base.
func NewProvider(ctx context.Context, config *viper.Viper, log *logrus.Logger) (Provider, error) {
	name := config.GetString("llm.provider")

	var base Provider
	var err error

	switch name {
	case "openai", "":
		name = "openai"
		base, err = NewOpenAIProvider(
			config.GetString("llm.openai.api_key"),
			config.GetString("llm.openai.model"),
			config.GetString("llm.openai.base_url"),
		)
	case "gemini":
		base, err = NewGeminiProvider(ctx,
			config.GetString("llm.gemini.api_key"),
			config.GetString("llm.gemini.model"),
		)
	case "anthropic":
		base, err = NewAnthropicProvider(
			config.GetString("llm.anthropic.api_key"),
			config.GetString("llm.anthropic.model"),
		)
	case "mock":
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", name)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", name, err)
	}

	return WithRetry(WithObservability(base, log), RetryConfigFrom(config)), nil
}

func RetryConfigFrom(config *viper.Viper) RetryConfig {
	cfg := DefaultRetryConfig()
	if config.IsSet("llm.retry.max_attempts") {
		cfg.MaxAttempts = config.GetInt("llm.retry.max_attempts")
	}
	if config.IsSet("llm.retry.initial_wait") {
		cfg.InitialWait = config.GetDuration("llm.retry.initial_wait")
	}
	if config.IsSet("llm.retry.max_wait") {
		cfg.MaxWait = config.GetDuration("llm.retry.max_wait")
	}
	return cfg
}
