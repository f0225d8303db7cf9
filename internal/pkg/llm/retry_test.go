package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func TestRetry_SucceedsOnFirstAttempt(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"ok":true}`)})
	p := WithRetry(mock, retryConfig())

	resp, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, string(resp.Content))
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_TransientThenSuccess(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Content: json.RawMessage(`{"ok":true}`)},
	)
	p := WithRetry(mock, retryConfig())

	_, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, 2, mock.CallCount())
}

func TestRetry_AllAttemptsFail(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
	)
	p := WithRetry(mock, retryConfig())

	_, err := p.Generate(context.Background(), Request{})
	assert.Error(t, err)
	assert.Equal(t, 3, mock.CallCount())
}

func TestRetry_InvalidResponseNotRetried(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrInvalidResponse{Err: errors.New("bad")}},
		MockResponse{Content: json.RawMessage(`{}`)},
	)
	p := WithRetry(mock, retryConfig())

	_, err := p.Generate(context.Background(), Request{})
	var inv *ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_RateLimitHonoursRetryAfter(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: time.Millisecond, Err: errors.New("slow down")}},
		MockResponse{Content: json.RawMessage(`{}`)},
	)
	p := WithRetry(mock, retryConfig())

	_, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, 2, mock.CallCount())
}

func TestRetry_ContextCanceledNotRetried(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: context.Canceled},
		MockResponse{Content: json.RawMessage(`{}`)},
	)
	p := WithRetry(mock, retryConfig())

	_, err := p.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_DefaultMakesSingleAttempt(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Content: json.RawMessage(`{}`)},
	)
	p := WithRetry(mock, DefaultRetryConfig())

	_, err := p.Generate(context.Background(), Request{})
	assert.Error(t, err)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetryConfigFrom(t *testing.T) {
	v := viper.New()
	assert.Equal(t, DefaultRetryConfig(), RetryConfigFrom(v))

	v.Set("llm.retry.max_attempts", 4)
	v.Set("llm.retry.initial_wait", "250ms")
	cfg := RetryConfigFrom(v)
	assert.Equal(t, 4, cfg.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.InitialWait)
}
