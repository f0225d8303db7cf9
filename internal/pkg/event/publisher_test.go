package event

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPublisher_DisabledWithoutURL(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	p, err := NewPublisher("", "", log)
	require.NoError(t, err)
	defer p.Close()

	assert.NoError(t, p.Publish(context.Background(), SessionEnded, SessionEndedPayload{SessionID: "s1"}))
	assert.Error(t, p.Publish(context.Background(), SessionEnded, make(chan int)), "unencodable payload")
}

func TestEncode(t *testing.T) {
	body, err := encode(QuizCompleted, QuizCompletedPayload{SessionID: "s1", Accuracy: 80, Understanding: "strong"})
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, QuizCompleted, got["type"])
	assert.Equal(t, float64(80), got["payload"].(map[string]any)["accuracy"])
	assert.NotEmpty(t, got["occurred_at"])
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	_ = r.Publish(context.Background(), StudentApproved, StudentApprovalPayload{StudentID: "st1"})
	_ = r.Publish(context.Background(), StudentRejected, StudentApprovalPayload{StudentID: "st2"})

	assert.Equal(t, []string{StudentApproved, StudentRejected}, r.Types())
	assert.Len(t, r.Events(), 2)
}
