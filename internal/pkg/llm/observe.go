package llm

import (
	"context"
	"time"

	"github.com/evandrarf/tutorly-be/internal/pkg/metrics"
	"github.com/sirupsen/logrus"
)

// ObservedProvider logs every model call and records its latency.
type ObservedProvider struct {
	inner Provider
	log   *logrus.Logger
}

func WithObservability(p Provider, log *logrus.Logger) Provider {
	return &ObservedProvider{inner: p, log: log}
}

func (o *ObservedProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := o.inner.Generate(ctx, req)
	elapsed := time.Since(start)

	status := "success"
	if err != nil {
		status = "failure"
	}
	metrics.LLMRequestDuration.WithLabelValues(o.inner.ModelID(), status).Observe(elapsed.Seconds())

	fields := logrus.Fields{
		"model":      o.inner.ModelID(),
		"latency_ms": elapsed.Milliseconds(),
		"messages":   len(req.Messages),
	}
	if req.Schema != nil {
		fields["schema"] = req.Schema.Name
	}

	if err != nil {
		o.log.WithFields(fields).WithError(err).Warn("LLM request failed")
		return nil, err
	}

	fields["input_tokens"] = resp.Usage.InputTokens
	fields["output_tokens"] = resp.Usage.OutputTokens
	fields["stop_reason"] = resp.StopReason
	o.log.WithFields(fields).Debug("LLM request completed")

	return resp, nil
}

func (o *ObservedProvider) ModelID() string {
	return o.inner.ModelID()
}
