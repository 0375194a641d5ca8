package utils

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

const posthogEndpoint = "https://eu.i.posthog.com"

// PosthogClientWrapper wraps the posthog client so callers never have to
// nil-check it. A zero wrapper is valid and drops all events.
type PosthogClientWrapper struct {
	client posthog.Client
	logger *slog.Logger
}

// InitializePosthogClient builds the analytics client. With an empty API key
// (or if the client fails to construct) it returns a disabled wrapper, so
// analytics stays optional in local setups.
func InitializePosthogClient(apiKey string, logger *slog.Logger) *PosthogClientWrapper {
	if apiKey == "" {
		logger.Warn("PostHog API key not set, analytics disabled")
		return &PosthogClientWrapper{}
	}

	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: posthogEndpoint})
	if err != nil {
		logger.Error("Failed to initialize PostHog client, analytics disabled", slog.String("error", err.Error()))
		return &PosthogClientWrapper{}
	}

	logger.Info("PostHog client initialized", slog.String("endpoint", posthogEndpoint))
	return &PosthogClientWrapper{client: client, logger: logger}
}

func (w *PosthogClientWrapper) IsInitialized() bool {
	return w.client != nil
}

// Enqueue captures an event for the given user. No-op on a disabled wrapper.
func (w *PosthogClientWrapper) Enqueue(distinctID string, event string, properties map[string]any) {
	if w.client == nil {
		return
	}
	if w.logger != nil {
		w.logger.Debug("Capturing analytics event", slog.String("distinct_id", distinctID), slog.String("event", event))
	}
	w.client.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	})
}

// Close flushes any queued events.
func (w *PosthogClientWrapper) Close() {
	if w.client != nil {
		w.client.Close()
	}
}
