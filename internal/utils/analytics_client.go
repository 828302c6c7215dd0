// analytics_client.go wraps posthog.Client so callers never have to care
// whether analytics is configured.
package utils

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

// AnalyticsClientWrapper is a nil-safe wrapper around a PostHog client.
type AnalyticsClientWrapper struct {
	posthogClient posthog.Client
	logger        *slog.Logger
}

// InitializeAnalyticsClient returns an inert wrapper when apiKey is empty.
func InitializeAnalyticsClient(apiKey string, logger *slog.Logger) *AnalyticsClientWrapper {
	if apiKey == "" {
		logger.Warn("Analytics API key is empty, not initializing posthog client.")
		return &AnalyticsClientWrapper{}
	}
	wrapper := AnalyticsClientWrapper{}
	wrapper.posthogClient, _ = posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: "https://eu.i.posthog.com"})
	wrapper.logger = logger
	return &wrapper
}

func (w *AnalyticsClientWrapper) IsInitialized() bool {
	return w.posthogClient != nil
}

func (w *AnalyticsClientWrapper) Enqueue(distinctId string, event string, properties map[string]any) {
	if w.posthogClient == nil {
		return
	}
	if w.logger != nil {
		w.logger.Debug("Enqueueing analytics event", slog.String("distinct_id", distinctId), slog.String("event", event))
	}
	w.posthogClient.Enqueue(posthog.Capture{
		DistinctId: distinctId,
		Event:      event,
		Properties: properties,
	})
}

func (w *AnalyticsClientWrapper) Close() {
	if w.posthogClient == nil {
		return
	}
	w.posthogClient.Close()
}
