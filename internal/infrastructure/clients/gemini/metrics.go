package gemini

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type geminiMetrics struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestErrors   metric.Int64Counter
	rateLimitWait   metric.Float64Histogram
}

var geminiMetricsInit = false
var gmetrics geminiMetrics

func ensureMetrics() {
	if geminiMetricsInit {
		return
	}
	meter := otel.Meter("github.com/swasthly/healthassist/gemini")

	requestCount, err := meter.Int64Counter(
		"ai.gemini.request.count",
		metric.WithDescription("Number of Gemini requests"),
	)
	if err != nil {
		return
	}
	requestDuration, err := meter.Float64Histogram(
		"ai.gemini.request.duration",
		metric.WithDescription("Gemini request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}
	requestErrors, err := meter.Int64Counter(
		"ai.gemini.request.errors",
		metric.WithDescription("Number of Gemini request errors"),
	)
	if err != nil {
		return
	}
	rateLimitWait, err := meter.Float64Histogram(
		"ai.gemini.rate_limit.wait",
		metric.WithDescription("Time spent waiting for the Gemini rate limiter in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}

	gmetrics = geminiMetrics{
		requestCount:    requestCount,
		requestDuration: requestDuration,
		requestErrors:   requestErrors,
		rateLimitWait:   rateLimitWait,
	}
	geminiMetricsInit = true
}

func recordGeminiMetric(ctx context.Context, model string, statusCode int, duration time.Duration, err error) {
	ensureMetrics()
	if !geminiMetricsInit {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", model),
	}
	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	gmetrics.requestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	gmetrics.requestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if err != nil {
		gmetrics.requestErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

func recordGeminiRateLimitWait(ctx context.Context, model string, wait time.Duration) {
	ensureMetrics()
	if !geminiMetricsInit {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", model),
	}
	gmetrics.rateLimitWait.Record(ctx, float64(wait.Milliseconds()), metric.WithAttributes(attrs...))
}
