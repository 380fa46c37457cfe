package metrics

import (
	"context"
	"sync"
	"time"

	"asksearch/asksearch/utils/logging"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

const meterName = "asksearch/metrics"

// Outcome labels for asksearch.search.requests.
const (
	OutcomeOK            = "ok"
	OutcomeInvalid       = "invalid"
	OutcomeMisconfigured = "misconfigured"
	OutcomeUpstreamError = "upstream_error"
	OutcomeUpstreamEmpty = "upstream_empty"
)

type instruments struct {
	requests metric.Int64Counter
	parses   metric.Int64Counter
	upstream metric.Float64Histogram
}

var (
	initOnce sync.Once
	inst     *instruments
	initErr  error
)

// Init creates the instruments on the global meter provider. It is safe to
// call more than once; recording functions call it lazily.
func Init() error {
	initOnce.Do(func() {
		meter := otel.Meter(meterName)
		i := &instruments{}

		i.requests, initErr = meter.Int64Counter(
			"asksearch.search.requests",
			metric.WithDescription("Search requests by outcome"),
			metric.WithUnit("{requests}"),
		)
		if initErr != nil {
			return
		}
		i.parses, initErr = meter.Int64Counter(
			"asksearch.search.parse",
			metric.WithDescription("Completions normalized, by path (structured or fallback)"),
			metric.WithUnit("{completions}"),
		)
		if initErr != nil {
			return
		}
		i.upstream, initErr = meter.Float64Histogram(
			"asksearch.upstream.duration",
			metric.WithDescription("Latency of the upstream chat-completion call"),
			metric.WithUnit("ms"),
		)
		if initErr != nil {
			return
		}
		inst = i
	})
	if initErr != nil {
		logging.ErrorLogger.Error("metrics: failed to create instruments", zap.Error(initErr))
	}
	return initErr
}

func RecordSearch(ctx context.Context, outcome string) {
	if Init() != nil {
		return
	}
	inst.requests.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func RecordParse(ctx context.Context, path string) {
	if Init() != nil {
		return
	}
	inst.parses.Add(ctx, 1, metric.WithAttributes(attribute.String("path", path)))
}

func RecordUpstream(ctx context.Context, d time.Duration, failed bool) {
	if Init() != nil {
		return
	}
	inst.upstream.Record(ctx, float64(d.Microseconds())/1000,
		metric.WithAttributes(attribute.Bool("error", failed)))
}

// ResetForTesting drops the cached instruments so a test can install its own
// meter provider first.
func ResetForTesting() {
	initOnce = sync.Once{}
	inst = nil
	initErr = nil
}
