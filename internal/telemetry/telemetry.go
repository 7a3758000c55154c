// Package telemetry carries search progress out of the engine without
// the search hot path ever blocking on a slow consumer. It replaces the
// teacher's synchronous OnInfo callback (internal/uci/uci.go's
// u.engine.OnInfo) with a bounded, lossy, drop-oldest channel, and mirrors
// every event onto OpenTelemetry metrics/traces and a structured logr
// logger for anything that wants a durable record instead of a live feed.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/hailam/caroengine/internal/board"
)

// Kind identifies which stage of the search pipeline an event came from.
type Kind int

const (
	MainSearch Kind = iota
	VcfSearch
	IterationComplete
	WorkerHelperDone
)

func (k Kind) String() string {
	switch k {
	case MainSearch:
		return "main_search"
	case VcfSearch:
		return "vcf_search"
	case IterationComplete:
		return "iteration_complete"
	case WorkerHelperDone:
		return "worker_helper_done"
	default:
		return "unknown"
	}
}

// StatsEvent is one snapshot of search progress, analogous to the
// teacher's engine.SearchInfo but not tied to UCI's textual wire format.
type StatsEvent struct {
	PublisherID uint64
	Kind        Kind
	Move        board.Move
	Depth       int
	Nodes       uint64
	Score       int
	TTHitRate   float64
	ElapsedMs   int64
	BookUsed    bool
	VCFUsed     bool
}

// Sink is a bounded, lossy event stream: Publish never blocks the search
// goroutine, instead dropping the oldest buffered event to make room
// when a consumer falls behind. Every published event is also mirrored to
// OpenTelemetry and logged at V(1).
type Sink struct {
	events chan StatsEvent

	logger logr.Logger
	nodes  metric.Int64Counter
	depth  metric.Int64Histogram
	tracer trace.Tracer
}

// NewSink allocates a sink with the given channel capacity. meter and
// tracer may be nil, in which case OTel mirroring is skipped; logger may
// be the zero value, in which case logging uses logr's discard sink.
func NewSink(capacity int, logger logr.Logger, meter metric.Meter, tracer trace.Tracer) *Sink {
	if capacity < 1 {
		capacity = 1
	}
	s := &Sink{
		events: make(chan StatsEvent, capacity),
		logger: logger,
		tracer: tracer,
	}
	if meter != nil {
		if c, err := meter.Int64Counter("caroengine.search.nodes"); err == nil {
			s.nodes = c
		}
		if h, err := meter.Int64Histogram("caroengine.search.depth"); err == nil {
			s.depth = h
		}
	}
	return s
}

// Publish enqueues ev, dropping the oldest queued event if the channel is
// full. It never blocks, matching the invariant that telemetry must never
// slow down the search it is observing.
func (s *Sink) Publish(ev StatsEvent) {
	select {
	case s.events <- ev:
	default:
		select {
		case <-s.events:
		default:
		}
		select {
		case s.events <- ev:
		default:
		}
	}
	s.mirror(ev)
}

func (s *Sink) mirror(ev StatsEvent) {
	if s.nodes != nil {
		s.nodes.Add(context.Background(), int64(ev.Nodes), metric.WithAttributes(
			attribute.String("kind", ev.Kind.String()),
		))
	}
	if s.depth != nil {
		s.depth.Record(context.Background(), int64(ev.Depth), metric.WithAttributes(
			attribute.String("kind", ev.Kind.String()),
		))
	}
	if s.tracer != nil {
		_, span := s.tracer.Start(context.Background(), ev.Kind.String())
		span.SetAttributes(
			attribute.Int64("depth", int64(ev.Depth)),
			attribute.Int64("nodes", int64(ev.Nodes)),
			attribute.Int64("score", int64(ev.Score)),
		)
		span.End()
	}
	s.logger.V(1).Info("search event",
		"kind", ev.Kind.String(),
		"move", ev.Move.String(),
		"depth", ev.Depth,
		"nodes", humanize.Comma(int64(ev.Nodes)),
		"score", ev.Score,
		"ttHitRate", fmt.Sprintf("%.1f%%", ev.TTHitRate*100),
		"elapsed", time.Duration(ev.ElapsedMs*int64(time.Millisecond)),
	)
}

// Events exposes the live feed for a consumer (a CLI progress printer, a
// dashboard) to range over.
func (s *Sink) Events() <-chan StatsEvent {
	return s.events
}
