package snapshot

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/memscope/memscope/internal/snapshot"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

type instruments struct {
	ticks    metric.Int64Counter
	skipped  metric.Int64Counter
	players  metric.Int64Histogram
	duration metric.Float64Histogram
}

func newInstruments() (*instruments, error) {
	m := meter()
	ins := &instruments{}

	var err error

	ins.ticks, err = m.Int64Counter(
		"snapshot.ticks",
		metric.WithDescription("Snapshot builds by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating ticks counter: %w", err)
	}

	ins.skipped, err = m.Int64Counter(
		"snapshot.slots.skipped",
		metric.WithDescription("Scanned slots that produced no player, by reason"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating skipped counter: %w", err)
	}

	ins.players, err = m.Int64Histogram(
		"snapshot.players",
		metric.WithDescription("Valid players per snapshot"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating players histogram: %w", err)
	}

	ins.duration, err = m.Float64Histogram(
		"snapshot.tick.duration",
		metric.WithDescription("Time to build one snapshot"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}

	return ins, nil
}
