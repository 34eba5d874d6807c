package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/fix-display-service/internal/domain"
	"github.com/couchcryptid/fix-display-service/internal/observability"
)

// BatchExtractor reads up to batchSize raw fixes from the source.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawEvent, error)
}

// Transformer renders a raw fix into a sink event.
type Transformer interface {
	Transform(ctx context.Context, raw domain.RawEvent) (domain.OutputEvent, error)
}

// BatchLoader writes rendered fixes to the destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, events []domain.OutputEvent) error
}

// Option customises a Pipeline.
type Option func(*Pipeline)

// WithClock sets the clock used for retry waits and batch timings.
func WithClock(c clockwork.Clock) Option {
	return func(p *Pipeline) { p.clock = c }
}

// Pipeline moves fixes from the source through the formatter to the sink.
// Offsets are committed per fix once it has been delivered or dropped.
type Pipeline struct {
	extractor   BatchExtractor
	transformer Transformer
	loader      BatchLoader
	logger      *slog.Logger
	metrics     *observability.Metrics
	clock       clockwork.Clock
	batchSize   int
	delivered   atomic.Bool
}

// New creates a Pipeline with the given stages and observability.
func New(e BatchExtractor, t Transformer, l BatchLoader, logger *slog.Logger, metrics *observability.Metrics, batchSize int, opts ...Option) *Pipeline {
	p := &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
		clock:       clockwork.NewRealClock(),
		batchSize:   batchSize,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Ready reports whether at least one fix has reached the sink.
func (p *Pipeline) Ready() bool {
	return p.delivered.Load()
}

// CheckReadiness returns nil once a fix has been delivered to the sink.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.delivered.Load() {
		return errors.New("pipeline has not delivered any fixes yet")
	}
	return nil
}

// Run polls the source until the context is cancelled. Extract and load
// failures are retried with a doubling delay; a cancelled context is not an
// error.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "batch_size", p.batchSize)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	delay := newRetryDelay(p.clock)
	for ctx.Err() == nil {
		if err := p.cycle(ctx); err != nil {
			if ctx.Err() != nil {
				break
			}
			if !delay.wait(ctx) {
				break
			}
			continue
		}
		delay.reset()
	}

	p.logger.Info("pipeline stopping", "reason", context.Cause(ctx))
	return nil
}

// cycle pulls one batch, renders it and hands the result to the sink. The
// returned error means the cycle should be retried after a delay.
func (p *Pipeline) cycle(ctx context.Context) error {
	start := p.clock.Now()

	batch, err := p.extractor.ExtractBatch(ctx, p.batchSize)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Error("extract batch failed", "error", err)
		}
		return err
	}
	if len(batch) == 0 {
		return nil
	}
	p.metrics.FixesConsumed.Add(float64(len(batch)))
	p.metrics.BatchSize.Observe(float64(len(batch)))

	rendered, sources := p.render(ctx, batch)
	if len(rendered) == 0 {
		return nil
	}

	if err := p.loader.LoadBatch(ctx, rendered); err != nil {
		if ctx.Err() == nil {
			first, last := sources[0], sources[len(sources)-1]
			p.logger.Error("load batch failed", "error", err,
				"batch_size", len(rendered),
				"topic", first.Topic,
				"first_offset", first.Offset,
				"last_offset", last.Offset,
			)
		}
		return err
	}
	p.metrics.FixesProduced.Add(float64(len(rendered)))
	for _, raw := range sources {
		p.commit(ctx, raw)
	}

	p.metrics.BatchProcessingDuration.Observe(p.clock.Since(start).Seconds())
	p.delivered.Store(true)
	return nil
}

// render formats every fix in the batch. A fix that cannot be rendered is
// logged with its device and track, committed and dropped so it cannot stall
// the partition. The second result holds the source of each rendered event.
func (p *Pipeline) render(ctx context.Context, batch []domain.RawEvent) ([]domain.OutputEvent, []domain.RawEvent) {
	rendered := make([]domain.OutputEvent, 0, len(batch))
	sources := make([]domain.RawEvent, 0, len(batch))

	for _, raw := range batch {
		out, err := p.transformer.Transform(ctx, raw)
		if err != nil {
			ref := referenceOf(raw)
			p.logger.Warn("format failed, skipping fix",
				"error", err,
				"device_id", ref.DeviceID,
				"track", ref.Track,
				"topic", raw.Topic,
				"partition", raw.Partition,
				"offset", raw.Offset,
			)
			p.metrics.TransformErrors.Inc()
			p.commit(ctx, raw)
			continue
		}
		rendered = append(rendered, out)
		sources = append(sources, raw)
	}

	if skipped := len(batch) - len(rendered); skipped > 0 {
		p.logger.Info("batch rendered with skipped fixes", "rendered", len(rendered), "skipped", skipped)
	}
	return rendered, sources
}

// fixReference identifies the fix behind a raw event in log lines.
type fixReference struct {
	DeviceID string `json:"device_id"`
	Track    int    `json:"track"`
}

// referenceOf reads the device and track from a raw event. Payloads that do
// not decode fall back to the message key as the device.
func referenceOf(raw domain.RawEvent) fixReference {
	var ref fixReference
	if err := json.Unmarshal(raw.Value, &ref); err != nil || ref.DeviceID == "" {
		ref.DeviceID = string(raw.Key)
	}
	return ref
}

func (p *Pipeline) commit(ctx context.Context, raw domain.RawEvent) {
	if raw.Commit == nil {
		return
	}
	if err := raw.Commit(ctx); err != nil {
		p.logger.Warn("commit offset failed", "error", err,
			"topic", raw.Topic, "partition", raw.Partition, "offset", raw.Offset)
	}
}

const (
	firstRetryDelay = 200 * time.Millisecond
	maxRetryDelay   = 5 * time.Second
)

// retryDelay doubles from firstRetryDelay up to maxRetryDelay between
// consecutive failed cycles.
type retryDelay struct {
	clock   clockwork.Clock
	current time.Duration
}

func newRetryDelay(c clockwork.Clock) *retryDelay {
	return &retryDelay{clock: c, current: firstRetryDelay}
}

func (d *retryDelay) reset() {
	d.current = firstRetryDelay
}

// wait sleeps for the current delay and then doubles it. It returns false if
// the context ends first.
func (d *retryDelay) wait(ctx context.Context) bool {
	timer := d.clock.NewTimer(d.current)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.Chan():
	}
	d.current = min(d.current*2, maxRetryDelay)
	return true
}
