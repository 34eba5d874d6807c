package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/fix-display-service/internal/domain"
	"github.com/couchcryptid/fix-display-service/internal/observability"
)

// FixTransformer implements Transformer by rendering each fix under the
// current display preferences.
type FixTransformer struct {
	formatter *domain.Formatter
	prefs     domain.PreferencesProvider
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewTransformer creates a FixTransformer. prefs is consulted once per fix.
func NewTransformer(formatter *domain.Formatter, prefs domain.PreferencesProvider, logger *slog.Logger, metrics *observability.Metrics) *FixTransformer {
	return &FixTransformer{
		formatter: formatter,
		prefs:     prefs,
		logger:    logger,
		metrics:   metrics,
	}
}

func (t *FixTransformer) Transform(_ context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	fix, err := domain.ParseRawEvent(raw)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	display := domain.FormatFix(t.formatter, t.prefs.Preferences(), fix)
	for kind, q := range display.Quantities() {
		if q.IsEmpty() {
			t.metrics.UnavailableQuantities.WithLabelValues(kind.String()).Inc()
		}
	}
	t.logger.Debug("fix formatted", "id", display.ID, "device_id", display.DeviceID, "unit_system", display.UnitSystem)

	return domain.SerializeDisplayFix(display)
}
