package gsettings

import (
	"context"
	"log/slog"
	"slices"
)

// DryRunStore records writes instead of sending them to the wrapped store.
// Later reads observe the recorded values, so multi-step plans that read
// back their own writes behave as they would for real.
type DryRunStore struct {
	inner   Store
	overlay map[string]string
	writes  []Write
	logger  *slog.Logger
}

// NewDryRunStore wraps inner
func NewDryRunStore(inner Store, logger *slog.Logger) *DryRunStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &DryRunStore{
		inner:   inner,
		overlay: make(map[string]string),
		logger:  logger,
	}
}

// Get returns a recorded value if any, otherwise reads through
func (d *DryRunStore) Get(ctx context.Context, schema, key string) (string, error) {
	if value, ok := d.overlay[overlayKey(schema, key)]; ok {
		return value, nil
	}
	return d.inner.Get(ctx, schema, key)
}

// Set records the write
func (d *DryRunStore) Set(_ context.Context, schema, key, value string) error {
	d.overlay[overlayKey(schema, key)] = value
	d.writes = append(d.writes, Write{Schema: schema, Key: key, Value: value})
	d.logger.Debug("dry-run: skipped write", "schema", schema, "key", key, "value", value)
	return nil
}

// Writes returns the recorded writes in order
func (d *DryRunStore) Writes() []Write {
	return slices.Clone(d.writes)
}

func overlayKey(schema, key string) string {
	return schema + "\x00" + key
}
