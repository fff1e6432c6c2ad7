// Package artifact persists trained model bundles to disk.
//
// A bundle carries everything inference needs to reproduce the training
// feature space exactly: the classifier, the fitted vectorizer state, the
// feature schema, the numeric scaler, and the per-category price table.
// Bundles are immutable once written and regenerated only by retraining.
package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/souqrisk/souqrisk/internal/common"
	"github.com/souqrisk/souqrisk/internal/features"
	"github.com/souqrisk/souqrisk/internal/ml"
	"github.com/souqrisk/souqrisk/internal/pricing"
	"github.com/souqrisk/souqrisk/internal/vectorize"
)

// bundleVersion is incremented when the on-disk layout changes; a mismatch
// on load is an artifact error, never a silent reinterpretation.
const bundleVersion uint16 = 1

// DefaultFileName is the conventional bundle file name inside a model dir.
const DefaultFileName = "risk_model.msgpack"

// Bundle is the serialized form of a trained model.
type Bundle struct {
	Version    uint16                 `msgpack:"version"`
	CreatedAt  time.Time              `msgpack:"created_at"`
	Schema     features.Schema        `msgpack:"schema"`
	Model      *ml.LogisticRegression `msgpack:"model"`
	Scaler     *ml.Scaler             `msgpack:"scaler"`
	Vectorizer vectorize.State        `msgpack:"vectorizer"`
	Prices     *pricing.Table         `msgpack:"prices"`
}

// New assembles a bundle from freshly trained components.
func New(schema features.Schema, m *ml.LogisticRegression, scaler *ml.Scaler, vec vectorize.State, prices *pricing.Table) *Bundle {
	return &Bundle{
		Version:    bundleVersion,
		CreatedAt:  time.Now().UTC(),
		Schema:     schema,
		Model:      m,
		Scaler:     scaler,
		Vectorizer: vec,
		Prices:     prices,
	}
}

// Save writes the bundle atomically, creating the directory if needed.
func Save(path string, b *Bundle) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create artifact directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".bundle-*")
	if err != nil {
		return fmt.Errorf("failed to create temp artifact file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := msgpack.NewEncoder(tmp).Encode(b); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to encode model bundle: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp artifact file: %w", err)
	}

	// Atomic replacement so a crashed writer never leaves a torn bundle.
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace model bundle: %w", err)
	}
	return nil
}

// Load reads and validates a bundle from disk.
func Load(path string) (*Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", common.ErrArtifactNotFound, path)
		}
		return nil, fmt.Errorf("failed to open model bundle: %w", err)
	}
	defer func() { _ = f.Close() }()

	var b Bundle
	if err := msgpack.NewDecoder(f).Decode(&b); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrArtifactCorrupt, err)
	}
	if b.Version != bundleVersion {
		return nil, fmt.Errorf("%w: bundle version %d, this build reads %d",
			common.ErrArtifactCorrupt, b.Version, bundleVersion)
	}
	if b.Model == nil || len(b.Model.Weights) == 0 || b.Prices == nil {
		return nil, fmt.Errorf("%w: bundle is missing trained components", common.ErrArtifactCorrupt)
	}
	return &b, nil
}
