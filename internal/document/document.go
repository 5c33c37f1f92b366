// Package document assembles and persists a generated snapshot series as a
// single JSON artifact consumed by replay tooling and downstream tests.
package document

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pattty847/Sentinel/internal/book"
	"github.com/pattty847/Sentinel/internal/config"
	"github.com/pattty847/Sentinel/internal/coverage"
)

// Metadata describes one generated dataset. Exactly one duration field is
// present, matching the unit the run was configured in.
type Metadata struct {
	GeneratedAt       string         `json:"generated_at"`
	DurationMinutes   *float64       `json:"duration_minutes,omitempty"`
	DurationHours     *float64       `json:"duration_hours,omitempty"`
	IntervalMs        int            `json:"interval_ms"`
	NumSnapshots      int            `json:"num_snapshots"`
	TimeframeCoverage map[string]int `json:"timeframe_coverage"`
}

// Document is the on-disk layout: run metadata followed by every snapshot.
type Document struct {
	Metadata  Metadata        `json:"metadata"`
	Snapshots []book.Snapshot `json:"snapshots"`
}

// Build assembles the document for a finished run. Durations derive from the
// actual snapshot count and interval rather than echoing the requested run
// length, so truncated runs report what was really produced.
func Build(cfg config.Generator, snapshots []book.Snapshot, generatedAt time.Time) Document {
	meta := Metadata{
		GeneratedAt:       generatedAt.UTC().Format(time.RFC3339),
		IntervalMs:        cfg.IntervalMs,
		NumSnapshots:      len(snapshots),
		TimeframeCoverage: coverage.Counts(len(snapshots), cfg.Timeframes),
	}
	elapsedMs := float64(len(snapshots) * cfg.IntervalMs)
	if cfg.DurationHours > 0 {
		hours := elapsedMs / (1000 * 60 * 60)
		meta.DurationHours = &hours
	} else {
		minutes := elapsedMs / (1000 * 60)
		meta.DurationMinutes = &minutes
	}
	return Document{Metadata: meta, Snapshots: snapshots}
}

// Write serializes doc with two-space indentation and writes it to path,
// creating parent directories as needed.
func Write(path string, doc Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

// Load reads a document previously produced by Write.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read document: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}
