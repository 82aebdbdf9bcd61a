package corpusio

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// JSONLWriter buffers gzip-compressed, line-delimited JSON records and
// commits them atomically on Close: written to a temp file in the same
// directory, then renamed into place, so a crash mid-write never leaves a
// partially-written file at the final path (spec.md §3 "atomic via
// temp-then-rename"; grounded on pkg/storage.SaveFile, extended with the
// rename step it lacked).
type JSONLWriter struct {
	finalPath string
	tmpPath   string
	file      *os.File
	gz        *gzip.Writer
	enc       *json.Encoder
	committed bool
}

// CreateJSONLWriter opens a new atomic JSONL writer for path. The caller
// must call Close to flush and commit, or Abort to discard.
func CreateJSONLWriter(path string) (*JSONLWriter, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("create temp file for %s: %w", path, err)
	}

	gz := gzip.NewWriter(tmp)
	return &JSONLWriter{
		finalPath: path,
		tmpPath:   tmp.Name(),
		file:      tmp,
		gz:        gz,
		enc:       json.NewEncoder(gz),
	}, nil
}

// Write encodes v as one JSON line.
func (w *JSONLWriter) Write(v interface{}) error {
	if err := w.enc.Encode(v); err != nil {
		return fmt.Errorf("encode record for %s: %w", w.finalPath, err)
	}
	return nil
}

// Close flushes and atomically publishes the file at its final path.
func (w *JSONLWriter) Close() error {
	if err := w.gz.Close(); err != nil {
		w.Abort()
		return fmt.Errorf("close gzip stream for %s: %w", w.finalPath, err)
	}
	if err := w.file.Close(); err != nil {
		w.Abort()
		return fmt.Errorf("close temp file for %s: %w", w.finalPath, err)
	}
	if err := os.Rename(w.tmpPath, w.finalPath); err != nil {
		return fmt.Errorf("publish %s: %w", w.finalPath, err)
	}
	w.committed = true
	return nil
}

// Abort discards the in-progress temp file without publishing it.
func (w *JSONLWriter) Abort() {
	if w.committed {
		return
	}
	w.gz.Close()
	w.file.Close()
	os.Remove(w.tmpPath)
}

// WriteJSONAtomic marshals v as indented JSON and publishes it atomically at
// path, used for the CollectionStats and Diagnostics sidecars.
func WriteJSONAtomic(path string, v interface{}) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", path, err)
	}
	tmpPath := tmp.Name()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file for %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("publish %s: %w", path, err)
	}
	return nil
}
