package corpusio

import (
	"bufio"
	"compress/bzip2"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// OpenJSONLLines opens a compressed line-delimited JSON file, transparently
// decompressing bz2 (legacy stage inputs, read-only in Go's standard
// library) or gzip (this module's own output) based on the file extension,
// and returns a scanner over its decoded lines.
func OpenJSONLLines(path string) (*bufio.Scanner, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}

	var r io.Reader
	switch {
	case strings.HasSuffix(path, ".bz2"):
		r = bzip2.NewReader(f)
	case strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, nil, fmt.Errorf("open gzip %s: %w", path, err)
		}
		return bufio.NewScanner(gz), gz, nil
	default:
		r = f
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
	return scanner, f, nil
}

// DecodeEach reads every non-empty line of path as one JSON record via
// decode. Malformed lines are reported to onError and skipped rather than
// aborting the read (spec.md §4.4 "malformed record ⇒ skip").
func DecodeEach(path string, decode func(line []byte) error, onError func(lineNo int, err error)) error {
	scanner, closer, err := OpenJSONLLines(path)
	if err != nil {
		return err
	}
	defer closer.Close()

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if err := decode(line); err != nil {
			if onError != nil {
				onError(lineNo, fmt.Errorf("line %d: %w", lineNo, err))
				continue
			}
			return fmt.Errorf("%s line %d: %w", path, lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan %s: %w", path, err)
	}
	return nil
}

// DecodeJSONLine is a convenience decode func for DecodeEach that unmarshals
// into a fresh *T and invokes handle.
func DecodeJSONLine[T any](handle func(*T)) func([]byte) error {
	return func(line []byte) error {
		var v T
		if err := json.Unmarshal(line, &v); err != nil {
			return err
		}
		handle(&v)
		return nil
	}
}
