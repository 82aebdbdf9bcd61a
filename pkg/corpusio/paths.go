// Package corpusio implements the persisted-state layout, compressed JSONL
// codecs, and cross-host stamp-file coordination shared by the annotate,
// aggregate, and decide tools (spec.md §5, §6).
package corpusio

import (
	"fmt"
	"path/filepath"
)

// Layout resolves the on-disk paths of one build's artifacts, matching the
// persisted-state layout of spec.md §6, grounded on
// pkg/artifact_manager.GetURLDir / GetURLArtifactPath's path-building
// convention.
type Layout struct {
	Build   string
	Version string
}

// NewLayout builds a Layout rooted at <build>/<version>.
func NewLayout(build, version string) Layout {
	return Layout{Build: build, Version: version}
}

func (l Layout) root() string {
	return filepath.Join(l.Build, l.Version)
}

// Stage1Path is <build>/<version>/stage1/<collection>/<collection>-<year>.jsonl.gz.
//
// The upstream layout names this file "...jsonl.bz2"; this module reads
// legacy bz2 inputs but only ever writes gzip (see reader.go/writer.go), so
// paths this module itself produces carry the ".jsonl.gz" extension instead.
func (l Layout) Stage1Path(collection, year string) string {
	return filepath.Join(l.root(), "stage1", collection, fmt.Sprintf("%s-%s.jsonl.gz", collection, year))
}

// Stage1StatsPath is <build>/<version>/stage1/<collection>.stats.json.
func (l Layout) Stage1StatsPath(collection string) string {
	return filepath.Join(l.root(), "stage1", fmt.Sprintf("%s.stats.json", collection))
}

// Stage1AllStatsPath is <build>/<version>/stage1.stats.json.
func (l Layout) Stage1AllStatsPath() string {
	return filepath.Join(l.root(), "stage1.stats.json")
}

// Stage2Path is <build>/<version>/stage2/<collection>/<collection>-<year>.jsonl.gz.
func (l Layout) Stage2Path(collection, year string) string {
	return filepath.Join(l.root(), "stage2", collection, fmt.Sprintf("%s-%s.jsonl.gz", collection, year))
}

// Stage2DiagnosticsPath is
// <build>/<version>/stage2/<collection>/<collection>-<year>.diagnostics.json.
func (l Layout) Stage2DiagnosticsPath(collection, year string) string {
	return filepath.Join(l.root(), "stage2", collection, fmt.Sprintf("%s-%s.diagnostics.json", collection, year))
}
