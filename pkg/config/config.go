// Package config loads the optional YAML run configuration shared by the
// annotate, aggregate, and decide tools, grounded on the teacher's
// models.FetchConfig and its gopkg.in/yaml.v3 usage across internal/fetch.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/impresso/lid-core/models"
)

// RunConfig is the on-disk shape of an optional `--config` YAML file. Any
// CLI flag explicitly set by the caller always overrides the matching
// RunConfig value (spec.md §9 "Config file").
type RunConfig struct {
	Annotate models.AnnotateConfig `yaml:"annotate"`
	Aggregate models.AggregateConfig `yaml:"aggregate"`
	Decide    models.DecideConfig   `yaml:"decide"`
}

// Load reads and parses a RunConfig from path. A missing path is not an
// error — callers fall back to defaults — but a present, malformed file is.
func Load(path string) (*RunConfig, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := &RunConfig{
		Annotate:  models.DefaultAnnotateConfig(),
		Aggregate: models.DefaultAggregateConfig(),
		Decide:    models.DefaultDecideConfig(),
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
