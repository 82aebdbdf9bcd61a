// Package aggregatecli wires the aggregate CLI tool (Stage 1b) to
// internal/aggregate.
package aggregatecli

import (
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/impresso/lid-core/internal/aggregate"
	"github.com/impresso/lid-core/models"
	"github.com/impresso/lid-core/pkg/config"
	"github.com/impresso/lid-core/pkg/corpusio"
	"github.com/impresso/lid-core/pkg/versioninfo"
)

// Flags returns the aggregate tool's CLI flag set (spec.md §6), plus the
// optional --config YAML override file (spec.md §9). Input files are given
// as positional arguments.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config"},
		&cli.StringFlag{Name: "collection", Required: true},
		&cli.StringSliceFlag{Name: "lids"},
		&cli.StringSliceFlag{Name: "boosted-lids"},
		&cli.IntFlag{Name: "minimal-text-length", Value: 20},
		&cli.Float64Flag{Name: "boost-factor", Value: 1.5},
		&cli.Float64Flag{Name: "minimal-vote-score", Value: 1.5},
		&cli.Float64Flag{Name: "minimal-lid-probability", Value: 0.20},
		&cli.StringFlag{Name: "outfile", Required: true},
		&cli.BoolFlag{Name: "quiet"},
	}
}

// Action runs the aggregate tool: reads every positional stage-1a input
// file for one collection and writes its CollectionStats.
func Action(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	cfg := models.DefaultAggregateConfig()
	runCfg, err := config.Load(c.String("config"))
	if err != nil {
		logger.Error("failed to load config file", "error", err)
		os.Exit(2)
		return nil
	}
	if runCfg != nil {
		cfg = runCfg.Aggregate
	}
	cfg.Collection = c.String("collection")
	if lids := c.StringSlice("lids"); len(lids) > 0 {
		cfg.Lids = lids
	}
	if boosted := c.StringSlice("boosted-lids"); len(boosted) > 0 {
		cfg.BoostedLids = boosted
	}
	if c.IsSet("minimal-text-length") {
		cfg.MinimalTextLength = c.Int("minimal-text-length")
	}
	if c.IsSet("boost-factor") {
		cfg.BoostFactor = c.Float64("boost-factor")
	}
	if c.IsSet("minimal-vote-score") {
		cfg.MinimalVoteScore = c.Float64("minimal-vote-score")
	}
	if c.IsSet("minimal-lid-probability") {
		cfg.MinimalLidProbability = c.Float64("minimal-lid-probability")
	}

	inputFiles := c.Args().Slice()
	if len(inputFiles) == 0 {
		logger.Error("no input files provided")
		os.Exit(2)
		return nil
	}

	info := versioninfo.New("", nil)
	var records []models.Stage1Record
	malformed := 0

	for _, path := range inputFiles {
		if _, err := os.Stat(path); err != nil {
			logger.Error("missing stage1 file for collection", "collection", cfg.Collection, "path", path, "error", err)
			os.Exit(4)
			return nil
		}
		err := corpusio.DecodeEach(path, corpusio.DecodeJSONLine(func(rec *models.Stage1Record) {
			records = append(records, *rec)
		}), func(lineNo int, err error) {
			malformed++
			logger.Warn("skipping malformed stage1 record", "file", path, "line", lineNo, "error", err)
		})
		if err != nil {
			logger.Error("failed to read stage1 file", "path", path, "error", err)
			os.Exit(2)
			return nil
		}
	}

	agg := aggregate.NewAggregator(cfg, info.ModelVersions, info.ToolVersion)
	stats := agg.Compute(records)

	if err := corpusio.WriteJSONAtomic(c.String("outfile"), stats); err != nil {
		logger.Error("failed to write collection stats", "error", err)
		os.Exit(1)
		return nil
	}

	logger.Info("aggregate complete", "collection", cfg.Collection, "items", len(records), "malformed", malformed)
	return nil
}

// App builds the standalone aggregate CLI application.
func App() *cli.App {
	return &cli.App{
		Name:   "aggregate",
		Usage:  "Stage 1b: collection-level ensemble statistics",
		Flags:  Flags(),
		Action: Action,
	}
}
