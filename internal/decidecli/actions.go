// Package decidecli wires the decide CLI tool (Stage 2) to internal/decide.
package decidecli

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/impresso/lid-core/internal/common"
	"github.com/impresso/lid-core/internal/decide"
	"github.com/impresso/lid-core/internal/diagnostics"
	"github.com/impresso/lid-core/models"
	"github.com/impresso/lid-core/pkg/config"
	"github.com/impresso/lid-core/pkg/corpusio"
	"github.com/impresso/lid-core/pkg/store"
	"github.com/impresso/lid-core/pkg/versioninfo"
)

// Flags returns the decide tool's CLI flag set (spec.md §6), plus the
// optional --config YAML override file and --run-ledger extensions
// (spec.md §9).
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config"},
		&cli.StringSliceFlag{Name: "lids"},
		&cli.Float64Flag{Name: "weight-lb-impresso-ft", Value: 6},
		&cli.Float64Flag{Name: "minimal-lid-probability", Value: 0.5},
		&cli.Float64Flag{Name: "minimal-voting-score", Value: 0.5},
		&cli.IntFlag{Name: "minimal-text-length", Value: 50},
		&cli.StringFlag{Name: "collection-stats-filename", Required: true},
		&cli.StringFlag{Name: "infile", Required: true},
		&cli.StringFlag{Name: "outfile", Required: true},
		&cli.StringFlag{Name: "diagnostics-json"},
		&cli.StringFlag{Name: "run-ledger"},
		&cli.BoolFlag{Name: "quiet"},
	}
}

// Action runs the decide tool over one (collection, year) unit.
func Action(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	cfg := models.DefaultDecideConfig()
	runCfg, err := config.Load(c.String("config"))
	if err != nil {
		logger.Error("failed to load config file", "error", err)
		os.Exit(2)
		return nil
	}
	if runCfg != nil {
		cfg = runCfg.Decide
	}
	if lids := c.StringSlice("lids"); len(lids) > 0 {
		cfg.Lids = lids
	}
	if c.IsSet("weight-lb-impresso-ft") {
		cfg.WeightLbImpressoFt = c.Float64("weight-lb-impresso-ft")
	}
	if c.IsSet("minimal-lid-probability") {
		cfg.MinimalLidProbability = c.Float64("minimal-lid-probability")
	}
	if c.IsSet("minimal-voting-score") {
		cfg.MinimalVotingScore = c.Float64("minimal-voting-score")
	}
	if c.IsSet("minimal-text-length") {
		cfg.MinimalTextLength = c.Int("minimal-text-length")
	}
	cfg.CollectionStatsFilename = c.String("collection-stats-filename")

	statsData, err := os.ReadFile(cfg.CollectionStatsFilename)
	if err != nil {
		logger.Error("missing collection stats", "path", cfg.CollectionStatsFilename, "error", err)
		os.Exit(4)
		return nil
	}
	var stats models.CollectionStats
	if err := json.Unmarshal(statsData, &stats); err != nil {
		logger.Error("malformed collection stats", "path", cfg.CollectionStatsFilename, "error", err)
		os.Exit(4)
		return nil
	}

	engine := decide.NewEngine(cfg)
	info := versioninfo.New("", nil)

	var ledger *store.Store
	var runHandle store.RunHandle
	if path := c.String("run-ledger"); path != "" {
		ledger, err = store.Open(path)
		if err != nil {
			logger.Error("failed to open run ledger", "error", err)
		} else {
			defer ledger.Close()
			collection, year := common.ParseID(stats.Collection)
			runHandle, _ = ledger.StartRun("decide", collection, year)
		}
	}

	writer, err := corpusio.CreateJSONLWriter(c.String("outfile"))
	if err != nil {
		logger.Error("failed to open outfile", "error", err)
		os.Exit(1)
		return nil
	}

	emitter := diagnostics.NewEmitter(stats.Collection, info.ToolVersion, info.GitDescribe, info.ModelVersions)
	itemCount := 0

	decodeErr := corpusio.DecodeEach(c.String("infile"), corpusio.DecodeJSONLine(func(rec *models.Stage1Record) {
		out := engine.Decide(*rec, stats)
		emitter.Observe(out)
		if err := writer.Write(out); err != nil {
			logger.Error("failed to write record", "id", rec.ID, "error", err)
			return
		}
		itemCount++
	}), func(lineNo int, err error) {
		logger.Warn("skipping malformed stage1 record", "line", lineNo, "error", err)
	})

	if decodeErr != nil {
		writer.Abort()
		logger.Error("failed to read infile", "path", c.String("infile"), "error", decodeErr)
		os.Exit(2)
		return nil
	}
	if err := writer.Close(); err != nil {
		logger.Error("failed to finalize outfile", "error", err)
		os.Exit(1)
		return nil
	}

	if diagPath := c.String("diagnostics-json"); diagPath != "" {
		if err := corpusio.WriteJSONAtomic(diagPath, emitter.Diagnostics()); err != nil {
			logger.Error("failed to write diagnostics sidecar", "error", err)
			os.Exit(1)
			return nil
		}
	}

	if ledger != nil {
		diag := emitter.Diagnostics()
		if err := ledger.FinishRun(runHandle, 0, itemCount, diag.DecisionCodes); err != nil {
			logger.Warn("failed to record run ledger entry", "error", err)
		}
	}

	logger.Info("decide complete", "items", itemCount, "outfile", c.String("outfile"))
	return nil
}

// App builds the standalone decide CLI application.
func App() *cli.App {
	return &cli.App{
		Name:   "decide",
		Usage:  "Stage 2: per-item decision engine",
		Flags:  Flags(),
		Action: Action,
	}
}
