// Package annotatecli wires the annotate CLI tool (Stage 1a) to
// internal/annotate, matching the teacher's cli.Context-driven Action
// function pattern (internal/fetch/actions.go).
package annotatecli

import (
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/impresso/lid-core/internal/annotate"
	"github.com/impresso/lid-core/internal/classify"
	"github.com/impresso/lid-core/internal/common"
	"github.com/impresso/lid-core/models"
	"github.com/impresso/lid-core/pkg/config"
	"github.com/impresso/lid-core/pkg/corpusio"
	"github.com/impresso/lid-core/pkg/versioninfo"
)

// Flags returns the annotate tool's CLI flag set (spec.md §6), plus the
// optional --config YAML override file (spec.md §9).
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config"},
		&cli.StringSliceFlag{Name: "lids"},
		&cli.StringFlag{Name: "impresso-ft"},
		&cli.StringFlag{Name: "wp-ft"},
		&cli.IntFlag{Name: "minimal-text-length", Value: 20},
		&cli.StringFlag{Name: "infile", Required: true},
		&cli.StringFlag{Name: "outfile", Required: true},
		&cli.IntFlag{Name: "round-ndigits", Value: 3},
		&cli.StringFlag{Name: "git-describe"},
		&cli.BoolFlag{Name: "quiet"},
	}
}

// Action runs the annotate tool: reads --infile, runs the classifier bank
// over every item, and writes --outfile.
func Action(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	cfg := models.DefaultAnnotateConfig()
	runCfg, err := config.Load(c.String("config"))
	if err != nil {
		logger.Error("failed to load config file", "error", err)
		os.Exit(2)
		return nil
	}
	if runCfg != nil {
		cfg = runCfg.Annotate
	}
	if lids := c.StringSlice("lids"); len(lids) > 0 {
		cfg.Lids = lids
	}
	if v := c.String("impresso-ft"); v != "" {
		cfg.ImpressoFtPath = v
	}
	if v := c.String("wp-ft"); v != "" {
		cfg.WpFtPath = v
	}
	if c.IsSet("minimal-text-length") {
		cfg.MinimalTextLength = c.Int("minimal-text-length")
	}
	if c.IsSet("round-ndigits") {
		cfg.RoundNdigits = c.Int("round-ndigits")
	}
	if v := c.String("git-describe"); v != "" {
		cfg.GitDescribe = v
	}

	for _, path := range []string{cfg.ImpressoFtPath, cfg.WpFtPath} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			logger.Error("model path not found", "path", path, "error", err)
			os.Exit(3)
		}
	}

	bank, err := classify.NewBank(cfg)
	if err != nil {
		logger.Error("failed to build classifier registry", "error", err)
		os.Exit(3)
		return nil
	}

	info := versioninfo.New(cfg.GitDescribe, nil)
	annotator := &annotate.Annotator{
		Bank:          bank,
		ToolVersion:   info.ToolVersion,
		ModelVersions: info.ModelVersions,
		RoundNdigits:  cfg.RoundNdigits,
	}

	writer, err := corpusio.CreateJSONLWriter(c.String("outfile"))
	if err != nil {
		logger.Error("failed to open outfile", "path", c.String("outfile"), "error", err)
		os.Exit(1)
		return nil
	}

	var parseErr error
	itemCount := 0
	decodeErr := corpusio.DecodeEach(c.String("infile"), corpusio.DecodeJSONLine(func(item *models.ContentItem) {
		item.Collection, item.Year = common.ParseID(item.ID)
		rec := annotator.Annotate(*item)
		if err := writer.Write(rec); err != nil {
			logger.Error("failed to write record", "id", item.ID, "error", err)
			parseErr = err
			return
		}
		itemCount++
	}), func(lineNo int, err error) {
		logger.Warn("skipping malformed input line", "line", lineNo, "error", err)
	})

	if decodeErr != nil {
		writer.Abort()
		logger.Error("failed to read infile", "path", c.String("infile"), "error", decodeErr)
		os.Exit(2)
		return nil
	}
	if parseErr != nil {
		writer.Abort()
		os.Exit(1)
		return nil
	}

	if err := writer.Close(); err != nil {
		logger.Error("failed to finalize outfile", "error", err)
		os.Exit(1)
		return nil
	}

	logger.Info("annotate complete", "items", itemCount, "outfile", c.String("outfile"))
	return nil
}

// App builds the standalone annotate CLI application.
func App() *cli.App {
	return &cli.App{
		Name:   "annotate",
		Usage:  "Stage 1a: per-item multi-classifier language annotation",
		Flags:  Flags(),
		Action: Action,
	}
}
