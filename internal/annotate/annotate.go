// Package annotate implements Stage 1a: per-item multi-classifier
// annotation.
package annotate

import (
	"github.com/impresso/lid-core/internal/classify"
	"github.com/impresso/lid-core/internal/common"
	"github.com/impresso/lid-core/internal/features"
	"github.com/impresso/lid-core/models"
)

// Bank is the subset of classify.Bank that Annotator needs, kept as an
// interface so tests can substitute a fake bank.
type Bank interface {
	Predict(id, text string) map[string]*models.LidPrediction
}

// Annotator produces one Stage1Record per input item.
type Annotator struct {
	Bank         Bank
	ToolVersion  string
	ModelVersions map[string]string
	RoundNdigits int
}

var _ Bank = (*classify.Bank)(nil)

// Annotate runs the classifier bank over one item and returns its
// Stage1Record. It never fails: classifier-level errors are captured as
// Unavailable predictions, not propagated (spec.md §4.2, §7).
func (a *Annotator) Annotate(item models.ContentItem) models.Stage1Record {
	metrics := features.Compute(item.Text)
	predictions := a.Bank.Predict(item.ID, item.Text)

	if a.RoundNdigits > 0 {
		roundPredictions(predictions, a.RoundNdigits)
	}

	return models.Stage1Record{
		ID:              item.ID,
		Collection:      item.Collection,
		Year:            item.Year,
		OrigLg:          item.OrigLg,
		Text:            item.Text,
		Metrics:         metrics,
		Predictions:     predictions,
		ModelVersions:   a.ModelVersions,
		ToolVersion:     a.ToolVersion,
		Length:          metrics.LengthTotal,
		Letters:         metrics.LettersCount,
		NonLetters:      metrics.NonLetterCount,
		AlphabeticRatio: metrics.AlphabeticRatio,
		StrippedLength:  features.StrippedLength(item.Text),
		Type:            item.Type,
		Timestamp:       item.Timestamp,
		CC:              item.CC,
		Title:           item.Title,
	}
}

// AdmittedToStatistics reports whether a Stage1Record satisfies the
// admission filter used by Stage 1b to contribute to collection statistics
// (spec.md §4.3): letters_count ≥ 200 AND alphabetical_ratio ≥ 0.5. All
// items are still annotated regardless of this gate.
func AdmittedToStatistics(r models.Stage1Record) bool {
	return r.Letters >= 200 && r.AlphabeticRatio >= 0.5
}

func roundPredictions(predictions map[string]*models.LidPrediction, ndigits int) {
	for _, pred := range predictions {
		if pred == nil || pred.Unavailable {
			continue
		}
		for i := range pred.Scores {
			pred.Scores[i].Prob = common.RoundTo(pred.Scores[i].Prob, ndigits)
		}
	}
}
