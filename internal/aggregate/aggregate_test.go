package aggregate

import (
	"testing"

	"github.com/impresso/lid-core/models"
)

func admittedRecord(id, origLg string, preds map[string]*models.LidPrediction) models.Stage1Record {
	return models.Stage1Record{
		ID:              id,
		OrigLg:          origLg,
		Letters:         250,
		AlphabeticRatio: 0.9,
		Predictions:     preds,
	}
}

func pred(lang string, prob float64) *models.LidPrediction {
	return &models.LidPrediction{Scores: []models.LangProb{{Lang: lang, Prob: prob}}}
}

func TestComputeSkipsUnadmittedRecords(t *testing.T) {
	agg := &Aggregator{MinimalVoteScore: 1.5, MinimalLidProbability: 0.2, BoostFactor: 1.5}
	unadmitted := models.Stage1Record{Letters: 5, AlphabeticRatio: 0.9}
	stats := agg.Compute([]models.Stage1Record{unadmitted})
	if stats.TotalItemsConsidered != 0 {
		t.Fatalf("expected unadmitted record to be skipped")
	}
}

func TestComputeTrustAndDominant(t *testing.T) {
	agg := &Aggregator{
		BoostedLids:           map[string]bool{"impresso_ft": true},
		MinimalVoteScore:      1.5,
		MinimalLidProbability: 0.2,
		BoostFactor:           1.5,
	}
	records := []models.Stage1Record{
		admittedRecord("1", "de", map[string]*models.LidPrediction{
			"impresso_ft": pred("de", 0.9),
			"langid":      pred("de", 0.9),
		}),
		admittedRecord("2", "fr", map[string]*models.LidPrediction{
			"impresso_ft": pred("fr", 0.9),
			"langid":      pred("de", 0.9),
		}),
	}
	stats := agg.Compute(records)
	if stats.PerLanguageDecided["de"] != 1 {
		t.Fatalf("expected 1 decided de, got %+v", stats.PerLanguageDecided)
	}
	if stats.OrigLgTrust == nil {
		t.Fatalf("expected trust to be defined")
	}
}

func TestDominantLanguageLexicographicTiebreak(t *testing.T) {
	got := dominantLanguage(map[string]int{"fr": 2, "de": 2})
	if got != "de" {
		t.Fatalf("expected lexicographic tie-break to pick de, got %q", got)
	}
}
