package classify

import (
	"testing"

	"github.com/impresso/lid-core/models"
)

type fakeBackend struct {
	name string
	lang string
	prob float64
}

func (f *fakeBackend) Name() string                 { return f.name }
func (f *fakeBackend) SupportedLanguages() []string { return []string{f.lang} }
func (f *fakeBackend) Predict(text string, seed int64) *models.LidPrediction {
	return &models.LidPrediction{Scores: []models.LangProb{{Lang: f.lang, Prob: f.prob}}}
}

func TestBankPreFiltersShortText(t *testing.T) {
	b := &Bank{
		order:             []string{"fake"},
		backends:          map[string]Backend{"fake": &fakeBackend{name: "fake", lang: "de", prob: 0.9}},
		minimalTextLength: 20,
	}
	preds := b.Predict("item-1", "too short")
	if !preds["fake"].Unavailable || preds["fake"].ReasonCode != "too_short" {
		t.Fatalf("expected too_short, got %+v", preds["fake"])
	}
}

func TestBankPipelineAggregatesVotes(t *testing.T) {
	b := &Bank{
		order: []string{"impresso_ft", "lingua", pipelineName},
		backends: map[string]Backend{
			"impresso_ft": &fakeBackend{name: "impresso_ft", lang: "lb", prob: 0.9},
			"lingua":      &fakeBackend{name: "lingua", lang: "lb", prob: 0.7},
		},
		minimalTextLength: 20,
		boostFactor:       1.5,
		minimalVoteScore:  1.5,
		pipelineThreshold: 0.20,
	}
	preds := b.Predict("item-1", "a sufficiently long piece of text for testing purposes")
	lang, _, ok := preds[pipelineName].Top1()
	if !ok || lang != "lb" {
		t.Fatalf("expected pipeline to decide lb, got %+v", preds[pipelineName])
	}
}
