package annotate

import (
	"testing"

	"github.com/impresso/lid-core/models"
)

type fakeBank struct{}

func (fakeBank) Predict(id, text string) map[string]*models.LidPrediction {
	return map[string]*models.LidPrediction{
		"langid": {Scores: []models.LangProb{{Lang: "de", Prob: 0.987654}}},
	}
}

func TestAnnotateRoundsProbabilities(t *testing.T) {
	a := &Annotator{Bank: fakeBank{}, ToolVersion: "test", RoundNdigits: 3}
	rec := a.Annotate(models.ContentItem{ID: "1", Text: "Die Schweiz ist ein schoenes Land."})
	lang, prob, ok := rec.Predictions["langid"].Top1()
	if !ok || lang != "de" || prob != 0.988 {
		t.Fatalf("expected rounded 0.988, got %v", prob)
	}
}

func TestAdmittedToStatistics(t *testing.T) {
	admitted := models.Stage1Record{Letters: 250, AlphabeticRatio: 0.6}
	if !AdmittedToStatistics(admitted) {
		t.Fatalf("expected admission")
	}
	tooShort := models.Stage1Record{Letters: 10, AlphabeticRatio: 0.9}
	if AdmittedToStatistics(tooShort) {
		t.Fatalf("expected rejection on letters_count")
	}
	tooNoisy := models.Stage1Record{Letters: 300, AlphabeticRatio: 0.3}
	if AdmittedToStatistics(tooNoisy) {
		t.Fatalf("expected rejection on alphabetical_ratio")
	}
}
