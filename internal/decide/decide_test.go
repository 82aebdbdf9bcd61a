package decide

import (
	"testing"

	"github.com/impresso/lid-core/models"
)

func p(lang string, prob float64) *models.LidPrediction {
	return &models.LidPrediction{Scores: []models.LangProb{{Lang: lang, Prob: prob}}}
}

func trust(v float64) *float64 { return &v }

func defaultConfig() models.DecideConfig {
	return models.DefaultDecideConfig()
}

func TestDecideS1TrivialAgreement(t *testing.T) {
	e := NewEngine(defaultConfig())
	r := models.Stage1Record{
		OrigLg:         "de",
		StrippedLength: 60,
		Letters:        60,
		Predictions: map[string]*models.LidPrediction{
			"langid":      p("de", 0.99),
			"langdetect":  p("de", 0.99),
			"wp_ft":       p("de", 0.98),
			"impresso_ft": p("de", 0.95),
			"lingua":      p("de", 0.97),
		},
	}
	s := models.CollectionStats{OrigLgTrust: trust(0.9)}
	out := e.Decide(r, s)
	if out.LgDecision != models.DecisionAll || out.FinalLanguage != "de" {
		t.Fatalf("S1: got %s/%s", out.LgDecision, out.FinalLanguage)
	}
}

func TestDecideS2RareLanguage(t *testing.T) {
	e := NewEngine(defaultConfig())
	r := models.Stage1Record{
		StrippedLength: 60,
		Letters:        60,
		Predictions: map[string]*models.LidPrediction{
			"langid":      p("la", 0.9),
			"langdetect":  p("la", 0.9),
			"wp_ft":       p("la", 0.9),
			"lingua":      p("la", 0.9),
			"impresso_ft": p("fr", 0.4),
		},
	}
	s := models.CollectionStats{PerLanguageDecided: map[string]int{"la": 3}}
	out := e.Decide(r, s)
	if out.LgDecision != models.DecisionAllButImpressoFt || out.FinalLanguage != "la" {
		t.Fatalf("S2: got %s/%s", out.LgDecision, out.FinalLanguage)
	}
}

func TestDecideS3ShortText(t *testing.T) {
	e := NewEngine(defaultConfig())
	r := models.Stage1Record{StrippedLength: 5}
	s := models.CollectionStats{DominantLanguage: "fr"}
	out := e.Decide(r, s)
	if out.LgDecision != models.DecisionDominantByLen || out.FinalLanguage != "fr" {
		t.Fatalf("S3: got %s/%s", out.LgDecision, out.FinalLanguage)
	}
}

func TestDecideS4LuxembourgishOverride(t *testing.T) {
	e := NewEngine(defaultConfig())
	r := models.Stage1Record{
		StrippedLength: 60,
		Letters:        60,
		Predictions: map[string]*models.LidPrediction{
			"langid":      p("de", 0.6),
			"langdetect":  p("de", 0.55),
			"wp_ft":       p("lb", 0.5),
			"impresso_ft": p("lb", 0.92),
			"lingua":      p("lb", 0.7),
		},
	}
	s := models.CollectionStats{}
	out := e.Decide(r, s)
	if out.LgDecision != models.DecisionVoting || out.FinalLanguage != "lb" {
		t.Fatalf("S4: got %s/%s", out.LgDecision, out.FinalLanguage)
	}
}

func TestDecideS5LowConfidence(t *testing.T) {
	e := NewEngine(defaultConfig())
	r := models.Stage1Record{
		StrippedLength: 120,
		Letters:        120,
		Predictions: map[string]*models.LidPrediction{
			"langid":      p("de", 0.3),
			"langdetect":  p("de", 0.3),
			"wp_ft":       p("de", 0.3),
			"impresso_ft": p("de", 0.3),
			"lingua":      p("de", 0.3),
		},
	}
	s := models.CollectionStats{DominantLanguage: "fr"}
	out := e.Decide(r, s)
	if out.LgDecision != models.DecisionDominantByLowVote || out.FinalLanguage != "fr" {
		t.Fatalf("S5: got %s/%s", out.LgDecision, out.FinalLanguage)
	}
}

func TestDecideS6StatsTrustGate(t *testing.T) {
	e := NewEngine(defaultConfig())
	r := models.Stage1Record{
		OrigLg:         "it",
		StrippedLength: 60,
		Letters:        60,
		Predictions: map[string]*models.LidPrediction{
			"langid":      p("fr", 0.9),
			"langdetect":  p("fr", 0.9),
			"wp_ft":       p("fr", 0.9),
			"impresso_ft": p("fr", 0.9),
			"lingua":      p("fr", 0.9),
		},
	}
	s := models.CollectionStats{OrigLgTrust: trust(0.60)}
	out := e.Decide(r, s)
	if out.LgDecision != models.DecisionAll || out.FinalLanguage != "fr" {
		t.Fatalf("S6: got %s/%s", out.LgDecision, out.FinalLanguage)
	}
}

func TestDecideEmptyText(t *testing.T) {
	e := NewEngine(defaultConfig())
	out := e.Decide(models.Stage1Record{StrippedLength: 0}, models.CollectionStats{})
	if out.FinalLanguage != "und" || out.LgDecision != models.DecisionUndetermined {
		t.Fatalf("expected und/und for empty text with no dominant, got %s/%s", out.FinalLanguage, out.LgDecision)
	}
}

func TestDecideBoundaryTextLength(t *testing.T) {
	e := NewEngine(defaultConfig())

	at50 := e.Decide(models.Stage1Record{StrippedLength: 50}, models.CollectionStats{DominantLanguage: "fr"})
	if at50.LgDecision == models.DecisionDominantByLen {
		t.Fatalf("50-char text should not trigger dominant-by-len, got %s", at50.LgDecision)
	}

	at49 := e.Decide(models.Stage1Record{StrippedLength: 49}, models.CollectionStats{DominantLanguage: "fr"})
	if at49.LgDecision != models.DecisionDominantByLen {
		t.Fatalf("49-char text should trigger dominant-by-len, got %s", at49.LgDecision)
	}
}

func TestDecideSingleActiveClassifierDoesNotTriggerAll(t *testing.T) {
	e := NewEngine(defaultConfig())
	r := models.Stage1Record{
		StrippedLength: 60,
		Letters:        60,
		Predictions: map[string]*models.LidPrediction{
			"impresso_ft": p("de", 0.9),
		},
	}
	out := e.Decide(r, models.CollectionStats{DominantLanguage: "fr"})
	if out.LgDecision == models.DecisionAll {
		t.Fatalf("single active classifier should not satisfy the all rule")
	}
}
