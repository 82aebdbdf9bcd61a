package diagnostics

import (
	"testing"

	"github.com/impresso/lid-core/models"
)

func TestEmitterTallies(t *testing.T) {
	e := NewEmitter("gazette-1900", "v1", "g1", nil)
	e.Observe(models.Stage2Record{FinalLanguage: "de", LgDecision: models.DecisionAll})
	e.Observe(models.Stage2Record{FinalLanguage: "fr", LgDecision: models.DecisionVoting})
	e.Observe(models.Stage2Record{FinalLanguage: "de", LgDecision: models.DecisionAll})

	d := e.Diagnostics()
	if d.N["gazette-1900"] != 3 {
		t.Fatalf("expected 3 items, got %d", d.N["gazette-1900"])
	}
	if d.Lg["de"] != 2 || d.Lg["fr"] != 1 {
		t.Fatalf("unexpected language tallies: %+v", d.Lg)
	}
	if d.DecisionCodes["all"] != 2 || d.DecisionCodes["voting"] != 1 {
		t.Fatalf("unexpected decision code tallies: %+v", d.DecisionCodes)
	}
}
