package voting

import "testing"

func TestTallyBoostRequiresSupport(t *testing.T) {
	voters := []Voter{
		{Name: "impresso_ft", Lang: "lb", Boosted: true},
	}
	totals := Tally(voters, 1.5)
	if totals["lb"] != 1 {
		t.Fatalf("unsupported boosted voter should not be boosted, got %v", totals["lb"])
	}
}

func TestTallyBoostWithSupport(t *testing.T) {
	voters := []Voter{
		{Name: "impresso_ft", Lang: "lb", Boosted: true},
		{Name: "lingua", Lang: "lb"},
	}
	totals := Tally(voters, 1.5)
	// impresso_ft: 1 * 1.5 = 1.5, lingua: 1 -> total 2.5
	if totals["lb"] != 2.5 {
		t.Fatalf("expected 2.5, got %v", totals["lb"])
	}
}

func TestWinnerTie(t *testing.T) {
	totals := map[string]float64{"de": 2, "fr": 2}
	if _, decided := Winner(totals, 1.5); decided {
		t.Fatalf("expected tie to yield no decision")
	}
}

func TestWinnerBelowThreshold(t *testing.T) {
	totals := map[string]float64{"de": 1}
	if _, decided := Winner(totals, 1.5); decided {
		t.Fatalf("expected below-threshold max to yield no decision")
	}
}

func TestWinnerUnique(t *testing.T) {
	totals := map[string]float64{"de": 3, "fr": 1}
	lang, decided := Winner(totals, 1.5)
	if !decided || lang != "de" {
		t.Fatalf("expected de to win, got %q decided=%v", lang, decided)
	}
}
