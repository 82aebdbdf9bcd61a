// Package decide implements Stage 2: the per-item rule cascade and
// weighted-voting fallback that produces the final language label.
package decide

import (
	"sort"

	"github.com/impresso/lid-core/models"
)

var fourLangs = map[string]bool{"de": true, "fr": true, "en": true, "it": true}

// Engine holds the Stage 2 configuration and decides one item at a time
// against its collection's statistics.
type Engine struct {
	cfg models.DecideConfig
}

// NewEngine constructs a decision engine from a DecideConfig.
func NewEngine(cfg models.DecideConfig) *Engine {
	return &Engine{cfg: cfg}
}

type activeMember struct {
	name string
	lang string
	prob float64
}

// Decide runs the full rule cascade over r, consulting s for collection-wide
// statistics, and returns the Stage2Record.
func (e *Engine) Decide(r models.Stage1Record, s models.CollectionStats) models.Stage2Record {
	out := models.Stage2Record{
		Stage1Record:      r,
		MinTextLengthUsed: e.cfg.MinimalTextLength,
	}

	if r.StrippedLength == 0 {
		out.FinalLanguage, out.LgDecision = dominantOrUndetermined(s.DominantLanguage)
		return out
	}

	origLgTrusted := s.OrigLgTrust != nil && *s.OrigLgTrust >= e.cfg.OrigLgTrustThreshold
	active := e.buildActiveSet(r, origLgTrusted)

	if lang, ok := ruleAll(active); ok {
		out.FinalLanguage, out.LgDecision = lang, models.DecisionAll
		return out
	}

	if lang, ok := ruleAllButImpressoFt(active, r, s, e.cfg.MinimalTextLength); ok {
		out.FinalLanguage, out.LgDecision = lang, models.DecisionAllButImpressoFt
		return out
	}

	if r.StrippedLength < e.cfg.MinimalTextLength {
		out.FinalLanguage, out.LgDecision = dominantOrUndetermined(s.DominantLanguage)
		return out
	}

	votes := e.buildWeightedVotes(active, s)
	totals, details := applyBoost(votes, fallbackBoostFactor)
	winner, score := pickWinner(totals, s)

	out.VoteDetails = details
	if score < e.cfg.MinimalVotingScore {
		out.FinalLanguage, out.LgDecision = dominantOrUndetermined(s.DominantLanguage)
		if out.LgDecision == models.DecisionDominantByLen {
			out.LgDecision = models.DecisionDominantByLowVote
		}
		return out
	}

	out.FinalLanguage, out.LgDecision = winner, models.DecisionVoting
	return out
}

// fallbackBoostFactor is the §4.4 support-boost multiplier applied in the
// stage-2 weighted-voting fallback; fixed by spec.md §4.4/§4.5 and not
// exposed as a CLI flag on `decide`.
const fallbackBoostFactor = 1.5

func dominantOrUndetermined(dominant string) (string, models.DecisionCode) {
	if dominant == "" {
		return "und", models.DecisionUndetermined
	}
	return dominant, models.DecisionDominantByLen
}

// buildActiveSet returns every classifier prediction clearing the stage-2
// probability gate, plus orig_lg as a synthetic member when trusted.
func (e *Engine) buildActiveSet(r models.Stage1Record, origLgTrusted bool) []activeMember {
	var active []activeMember
	for _, name := range e.cfg.Lids {
		pred, exists := r.Predictions[name]
		if !exists {
			continue
		}
		lang, prob, ok := pred.Top1()
		if !ok || prob < e.cfg.MinimalLidProbability {
			continue
		}
		active = append(active, activeMember{name: name, lang: lang, prob: prob})
	}
	if origLgTrusted && r.OrigLg != "" {
		active = append(active, activeMember{name: "orig_lg", lang: r.OrigLg, prob: 1.0})
	}
	// deterministic order for downstream "first match" reasoning
	sort.Slice(active, func(i, j int) bool { return active[i].name < active[j].name })
	return active
}

// ruleAll implements spec.md §4.5 rule 1: unanimous agreement among ≥2
// active members, with impresso_ft itself required to be an active member
// (otherwise, an impresso_ft prediction that merely failed the probability
// gate would trivially count as "agreement" and steal the narrower
// all-but-impresso_ft rule's cases).
func ruleAll(active []activeMember) (string, bool) {
	if len(active) < 2 {
		return "", false
	}
	hasImpressoFt := false
	lang := active[0].lang
	for _, m := range active {
		if m.lang != lang {
			return "", false
		}
		if m.name == "impresso_ft" {
			hasImpressoFt = true
		}
	}
	if !hasImpressoFt {
		return "", false
	}
	return lang, true
}

// ruleAllButImpressoFt implements spec.md §4.5 rule 2.
func ruleAllButImpressoFt(active []activeMember, r models.Stage1Record, s models.CollectionStats, minimalTextLength int) (string, bool) {
	var rest []activeMember
	for _, m := range active {
		if m.name != "impresso_ft" {
			rest = append(rest, m)
		}
	}
	if len(rest) < 2 {
		return "", false
	}
	lang := rest[0].lang
	for _, m := range rest[1:] {
		if m.lang != lang {
			return "", false
		}
	}
	if fourLangs[lang] || lang == "lb" {
		return "", false
	}
	if s.PerLanguageDecided[lang] < 1 {
		return "", false
	}
	if r.Letters < minimalTextLength {
		return "", false
	}
	return lang, true
}

type weightedVote struct {
	name    string
	lang    string
	weight  float64
	boosted bool
}

// buildWeightedVotes computes each active member's fallback-voting weight
// per spec.md §4.5 rule 4, before the boost pass.
func (e *Engine) buildWeightedVotes(active []activeMember, s models.CollectionStats) []weightedVote {
	totalDecided := 0
	for _, count := range s.PerLanguageDecided {
		totalDecided += count
	}

	votes := make([]weightedVote, 0, len(active))
	for _, m := range active {
		weight := m.prob
		boosted := false

		switch {
		case m.name == "impresso_ft" && m.lang == "lb":
			weight = m.prob * e.cfg.WeightLbImpressoFt
			boosted = true
		case m.name == "impresso_ft":
			boosted = true
		case m.name == "orig_lg":
			relativeSupport := 0.0
			if totalDecided > 0 {
				relativeSupport = float64(s.PerLanguageDecided[m.lang]) / float64(totalDecided)
			}
			weight = 2 * relativeSupport
			boosted = true
		}
		votes = append(votes, weightedVote{name: m.name, lang: m.lang, weight: weight, boosted: boosted})
	}
	return votes
}

// applyBoost multiplies each boosted voter's own weight by boostFactor when
// at least one other voter cast a vote for the same language (spec.md §4.4,
// §9 — per-voter, not per-total).
func applyBoost(votes []weightedVote, boostFactor float64) (map[string]float64, []models.VoteDetail) {
	countByLang := make(map[string]int, len(votes))
	for _, v := range votes {
		countByLang[v.lang]++
	}

	totals := make(map[string]float64, len(votes))
	details := make([]models.VoteDetail, 0, len(votes))
	for _, v := range votes {
		weight := v.weight
		applied := false
		if v.boosted && countByLang[v.lang] > 1 {
			weight *= boostFactor
			applied = true
		}
		totals[v.lang] += weight
		details = append(details, models.VoteDetail{Classifier: v.name, Language: v.lang, Weight: weight, Boosted: applied})
	}
	return totals, details
}

// pickWinner returns the argmax language and score, breaking ties first by
// higher per_language_decided count in stats, then lexicographically
// (spec.md §4.5).
func pickWinner(totals map[string]float64, s models.CollectionStats) (string, float64) {
	if len(totals) == 0 {
		return "", 0
	}
	maxScore := -1.0
	for _, score := range totals {
		if score > maxScore {
			maxScore = score
		}
	}
	var candidates []string
	for lang, score := range totals {
		if score == maxScore {
			candidates = append(candidates, lang)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		di, dj := s.PerLanguageDecided[candidates[i]], s.PerLanguageDecided[candidates[j]]
		if di != dj {
			return di > dj
		}
		return candidates[i] < candidates[j]
	})
	return candidates[0], maxScore
}
