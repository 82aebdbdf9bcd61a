// Package aggregate implements Stage 1b: collection-level ensemble
// statistics built by tallying Stage1Records of one collection.
package aggregate

import (
	"sort"

	"github.com/impresso/lid-core/internal/annotate"
	"github.com/impresso/lid-core/internal/voting"
	"github.com/impresso/lid-core/models"
)

// Aggregator computes CollectionStats from a stream of Stage1Records
// belonging to a single collection.
type Aggregator struct {
	Collection            string
	BoostedLids           map[string]bool
	MinimalTextLength     int
	BoostFactor           float64
	MinimalVoteScore      float64
	MinimalLidProbability float64
	ModelVersions         map[string]string
	ToolVersion           string
}

// NewAggregator constructs an Aggregator from an AggregateConfig.
func NewAggregator(cfg models.AggregateConfig, modelVersions map[string]string, toolVersion string) *Aggregator {
	boosted := make(map[string]bool, len(cfg.BoostedLids))
	for _, name := range cfg.BoostedLids {
		boosted[name] = true
	}
	return &Aggregator{
		Collection:            cfg.Collection,
		BoostedLids:           boosted,
		MinimalTextLength:     cfg.MinimalTextLength,
		BoostFactor:           cfg.BoostFactor,
		MinimalVoteScore:      cfg.MinimalVoteScore,
		MinimalLidProbability: cfg.MinimalLidProbability,
		ModelVersions:         modelVersions,
		ToolVersion:           toolVersion,
	}
}

// Compute builds CollectionStats from every Stage1Record of this
// collection. Records failing the §4.3 admission filter are skipped
// entirely (spec.md §4.4).
func (a *Aggregator) Compute(records []models.Stage1Record) models.CollectionStats {
	stats := models.CollectionStats{
		Collection:         a.Collection,
		PerLanguageDecided: map[string]int{},

		MinimalTextLength:     a.MinimalTextLength,
		BoostFactor:           a.BoostFactor,
		MinimalVoteScore:      a.MinimalVoteScore,
		MinimalLidProbability: a.MinimalLidProbability,
		ModelVersions:         a.ModelVersions,
		ToolVersion:           a.ToolVersion,
	}

	agreement := map[string]*models.ClassifierAgreement{}

	for _, rec := range records {
		if !annotate.AdmittedToStatistics(rec) {
			continue
		}
		stats.TotalItemsConsidered++

		voters, classifiersVoting := a.buildVoters(rec)
		totals := voting.Tally(voters, a.BoostFactor)
		lang, decided := voting.Winner(totals, a.MinimalVoteScore)

		if !decided {
			stats.TiedCount++
			continue
		}

		stats.DecidedCount++
		stats.PerLanguageDecided[lang]++

		if rec.OrigLg != "" {
			if rec.OrigLg == lang {
				stats.OrigLgSupport.Positive++
			} else {
				stats.OrigLgSupport.Negative++
			}
		}

		for name := range classifiersVoting {
			acc := agreement[name]
			if acc == nil {
				acc = &models.ClassifierAgreement{}
				agreement[name] = acc
			}
			acc.Decided++
			if top1, _, ok := rec.Predictions[name].Top1(); ok && top1 == lang {
				acc.Agreeing++
			}
		}
	}

	stats.ClassifierAgreement = make(map[string]models.ClassifierAgreement, len(agreement))
	for name, acc := range agreement {
		stats.ClassifierAgreement[name] = *acc
	}

	if denom := stats.OrigLgSupport.Positive + stats.OrigLgSupport.Negative; denom > 0 {
		trust := float64(stats.OrigLgSupport.Positive) / float64(denom)
		stats.OrigLgTrust = &trust
	}

	stats.DominantLanguage = dominantLanguage(stats.PerLanguageDecided)
	return stats
}

// buildVoters casts the base votes for one item: one per classifier whose
// top-1 probability clears MinimalLidProbability, plus one for orig_lg when
// present. It also returns the set of classifier names that had a
// qualifying prediction, for agreement bookkeeping.
func (a *Aggregator) buildVoters(rec models.Stage1Record) ([]voting.Voter, map[string]bool) {
	var voters []voting.Voter
	classifiersVoting := make(map[string]bool, len(rec.Predictions))

	for name, pred := range rec.Predictions {
		lang, prob, ok := pred.Top1()
		if !ok || prob < a.MinimalLidProbability {
			continue
		}
		classifiersVoting[name] = true
		voters = append(voters, voting.Voter{Name: name, Lang: lang, Boosted: a.BoostedLids[name]})
	}

	if rec.OrigLg != "" {
		voters = append(voters, voting.Voter{Name: "orig_lg", Lang: rec.OrigLg, Boosted: true})
	}

	return voters, classifiersVoting
}

// dominantLanguage returns the argmax of per-language decided counts,
// ties broken lexicographically (spec.md §4.4, §9).
func dominantLanguage(perLanguage map[string]int) string {
	if len(perLanguage) == 0 {
		return ""
	}
	langs := make([]string, 0, len(perLanguage))
	for l := range perLanguage {
		langs = append(langs, l)
	}
	sort.Strings(langs)

	best := langs[0]
	for _, l := range langs[1:] {
		if perLanguage[l] > perLanguage[best] {
			best = l
		}
	}
	return best
}
