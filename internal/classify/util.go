package classify

import (
	"sort"

	"github.com/impresso/lid-core/models"
)

// scoresFromTotals normalizes raw vote totals into probabilities summing to
// 1 and sorts them by descending probability, matching every other
// backend's LidPrediction shape.
func scoresFromTotals(totals map[string]float64, sum float64) []models.LangProb {
	scores := make([]models.LangProb, 0, len(totals))
	for lang, total := range totals {
		prob := 0.0
		if sum > 0 {
			prob = total / sum
		}
		scores = append(scores, models.LangProb{Lang: lang, Prob: prob})
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Prob != scores[j].Prob {
			return scores[i].Prob > scores[j].Prob
		}
		return scores[i].Lang < scores[j].Lang
	})
	return scores
}
