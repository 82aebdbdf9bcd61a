// Package voting implements the boosted single-language vote tallying used
// by both the collection aggregator (Stage 1b) and the composite
// "impresso_langident_pipeline" classifier.
package voting

// Voter is one cast vote for a language, optionally eligible for the
// support boost.
type Voter struct {
	Name    string
	Lang    string
	Boosted bool
}

// Tally sums one vote per Voter into totals, applying the boost: a Boosted
// voter's own contribution is multiplied by boostFactor when at least one
// other voter (boosted or not) cast a vote for the same language. The
// boosted voter never counts as its own support.
func Tally(voters []Voter, boostFactor float64) map[string]float64 {
	countByLang := make(map[string]int, len(voters))
	for _, v := range voters {
		countByLang[v.Lang]++
	}

	totals := make(map[string]float64, len(countByLang))
	for _, v := range voters {
		weight := 1.0
		if v.Boosted && countByLang[v.Lang] > 1 {
			weight *= boostFactor
		}
		totals[v.Lang] += weight
	}
	return totals
}

// Winner picks the unique highest-scoring language from totals, subject to
// minimalScore. Returns decided=false on a tie or when the max score is
// below minimalScore.
func Winner(totals map[string]float64, minimalScore float64) (lang string, decided bool) {
	if len(totals) == 0 {
		return "", false
	}

	maxScore := -1.0
	for _, score := range totals {
		if score > maxScore {
			maxScore = score
		}
	}

	winner := ""
	count := 0
	for l, score := range totals {
		if score == maxScore {
			winner = l
			count++
		}
	}

	if count != 1 || maxScore < minimalScore {
		return "", false
	}
	return winner, true
}
