// Package models defines the shared data shapes that flow between the
// annotate, aggregate, and decide stages.
package models

// ContentItem is one input record: a single article, ad, or notice from a
// newspaper issue, as produced by the upstream rebuilt-corpus collaborator.
type ContentItem struct {
	ID         string `json:"id"`
	Collection string `json:"-"`
	Year       string `json:"-"`
	Text       string `json:"ft"`
	OrigLg     string `json:"lg,omitempty"`
	Type       string `json:"tp,omitempty"`
	Timestamp  string `json:"ts,omitempty"`
	CC         string `json:"cc,omitempty"`
	Title      string `json:"title,omitempty"`
}

// TextMetrics captures the length-based features of an item's text.
type TextMetrics struct {
	LengthTotal     int     `json:"len"`
	LettersCount    int     `json:"letters"`
	NonLetterCount  int     `json:"non_letters"`
	AlphabeticRatio float64 `json:"alpha_ratio"`
}

// LangProb is one (language, probability) pair, the wire shape of a
// prediction entry: `[[lang, prob], ...]`.
type LangProb struct {
	Lang string
	Prob float64
}

// MarshalJSON encodes a LangProb as a two-element JSON array to match the
// impresso wire format instead of a JSON object.
func (lp LangProb) MarshalJSON() ([]byte, error) {
	return marshalPair(lp.Lang, lp.Prob)
}

// UnmarshalJSON decodes a two-element JSON array into a LangProb.
func (lp *LangProb) UnmarshalJSON(data []byte) error {
	lang, prob, err := unmarshalPair(data)
	if err != nil {
		return err
	}
	lp.Lang = lang
	lp.Prob = prob
	return nil
}

// LidPrediction is the normalized output of one classifier: a
// descending-probability-sorted list of language guesses. A nil
// LidPrediction represents "unavailable" for that classifier.
type LidPrediction struct {
	Scores       []LangProb `json:"-"`
	Unavailable  bool       `json:"-"`
	ReasonCode   string     `json:"-"`
	ReasonDetail string     `json:"-"`
}

// MarshalJSON encodes an unavailable prediction as JSON null and an
// available one as its list of `[lang, prob]` pairs.
func (p *LidPrediction) MarshalJSON() ([]byte, error) {
	if p == nil || p.Unavailable {
		return []byte("null"), nil
	}
	return marshalPairList(p.Scores)
}

// UnmarshalJSON accepts either JSON null (unavailable) or a list of
// `[lang, prob]` pairs.
func (p *LidPrediction) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		p.Unavailable = true
		p.ReasonCode = "too_short"
		return nil
	}
	scores, err := unmarshalPairList(data)
	if err != nil {
		return err
	}
	p.Scores = scores
	return nil
}

// Top1 returns the highest-probability language guess, or ("", 0, false) if
// the prediction carries no scores.
func (p *LidPrediction) Top1() (lang string, prob float64, ok bool) {
	if p == nil || p.Unavailable || len(p.Scores) == 0 {
		return "", 0, false
	}
	return p.Scores[0].Lang, p.Scores[0].Prob, true
}

// Stage1Record is the per-item output of Stage 1a: text metrics plus one
// prediction (or unavailable marker) per configured classifier.
type Stage1Record struct {
	ID            string                    `json:"id"`
	Collection    string                    `json:"-"`
	Year          string                    `json:"-"`
	OrigLg        string                    `json:"orig_lg,omitempty"`
	Text          string                    `json:"-"`
	Metrics       TextMetrics               `json:"-"`
	Predictions   map[string]*LidPrediction `json:"predictions"`
	ModelVersions map[string]string         `json:"model_versions,omitempty"`
	ToolVersion   string                    `json:"tool_version"`

	Length          int     `json:"len"`
	Letters         int     `json:"letters"`
	NonLetters      int     `json:"non_letters"`
	AlphabeticRatio float64 `json:"alpha_ratio"`
	StrippedLength  int     `json:"stripped_length"`

	Type      string `json:"tp,omitempty"`
	Timestamp string `json:"ts,omitempty"`
	CC        string `json:"cc,omitempty"`
	Title     string `json:"title,omitempty"`
}

// OrigLgSupport tallies how often a trusted orig_lg matched or diverged from
// the ensemble decision within one collection.
type OrigLgSupport struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
}

// ClassifierAgreement tracks how often one classifier's top-1 guess matched
// the collection's ensemble decision.
type ClassifierAgreement struct {
	Agreeing int `json:"agreeing"`
	Decided  int `json:"decided"`
}

// CollectionStats is the Stage 1b output for one collection: vote totals,
// tie counts, and per-classifier/per-orig_lg agreement statistics.
type CollectionStats struct {
	Collection           string                         `json:"collection"`
	TotalItemsConsidered  int                            `json:"total_items_considered"`
	PerLanguageDecided    map[string]int                 `json:"per_language_decided"`
	DecidedCount          int                            `json:"decided_count"`
	TiedCount             int                            `json:"tied_count"`
	OrigLgSupport         OrigLgSupport                  `json:"orig_lg_support"`
	OrigLgTrust           *float64                       `json:"orig_lg_trust"`
	ClassifierAgreement   map[string]ClassifierAgreement `json:"classifier_agreement"`
	DominantLanguage      string                         `json:"dominant_language,omitempty"`

	MinimalTextLength    int     `json:"minimal_text_length"`
	BoostFactor          float64 `json:"boost_factor"`
	MinimalVoteScore     float64 `json:"minimal_vote_score"`
	MinimalLidProbability float64 `json:"minimal_lid_probability"`

	ModelVersions map[string]string `json:"model_versions,omitempty"`
	ToolVersion   string            `json:"tool_version"`
}

// VoteDetail records the weight one classifier contributed to one language
// in the Stage 2 weighted-voting fallback, for diagnostics.
type VoteDetail struct {
	Classifier string  `json:"classifier"`
	Language   string  `json:"language"`
	Weight     float64 `json:"weight"`
	Boosted    bool    `json:"boosted,omitempty"`
}

// DecisionCode identifies which Stage 2 rule produced a final language.
type DecisionCode string

const (
	DecisionAll              DecisionCode = "all"
	DecisionAllButImpressoFt DecisionCode = "all-but-impresso_ft"
	DecisionDominantByLen    DecisionCode = "dominant-by-len"
	DecisionDominantByLowVote DecisionCode = "dominant-by-lowvote"
	DecisionVoting           DecisionCode = "voting"
	DecisionUndetermined     DecisionCode = "und"
)

// Stage2Record is the final per-item output: a Stage1Record plus the
// decided language and the rule that produced it.
type Stage2Record struct {
	Stage1Record
	FinalLanguage       string       `json:"lg"`
	LgDecision          DecisionCode `json:"lg_decision"`
	MinTextLengthUsed   int          `json:"min_text_length_used,omitempty"`
	VoteDetails         []VoteDetail `json:"vote_details,omitempty"`
}

// Diagnostics is the per-(collection,year) sidecar emitted alongside every
// Stage 2 output file.
type Diagnostics struct {
	N             map[string]int    `json:"N"`
	Lg            map[string]int    `json:"lg"`
	DecisionCodes map[string]int    `json:"decision_codes"`
	ModelVersions map[string]string `json:"model_versions,omitempty"`
	ToolVersion   string            `json:"tool_version"`
	GitDescribe   string            `json:"git_describe,omitempty"`
}
