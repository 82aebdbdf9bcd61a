package models

// AnnotateConfig holds runtime configuration for the annotate (Stage 1a)
// tool. All values default from pkg/config and can be overridden by CLI
// flags.
type AnnotateConfig struct {
	Lids              []string `yaml:"lids"`
	ImpressoFtPath    string   `yaml:"impresso_ft_path"`
	WpFtPath          string   `yaml:"wp_ft_path"`
	MinimalTextLength int      `yaml:"minimal_text_length"`
	RoundNdigits      int      `yaml:"round_ndigits"`
	GitDescribe       string   `yaml:"git_describe"`
}

// AggregateConfig holds runtime configuration for the aggregate (Stage 1b)
// tool.
type AggregateConfig struct {
	Collection            string   `yaml:"collection"`
	Lids                  []string `yaml:"lids"`
	BoostedLids           []string `yaml:"boosted_lids"`
	MinimalTextLength     int      `yaml:"minimal_text_length"`
	BoostFactor           float64  `yaml:"boost_factor"`
	MinimalVoteScore      float64  `yaml:"minimal_vote_score"`
	MinimalLidProbability float64  `yaml:"minimal_lid_probability"`
}

// DecideConfig holds runtime configuration for the decide (Stage 2) tool.
// MinimalTextLength is the stage2_minimal_text_length threshold (spec.md
// §4.5, default 50) below which the dominant-by-len rule fires; it is
// distinct from AnnotateConfig.MinimalTextLength (the stage-1a admission
// gate, default 20).
type DecideConfig struct {
	Lids                    []string `yaml:"lids"`
	WeightLbImpressoFt      float64  `yaml:"weight_lb_impresso_ft"`
	MinimalLidProbability   float64  `yaml:"minimal_lid_probability"`
	MinimalVotingScore      float64  `yaml:"minimal_voting_score"`
	MinimalTextLength       int      `yaml:"minimal_text_length"`
	OrigLgTrustThreshold    float64  `yaml:"orig_lg_trust_threshold"`
	CollectionStatsFilename string   `yaml:"collection_stats_filename"`
}

// DefaultAnnotateConfig returns the spec-mandated defaults for the annotate
// tool.
func DefaultAnnotateConfig() AnnotateConfig {
	return AnnotateConfig{
		Lids:              []string{"impresso_ft", "wp_ft", "langid", "langdetect", "lingua", "impresso_langident_pipeline"},
		MinimalTextLength: 20,
		RoundNdigits:      3,
	}
}

// DefaultAggregateConfig returns the spec-mandated defaults for the
// aggregate tool.
func DefaultAggregateConfig() AggregateConfig {
	return AggregateConfig{
		Lids:                  []string{"impresso_ft", "wp_ft", "langid", "langdetect", "lingua", "impresso_langident_pipeline"},
		BoostedLids:           []string{"impresso_ft"},
		MinimalTextLength:     20,
		BoostFactor:           1.5,
		MinimalVoteScore:      1.5,
		MinimalLidProbability: 0.20,
	}
}

// DefaultDecideConfig returns the spec-mandated defaults for the decide
// tool.
func DefaultDecideConfig() DecideConfig {
	return DecideConfig{
		Lids:                  []string{"impresso_ft", "wp_ft", "langid", "langdetect", "lingua", "impresso_langident_pipeline"},
		WeightLbImpressoFt:    6,
		MinimalLidProbability: 0.5,
		MinimalVotingScore:    0.5,
		MinimalTextLength:     50,
		OrigLgTrustThreshold:  0.75,
	}
}
