// Package classify implements the ClassifierBank: a uniform adapter over
// heterogeneous LID backends, all currently realized on top of
// github.com/pemistahl/lingua-go, the retrieval pack's only off-the-shelf
// multi-language identification library.
package classify

import (
	"fmt"

	"github.com/impresso/lid-core/internal/common"
	"github.com/impresso/lid-core/internal/features"
	"github.com/impresso/lid-core/internal/voting"
	"github.com/impresso/lid-core/models"
)

// Backend is the capability set every classifier variant exposes: predict,
// name, supported languages.
type Backend interface {
	Name() string
	SupportedLanguages() []string
	Predict(text string, seed int64) *models.LidPrediction
}

const pipelineName = "impresso_langident_pipeline"

// Bank owns one Backend instance per configured classifier name and applies
// the shared minimal-text-length pre-filter ahead of every backend.
type Bank struct {
	order             []string
	backends          map[string]Backend
	minimalTextLength int
	boostFactor       float64
	minimalVoteScore  float64
	pipelineThreshold float64
}

// NewBank builds every backend named in cfg.Lids. An unknown name is fatal
// at startup, never at per-item time (spec.md §9's registry discipline).
func NewBank(cfg models.AnnotateConfig) (*Bank, error) {
	b := &Bank{
		order:             append([]string(nil), cfg.Lids...),
		backends:          make(map[string]Backend, len(cfg.Lids)),
		minimalTextLength: cfg.MinimalTextLength,
		boostFactor:       1.5,
		minimalVoteScore:  1.5,
		pipelineThreshold: 0.20,
	}

	for _, name := range cfg.Lids {
		if name == pipelineName {
			continue // computed from the other backends' output, not registered
		}
		backend, err := newLinguaBackend(name)
		if err != nil {
			return nil, fmt.Errorf("classifier registry: %w", err)
		}
		b.backends[name] = backend
	}
	return b, nil
}

// Predict runs every configured classifier over one item's text, applying
// the shared too-short pre-filter, and returns one prediction (possibly
// Unavailable) per configured name.
func (b *Bank) Predict(id, text string) map[string]*models.LidPrediction {
	out := make(map[string]*models.LidPrediction, len(b.order))
	seed := common.DeterministicSeed(id)
	tooShort := features.StrippedLength(text) < b.minimalTextLength

	for _, name := range b.order {
		if name == pipelineName {
			continue
		}
		if tooShort {
			out[name] = &models.LidPrediction{Unavailable: true, ReasonCode: "too_short"}
			continue
		}
		out[name] = safePredict(b.backends[name], text, seed)
	}

	for _, name := range b.order {
		if name == pipelineName {
			out[name] = b.predictPipeline(out)
		}
	}
	return out
}

// predictPipeline re-applies the Stage 1b boost/vote arithmetic over the
// other configured backends' predictions for this single item, exposing the
// result as one named classifier (spec.md §4.2).
func (b *Bank) predictPipeline(others map[string]*models.LidPrediction) *models.LidPrediction {
	var voters []voting.Voter
	for name, pred := range others {
		lang, prob, ok := pred.Top1()
		if !ok || prob < b.pipelineThreshold {
			continue
		}
		voters = append(voters, voting.Voter{Name: name, Lang: lang, Boosted: name == "impresso_ft"})
	}

	totals := voting.Tally(voters, b.boostFactor)
	if _, decided := voting.Winner(totals, b.minimalVoteScore); !decided {
		return &models.LidPrediction{Unavailable: true, ReasonCode: "no_decision"}
	}

	sum := 0.0
	for _, v := range totals {
		sum += v
	}
	return &models.LidPrediction{Scores: scoresFromTotals(totals, sum)}
}

func safePredict(backend Backend, text string, seed int64) (pred *models.LidPrediction) {
	defer func() {
		if r := recover(); r != nil {
			pred = &models.LidPrediction{Unavailable: true, ReasonCode: "runtime_error", ReasonDetail: fmt.Sprint(r)}
		}
	}()
	if backend == nil {
		return &models.LidPrediction{Unavailable: true, ReasonCode: "runtime_error", ReasonDetail: "backend not registered"}
	}
	return backend.Predict(text, seed)
}
