// Package diagnostics builds the per-(collection,year) sidecar emitted
// alongside every Stage 2 output file.
package diagnostics

import "github.com/impresso/lid-core/models"

// Emitter accumulates decision-code and language counts across one
// (collection, year) unit's Stage2Records.
type Emitter struct {
	collectionYear string
	toolVersion    string
	gitDescribe    string
	modelVersions  map[string]string

	n             map[string]int
	lg            map[string]int
	decisionCodes map[string]int
}

// NewEmitter starts a fresh diagnostics accumulator for one (collection,
// year) unit.
func NewEmitter(collectionYear, toolVersion, gitDescribe string, modelVersions map[string]string) *Emitter {
	return &Emitter{
		collectionYear: collectionYear,
		toolVersion:    toolVersion,
		gitDescribe:    gitDescribe,
		modelVersions:  modelVersions,
		n:              map[string]int{},
		lg:             map[string]int{},
		decisionCodes:  map[string]int{},
	}
}

// Observe folds one Stage2Record's outcome into the running tallies.
func (e *Emitter) Observe(rec models.Stage2Record) {
	e.n[e.collectionYear]++
	e.lg[rec.FinalLanguage]++
	e.decisionCodes[string(rec.LgDecision)]++
}

// Diagnostics returns the accumulated sidecar payload.
func (e *Emitter) Diagnostics() models.Diagnostics {
	return models.Diagnostics{
		N:             e.n,
		Lg:            e.lg,
		DecisionCodes: e.decisionCodes,
		ModelVersions: e.modelVersions,
		ToolVersion:   e.toolVersion,
		GitDescribe:   e.gitDescribe,
	}
}
