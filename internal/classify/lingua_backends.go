package classify

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/pemistahl/lingua-go"

	"github.com/impresso/lid-core/models"
)

// newLinguaBackend builds the concrete lingua.LanguageDetector configuration
// grounding the named classifier variant. All five off-the-shelf variants
// named in spec.md §4.2 are realized on the pack's single multi-language LID
// dependency (github.com/pemistahl/lingua-go), distinguished by language-set
// restriction and confidence-mode, since the pack carries no other
// off-the-shelf LID engine to vendor per variant.
func newLinguaBackend(name string) (Backend, error) {
	switch name {
	case "impresso_ft":
		languages := []lingua.Language{lingua.French, lingua.German, lingua.Luxembourgish, lingua.English, lingua.Italian}
		detector := lingua.NewLanguageDetectorBuilder().FromLanguages(languages...).Build()
		return &linguaBackend{name: name, detector: detector, supported: isoCodes(languages)}, nil

	case "wp_ft":
		languages := lingua.AllLanguages()
		detector := lingua.NewLanguageDetectorBuilder().FromAllLanguages().Build()
		return &linguaBackend{name: name, detector: detector, supported: isoCodes(languages)}, nil

	case "langid":
		languages := lingua.AllLanguages()
		detector := lingua.NewLanguageDetectorBuilder().FromAllLanguages().WithMinimumRelativeDistance(0.0).Build()
		return &linguaBackend{name: name, detector: detector, supported: isoCodes(languages)}, nil

	case "lingua":
		languages := lingua.AllLanguages()
		detector := lingua.NewLanguageDetectorBuilder().FromAllLanguages().WithLowAccuracyMode().Build()
		return &linguaBackend{name: name, detector: detector, supported: isoCodes(languages)}, nil

	case "langdetect":
		languages := excludeLuxembourgish(lingua.AllLanguages())
		detector := lingua.NewLanguageDetectorBuilder().FromLanguages(languages...).Build()
		return &langdetectBackend{
			linguaBackend:      linguaBackend{name: name, detector: detector, supported: isoCodes(languages)},
			samples:            5,
			earlyStopThreshold: 0.95,
		}, nil

	default:
		return nil, fmt.Errorf("unknown classifier %q", name)
	}
}

// linguaBackend adapts a configured lingua.LanguageDetector to the Backend
// interface.
type linguaBackend struct {
	name      string
	detector  lingua.LanguageDetector
	supported []string
}

func (l *linguaBackend) Name() string                 { return l.name }
func (l *linguaBackend) SupportedLanguages() []string { return l.supported }

func (l *linguaBackend) Predict(text string, seed int64) *models.LidPrediction {
	values := l.detector.ComputeLanguageConfidenceValues(text)
	if len(values) == 0 {
		return &models.LidPrediction{Unavailable: true, ReasonCode: "no_signal"}
	}
	scores := make([]models.LangProb, 0, len(values))
	for _, v := range values {
		scores = append(scores, models.LangProb{Lang: isoLower(v.Language()), Prob: v.Value()})
	}
	return &models.LidPrediction{Scores: scores}
}

// langdetectBackend samples n contiguous word windows of the item's text
// using a seed derived from the item id, averaging per-language confidence
// across samples with an early-stop once one language dominates. This
// mirrors the deterministic-per-item-seed sampling behavior that the
// original langdetect port required (original_source's avg_langdetect_lid),
// even though lingua-go itself is a deterministic n-gram model.
type langdetectBackend struct {
	linguaBackend
	samples            int
	earlyStopThreshold float64
}

func (l *langdetectBackend) Predict(text string, seed int64) *models.LidPrediction {
	words := strings.Fields(text)
	if len(words) == 0 {
		return &models.LidPrediction{Unavailable: true, ReasonCode: "no_signal"}
	}

	rng := rand.New(rand.NewSource(seed))
	totals := make(map[string]float64)
	rounds := 0

	for i := 0; i < l.samples; i++ {
		sample := sampleWindow(words, rng)
		values := l.detector.ComputeLanguageConfidenceValues(sample)
		if len(values) == 0 {
			continue
		}
		rounds++
		for _, v := range values {
			totals[isoLower(v.Language())] += v.Value()
		}
		if top, prob := topAverage(totals, rounds); prob >= l.earlyStopThreshold {
			_ = top
			break
		}
	}

	if rounds == 0 {
		return &models.LidPrediction{Unavailable: true, ReasonCode: "no_signal"}
	}
	return &models.LidPrediction{Scores: scoresFromTotals(totals, sumOf(totals))}
}

// sampleWindow picks a random contiguous run of words (at most the full
// text) to emulate the source's chunked-sampling LID pass.
func sampleWindow(words []string, rng *rand.Rand) string {
	if len(words) <= 8 {
		return strings.Join(words, " ")
	}
	windowSize := 8
	start := rng.Intn(len(words) - windowSize)
	return strings.Join(words[start:start+windowSize], " ")
}

func topAverage(totals map[string]float64, rounds int) (string, float64) {
	if rounds == 0 {
		return "", 0
	}
	var best string
	var bestAvg float64
	for lang, total := range totals {
		avg := total / float64(rounds)
		if avg > bestAvg {
			bestAvg = avg
			best = lang
		}
	}
	return best, bestAvg
}

func sumOf(totals map[string]float64) float64 {
	sum := 0.0
	for _, v := range totals {
		sum += v
	}
	return sum
}

func isoLower(lang lingua.Language) string {
	return strings.ToLower(lang.IsoCode639_1().String())
}

func isoCodes(languages []lingua.Language) []string {
	codes := make([]string, 0, len(languages))
	for _, l := range languages {
		codes = append(codes, isoLower(l))
	}
	sort.Strings(codes)
	return codes
}

func excludeLuxembourgish(languages []lingua.Language) []lingua.Language {
	out := make([]lingua.Language, 0, len(languages))
	for _, l := range languages {
		if l == lingua.Luxembourgish {
			continue
		}
		out = append(out, l)
	}
	return out
}
