package models

import (
	"encoding/json"
	"fmt"
)

// marshalPair renders (lang, prob) as the two-element JSON array the
// impresso stage-1a schema expects: `["de", 0.97]`.
func marshalPair(lang string, prob float64) ([]byte, error) {
	return json.Marshal([2]interface{}{lang, prob})
}

// marshalPairList renders a slice of LangProb as a JSON array of
// `[lang, prob]` pairs.
func marshalPairList(scores []LangProb) ([]byte, error) {
	if scores == nil {
		scores = []LangProb{}
	}
	return json.Marshal(scores)
}

// unmarshalPairList parses a JSON array of `[lang, prob]` pairs.
func unmarshalPairList(data []byte) ([]LangProb, error) {
	var scores []LangProb
	if err := json.Unmarshal(data, &scores); err != nil {
		return nil, fmt.Errorf("decode prediction scores: %w", err)
	}
	return scores, nil
}

// unmarshalPair parses a two-element `[lang, prob]` JSON array.
func unmarshalPair(data []byte) (string, float64, error) {
	var pair [2]interface{}
	if err := json.Unmarshal(data, &pair); err != nil {
		return "", 0, fmt.Errorf("decode lang/prob pair: %w", err)
	}
	lang, ok := pair[0].(string)
	if !ok {
		return "", 0, fmt.Errorf("decode lang/prob pair: first element is not a string")
	}
	prob, ok := pair[1].(float64)
	if !ok {
		return "", 0, fmt.Errorf("decode lang/prob pair: second element is not a number")
	}
	return lang, prob, nil
}
