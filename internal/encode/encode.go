// Package encode turns token sentence pairs into integer index arrays using
// per-language vocabularies.
package encode

import (
	"github.com/example/go-alignprep/internal/corpus"
	"github.com/example/go-alignprep/internal/vocab"
)

// TokenizedSentencePair is the index-encoded counterpart of a
// corpus.SentencePair. Either side may be shorter than the original sentence
// because out-of-vocabulary tokens are dropped.
type TokenizedSentencePair struct {
	Source []int32 `json:"source"`
	Target []int32 `json:"target"`
}

// Encode maps each sentence pair through the two vocabularies. Tokens absent
// from their vocabulary are silently dropped; if either side of a pair ends
// up empty, the whole pair is omitted from the result. The relative order of
// surviving pairs matches the input.
//
// Alignment labels are not filtered or re-indexed alongside the drops:
// a caller that needs position-accurate alignment supervision for the
// encoded sentences must re-derive the token-position correspondence itself.
func Encode(pairs []corpus.SentencePair, source, target *vocab.Vocabulary) []TokenizedSentencePair {
	encoded := make([]TokenizedSentencePair, 0, len(pairs))
	for _, pair := range pairs {
		sourceTokens := encodeSide(pair.Source, source)
		targetTokens := encodeSide(pair.Target, target)
		if len(sourceTokens) == 0 || len(targetTokens) == 0 {
			continue
		}
		encoded = append(encoded, TokenizedSentencePair{
			Source: sourceTokens,
			Target: targetTokens,
		})
	}
	return encoded
}

func encodeSide(tokens []string, v *vocab.Vocabulary) []int32 {
	ids := make([]int32, 0, len(tokens))
	for _, tok := range tokens {
		if id, ok := v.Index(tok); ok {
			ids = append(ids, id)
		}
	}
	return ids
}
