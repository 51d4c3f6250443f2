// Package vocab builds frequency-ranked token vocabularies from a parallel
// corpus and maps tokens to dense integer indices.
package vocab

import (
	"sort"

	"github.com/example/go-alignprep/internal/corpus"
)

// Vocabulary maps tokens of one language to dense indices in [0, Len()).
// It is built once and not mutated afterwards.
type Vocabulary struct {
	indices map[string]int32
	tokens  []string
	counts  []int64
}

// Build counts token occurrences per language across all sentence pairs and
// assigns indices.
//
// With freqCutoff > 0 each vocabulary keeps the freqCutoff most frequent
// tokens, ordered by descending frequency; frequency ties are broken
// lexicographically ascending so that construction is reproducible. With
// freqCutoff <= 0 every distinct token is kept, ordered lexicographically.
// The two languages are ranked and indexed independently; alignment labels
// never contribute to the counts.
func Build(pairs []corpus.SentencePair, freqCutoff int) (source, target *Vocabulary) {
	sourceFreq := make(map[string]int64)
	targetFreq := make(map[string]int64)
	for _, pair := range pairs {
		for _, tok := range pair.Source {
			sourceFreq[tok]++
		}
		for _, tok := range pair.Target {
			targetFreq[tok]++
		}
	}
	return fromCounts(sourceFreq, freqCutoff), fromCounts(targetFreq, freqCutoff)
}

func fromCounts(freq map[string]int64, cutoff int) *Vocabulary {
	tokens := make([]string, 0, len(freq))
	for tok := range freq {
		tokens = append(tokens, tok)
	}

	if cutoff > 0 {
		sort.Slice(tokens, func(i, j int) bool {
			if freq[tokens[i]] != freq[tokens[j]] {
				return freq[tokens[i]] > freq[tokens[j]]
			}
			return tokens[i] < tokens[j]
		})
		if len(tokens) > cutoff {
			tokens = tokens[:cutoff]
		}
	} else {
		sort.Strings(tokens)
	}

	v := &Vocabulary{
		indices: make(map[string]int32, len(tokens)),
		tokens:  tokens,
		counts:  make([]int64, len(tokens)),
	}
	for i, tok := range tokens {
		v.indices[tok] = int32(i)
		v.counts[i] = freq[tok]
	}
	return v
}

// Index returns the index of token and whether the token is in-vocabulary.
func (v *Vocabulary) Index(token string) (int32, bool) {
	id, ok := v.indices[token]
	return id, ok
}

// Token returns the token at index id. id must be in [0, Len()).
func (v *Vocabulary) Token(id int32) string { return v.tokens[id] }

// Count returns the corpus occurrence count of the token at index id.
func (v *Vocabulary) Count(id int32) int64 { return v.counts[id] }

// Len returns the number of tokens in the vocabulary.
func (v *Vocabulary) Len() int { return len(v.tokens) }

// Tokens returns the tokens in index order. The caller must not modify the
// returned slice.
func (v *Vocabulary) Tokens() []string { return v.tokens }
