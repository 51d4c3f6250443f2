// Package corpus loads parallel-corpus XML files with human-labeled word
// alignments into in-memory sentence records.
package corpus

// SentencePair holds the whitespace-split tokens of one aligned sentence,
// source language and target language. Token order encodes word order;
// tokens may repeat.
type SentencePair struct {
	Source []string
	Target []string
}

// Link is one word correspondence between a source and a target token
// position. Positions are 1-indexed into the associated SentencePair.
type Link struct {
	Source int
	Target int
}

// LabeledAlignment holds the gold alignment annotations for one sentence.
// Sure links are unambiguous correspondences; Possible links are permitted,
// non-penalized ones. The two sets are stored independently; Sure is not
// guaranteed to be a subset of Possible in real annotation data.
type LabeledAlignment struct {
	Sure     []Link
	Possible []Link
}
