// Package metrics scores predicted word alignments against labeled ones.
package metrics

import "github.com/example/go-alignprep/internal/corpus"

// Precision returns the numerator and denominator of alignment precision:
// the number of predicted links that are sure or possible in the reference,
// and the total number of predicted links, summed over all sentences.
// Link sets are compared with set semantics, so duplicate links collapse.
// predicted must hold one link list per reference sentence, in order.
//
// For textbook metric values sure would be a subset of possible, but real
// annotation data does not guarantee that, so both sets are consulted.
func Precision(reference []corpus.LabeledAlignment, predicted [][]corpus.Link) (intersection, total int) {
	for i, ref := range reference {
		lenient := linkSet(ref.Possible)
		for link := range linkSet(ref.Sure) {
			lenient[link] = struct{}{}
		}
		pred := linkSet(predicted[i])
		total += len(pred)
		for link := range pred {
			if _, ok := lenient[link]; ok {
				intersection++
			}
		}
	}
	return intersection, total
}

// Recall returns the numerator and denominator of alignment recall: the
// number of predicted links that are sure in the reference, and the total
// number of sure links, summed over all sentences.
func Recall(reference []corpus.LabeledAlignment, predicted [][]corpus.Link) (intersection, total int) {
	for i, ref := range reference {
		sure := linkSet(ref.Sure)
		total += len(sure)
		for link := range linkSet(predicted[i]) {
			if _, ok := sure[link]; ok {
				intersection++
			}
		}
	}
	return intersection, total
}

// AER returns the alignment error rate,
// 1 - (|predicted ∩ possible| + |predicted ∩ sure|) / (|predicted| + |sure|).
// An empty denominator yields 0.
func AER(reference []corpus.LabeledAlignment, predicted [][]corpus.Link) float64 {
	precNum, precDen := Precision(reference, predicted)
	recNum, recDen := Recall(reference, predicted)
	if precDen+recDen == 0 {
		return 0
	}
	return 1 - float64(precNum+recNum)/float64(precDen+recDen)
}

func linkSet(links []corpus.Link) map[corpus.Link]struct{} {
	set := make(map[corpus.Link]struct{}, len(links))
	for _, link := range links {
		set[link] = struct{}{}
	}
	return set
}
