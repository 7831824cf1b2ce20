package similarity

import "math"

const (
	// MaxOrder is the highest n-gram order BLEU looks at.
	MaxOrder = 4

	// smoothingEpsilon replaces a zero matched count at any order, so a short
	// answer that shares words but no 3- or 4-grams still gets a nonzero score.
	smoothingEpsilon = 0.1
)

// BLEU returns the sentence-level BLEU score of candidate against reference.
//
// Orders 1..N are used with N = min(MaxOrder, len(candidate)). Each order's
// precision is the clipped n-gram overlap divided by the candidate's n-gram
// count; an order with zero overlap uses smoothingEpsilon as its numerator.
// The precisions are combined by an equally weighted geometric mean and
// multiplied by the brevity penalty. No unigram overlap at all scores 0, as
// does an empty candidate.
func BLEU(candidate, reference []string) float64 {
	if len(candidate) == 0 || len(reference) == 0 {
		return 0
	}
	order := min(MaxOrder, len(candidate))

	logSum := 0.0
	for n := 1; n <= order; n++ {
		total := ngramTotal(len(candidate), n)
		matched := float64(clippedOverlap(ngramCounts(candidate, n), ngramCounts(reference, n)))
		if matched == 0 {
			if n == 1 {
				return 0
			}
			matched = smoothingEpsilon
		}
		logSum += math.Log(matched / float64(total))
	}

	score := BrevityPenalty(len(candidate), len(reference)) * math.Exp(logSum/float64(order))
	return clamp01(score)
}

// BrevityPenalty is 1 when the candidate is at least as long as the reference
// and exp(1 - r/c) otherwise. A zero-length candidate gets 0.
func BrevityPenalty(candidateLen, referenceLen int) float64 {
	if candidateLen == 0 {
		return 0
	}
	if candidateLen >= referenceLen {
		return 1
	}
	return math.Exp(1 - float64(referenceLen)/float64(candidateLen))
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
