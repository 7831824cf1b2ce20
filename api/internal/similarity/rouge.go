package similarity

import "slices"

// PRF holds precision, recall and their harmonic mean, each in [0, 1].
type PRF struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
}

// RougeScores is the full ROUGE breakdown for one comparison.
type RougeScores struct {
	Rouge1 PRF `json:"rouge-1"`
	Rouge2 PRF `json:"rouge-2"`
	RougeL PRF `json:"rouge-l"`
}

// ROUGE computes ROUGE-1, ROUGE-2 and ROUGE-L of candidate against reference.
func ROUGE(candidate, reference []string) RougeScores {
	return RougeScores{
		Rouge1: RougeN(candidate, reference, 1),
		Rouge2: RougeN(candidate, reference, 2),
		RougeL: RougeL(candidate, reference),
	}
}

// RougeN scores clipped n-gram overlap. Recall divides by the reference
// n-gram count and precision by the candidate's; either is 0 when its
// denominator is 0. When both sequences are too short to hold a single
// n-gram the score falls back to exact sequence equality.
func RougeN(candidate, reference []string, n int) PRF {
	if len(candidate) < n && len(reference) < n {
		if len(candidate) > 0 && slices.Equal(candidate, reference) {
			return PRF{Precision: 1, Recall: 1, F1: 1}
		}
		return PRF{}
	}
	overlap := clippedOverlap(ngramCounts(candidate, n), ngramCounts(reference, n))
	return newPRF(overlap, ngramTotal(len(candidate), n), ngramTotal(len(reference), n))
}

// RougeL scores the longest common subsequence of the two token sequences.
func RougeL(candidate, reference []string) PRF {
	return newPRF(LCSLength(candidate, reference), len(candidate), len(reference))
}

// LCSLength returns the length of the longest common subsequence of a and b.
// It fills the usual len(a) x len(b) DP table row by row, keeping only the
// previous row.
func LCSLength(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
			} else {
				cur[j] = max(prev[j], cur[j-1])
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

func newPRF(overlap, candidateTotal, referenceTotal int) PRF {
	var p PRF
	if candidateTotal > 0 {
		p.Precision = float64(overlap) / float64(candidateTotal)
	}
	if referenceTotal > 0 {
		p.Recall = float64(overlap) / float64(referenceTotal)
	}
	p.F1 = f1(p.Precision, p.Recall)
	return p
}

func f1(precision, recall float64) float64 {
	if precision+recall == 0 {
		return 0
	}
	return clamp01(2 * precision * recall / (precision + recall))
}
