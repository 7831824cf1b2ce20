package similarity

import (
	"fmt"
	"math"
)

// Scores is the score set reported for one answer pair. Every field is in
// [0, 1]; ROUGE fields are F1 values.
type Scores struct {
	BLEU   float64 `json:"bleu"`
	Rouge1 float64 `json:"rouge-1"`
	Rouge2 float64 `json:"rouge-2"`
	RougeL float64 `json:"rouge-l"`
}

// Compute tokenizes both texts once and scores candidate against reference.
func Compute(candidate, reference string) Scores {
	return ComputeTokens(Tokenize(candidate), Tokenize(reference))
}

// ComputeTokens scores already tokenized sequences.
func ComputeTokens(candidate, reference []string) Scores {
	r := ROUGE(candidate, reference)
	return Scores{
		BLEU:   BLEU(candidate, reference),
		Rouge1: r.Rouge1.F1,
		Rouge2: r.Rouge2.F1,
		RougeL: r.RougeL.F1,
	}
}

// Check reports the first score that is not a finite value in [0, 1].
func (s Scores) Check() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"bleu", s.BLEU},
		{"rouge-1", s.Rouge1},
		{"rouge-2", s.Rouge2},
		{"rouge-l", s.RougeL},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) || f.v < 0 || f.v > 1 {
			return fmt.Errorf("%s out of range: %v", f.name, f.v)
		}
	}
	return nil
}

// Rounded returns a copy with every score rounded to the given number of
// decimal places.
func (s Scores) Rounded(places int) Scores {
	return Scores{
		BLEU:   round(s.BLEU, places),
		Rouge1: round(s.Rouge1, places),
		Rouge2: round(s.Rouge2, places),
		RougeL: round(s.RougeL, places),
	}
}

func (p PRF) Rounded(places int) PRF {
	return PRF{
		Precision: round(p.Precision, places),
		Recall:    round(p.Recall, places),
		F1:        round(p.F1, places),
	}
}

func (r RougeScores) Rounded(places int) RougeScores {
	return RougeScores{
		Rouge1: r.Rouge1.Rounded(places),
		Rouge2: r.Rouge2.Rounded(places),
		RougeL: r.RougeL.Rounded(places),
	}
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
