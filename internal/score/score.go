// Package score judges how closely a text matches a reference letter
// distribution. The chi-squared statistic it computes is the sole oracle the
// attack engine uses to decide whether a candidate decryption looks like
// natural language, so lower must always mean more language-like.
package score

import (
	"math"

	"github.com/RowanDark/scytale/internal/alphabet"
)

// Distribution holds the expected percentage frequency of each letter,
// indexed by residue.
type Distribution [alphabet.Size]float64

// English is the reference distribution for English text.
var English = Distribution{
	8.167, 1.492, 2.782, 4.253, 12.702, 2.228, 2.015, 6.094, 6.966,
	0.153, 0.772, 4.025, 2.406, 6.749, 7.507, 1.929, 0.095, 5.987,
	6.327, 9.056, 2.758, 0.978, 2.360, 0.150, 1.974, 0.074,
}

// Scorer computes goodness-of-fit scores against a fixed distribution.
// The zero value is not usable; construct one with NewScorer or Default.
type Scorer struct {
	dist Distribution
}

// NewScorer returns a scorer for the provided distribution.
func NewScorer(dist Distribution) Scorer {
	return Scorer{dist: dist}
}

// Default returns a scorer for English.
func Default() Scorer {
	return NewScorer(English)
}

// ChiSquared returns the chi-squared statistic of the text against the
// scorer's distribution; lower is better. Empty text scores +Inf so it can
// never win a comparison.
func (s Scorer) ChiSquared(text alphabet.Text) float64 {
	n := len(text)
	if n == 0 {
		return math.Inf(1)
	}

	var counts [alphabet.Size]int
	for _, v := range text {
		counts[v]++
	}

	var total float64
	for i := 0; i < alphabet.Size; i++ {
		expected := s.dist[i] * float64(n) / 100.0
		if expected <= 0 {
			continue
		}
		diff := float64(counts[i]) - expected
		total += diff * diff / expected
	}
	return total
}
