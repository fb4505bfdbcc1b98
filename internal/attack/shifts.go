package attack

import (
	"math"

	"github.com/RowanDark/scytale/internal/alphabet"
	"github.com/RowanDark/scytale/internal/score"
	"github.com/RowanDark/scytale/internal/vigenere"
)

// bestShift tries all 26 shifts on the subsequence and returns the one whose
// decryption fits the reference distribution best.
func bestShift(subseq alphabet.Text, scorer score.Scorer) byte {
	var best byte
	bestScore := math.Inf(1)
	buf := make(alphabet.Text, len(subseq))
	for shift := byte(0); shift < alphabet.Size; shift++ {
		for i, v := range subseq {
			buf[i] = (v + alphabet.Size - shift) % alphabet.Size
		}
		if s := scorer.ChiSquared(buf); s < bestScore {
			bestScore = s
			best = shift
		}
	}
	return best
}

// RecoverKey recovers a substitution key of the assumed length from an
// intermediate text by frequency analysis: position p of the key is the
// shift under which the subsequence of characters at positions ≡ p (mod
// keyLen) best approximates the reference distribution.
func RecoverKey(text alphabet.Text, keyLen int, scorer score.Scorer) alphabet.Text {
	key := make(alphabet.Text, keyLen)
	subseq := make(alphabet.Text, 0, (len(text)+keyLen-1)/keyLen)
	for pos := 0; pos < keyLen; pos++ {
		subseq = subseq[:0]
		for i := pos; i < len(text); i += keyLen {
			subseq = append(subseq, text[i])
		}
		key[pos] = bestShift(subseq, scorer)
	}
	return key
}

// deriveShifts computes the per-position shift forced by a known plaintext
// prefix of the intermediate text.
func deriveShifts(intermediate, known alphabet.Text) []byte {
	shifts := make([]byte, len(known))
	for i, p := range known {
		shifts[i] = (intermediate[i] + alphabet.Size - p) % alphabet.Size
	}
	return shifts
}

// minimalPeriod returns the smallest P >= 1 such that shifts[i] equals
// shifts[i mod P] for every derived position. Preferring the smallest
// period is a policy choice (shortest key wins); an adversarially short
// fragment can satisfy several periods.
func minimalPeriod(shifts []byte) int {
	for p := 1; p < len(shifts); p++ {
		ok := true
		for i := range shifts {
			if shifts[i] != shifts[i%p] {
				ok = false
				break
			}
		}
		if ok {
			return p
		}
	}
	return len(shifts)
}

// RecoverKnown derives the substitution key forced by a known plaintext
// prefix of the intermediate text, extends it periodically, and accepts the
// result only when the full decryption reproduces the known prefix exactly.
// It reports false when the intermediate is shorter than the prefix or when
// the periodicity assumption does not hold.
func RecoverKnown(intermediate, known alphabet.Text) (key, plaintext alphabet.Text, ok bool) {
	if len(known) == 0 || len(intermediate) < len(known) {
		return nil, nil, false
	}

	shifts := deriveShifts(intermediate, known)
	period := minimalPeriod(shifts)
	key = alphabet.Text(shifts[:period]).Clone()

	plaintext = vigenere.Decrypt(intermediate, key)
	for i, p := range known {
		if plaintext[i] != p {
			return nil, nil, false
		}
	}
	return key, plaintext, true
}
