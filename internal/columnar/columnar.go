// Package columnar implements the transposition stage. The key determines a
// column read order; encryption writes the text row-major into a padded
// rectangle and reads it out column by column in that order.
package columnar

import (
	"sort"

	"github.com/RowanDark/scytale/internal/alphabet"
)

// empty marks an unfilled matrix cell during reassembly. It is outside the
// residue range so it can never collide with a real symbol.
const empty byte = 0xFF

// Order returns the original column indices in the order the columns are
// read. Indices are stable-sorted by (key symbol, original index), so equal
// key symbols keep their left-to-right order. "ZEBRA" yields [4 2 1 3 0].
func Order(key alphabet.Text) []int {
	order := make([]int, len(key))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		if key[order[i]] != key[order[j]] {
			return key[order[i]] < key[order[j]]
		}
		return order[i] < order[j]
	})
	return order
}

// Rows returns the number of matrix rows needed for n symbols across cols
// columns.
func Rows(n, cols int) int {
	return (n + cols - 1) / cols
}

// Encrypt pads the text with the filler symbol to a full rows x len(key)
// rectangle, fills it row-major, and emits each column top-to-bottom in the
// order given by Order(key).
func Encrypt(text, key alphabet.Text) alphabet.Text {
	cols := len(key)
	rows := Rows(len(text), cols)

	padded := make(alphabet.Text, rows*cols)
	copy(padded, text)
	for i := len(text); i < len(padded); i++ {
		padded[i] = alphabet.Filler
	}

	out := make(alphabet.Text, 0, len(padded))
	for _, col := range Order(key) {
		for r := 0; r < rows; r++ {
			out = append(out, padded[r*cols+col])
		}
	}
	return out
}

// Decrypt splits the ciphertext into len(key) contiguous segments, scatters
// segment j back into column Order(key)[j], reads the matrix row-major, and
// strips the trailing filler. Filler is only ever appended during Encrypt,
// so a trailing strip exactly reverses the padding.
func Decrypt(text, key alphabet.Text) alphabet.Text {
	cols := len(key)
	segments := Split(text, cols)
	return Reassemble(segments, Order(key))
}

// Split divides the text into cols contiguous segments of Rows(len, cols)
// symbols each; the final segment may be short when the length is not a
// multiple of the row count.
func Split(text alphabet.Text, cols int) []alphabet.Text {
	rows := Rows(len(text), cols)
	segments := make([]alphabet.Text, cols)
	for i := 0; i < cols; i++ {
		lo := i * rows
		hi := lo + rows
		if lo > len(text) {
			lo = len(text)
		}
		if hi > len(text) {
			hi = len(text)
		}
		segments[i] = text[lo:hi]
	}
	return segments
}

// Reassemble places segment j into column perm[j] top-to-bottom, reads the
// matrix row-major, and trims trailing filler symbols. Cells left unfilled
// by a short final segment are skipped. Reassemble is shared by Decrypt and
// the transposition inverter, which feeds it every candidate permutation.
func Reassemble(segments []alphabet.Text, perm []int) alphabet.Text {
	cols := len(segments)
	rows := 0
	for _, seg := range segments {
		if len(seg) > rows {
			rows = len(seg)
		}
	}

	matrix := make([]byte, rows*cols)
	for i := range matrix {
		matrix[i] = empty
	}
	for j, col := range perm {
		for r, v := range segments[j] {
			matrix[r*cols+col] = v
		}
	}

	out := make(alphabet.Text, 0, rows*cols)
	for _, v := range matrix {
		if v != empty {
			out = append(out, v)
		}
	}
	return TrimFiller(out)
}

// TrimFiller removes trailing filler symbols.
func TrimFiller(text alphabet.Text) alphabet.Text {
	end := len(text)
	for end > 0 && text[end-1] == alphabet.Filler {
		end--
	}
	return text[:end]
}
