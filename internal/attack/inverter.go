package attack

import (
	"github.com/RowanDark/scytale/internal/alphabet"
	"github.com/RowanDark/scytale/internal/columnar"
)

// MaxPermutedColumns caps the column counts the inverter will enumerate.
// The candidate space grows factorially, so counts above the cap yield no
// candidates at all.
const MaxPermutedColumns = 8

// Inversion is one way the transposition could be undone: a permutation
// assigning each contiguous ciphertext segment to an original column, and
// the row-major text that assignment reconstructs.
type Inversion struct {
	Perm []int
	Text alphabet.Text
}

// Inverter lazily enumerates every Inversion of a ciphertext for an assumed
// column count. An Inverter for a count outside [2, MaxPermutedColumns]
// produces nothing.
type Inverter struct {
	segments  []alphabet.Text
	perms     *permuter
	exhausted bool
}

// NewInverter prepares the enumeration for the given column count. The
// ciphertext is split into cols contiguous segments of ceil(len/cols)
// symbols each, matching how encryption emits columns.
func NewInverter(ciphertext alphabet.Text, cols int) *Inverter {
	if cols < 2 || cols > MaxPermutedColumns {
		return &Inverter{exhausted: true}
	}
	return &Inverter{
		segments: columnar.Split(ciphertext, cols),
		perms:    newPermuter(cols),
	}
}

// Next returns the next candidate inversion. The permutation slice is owned
// by the caller.
func (iv *Inverter) Next() (Inversion, bool) {
	if iv.exhausted {
		return Inversion{}, false
	}
	perm, ok := iv.perms.next()
	if !ok {
		iv.exhausted = true
		return Inversion{}, false
	}
	owned := make([]int, len(perm))
	copy(owned, perm)
	return Inversion{Perm: owned, Text: columnar.Reassemble(iv.segments, owned)}, true
}

// Reset rewinds the enumeration to the first permutation.
func (iv *Inverter) Reset() {
	if iv.perms == nil {
		return
	}
	iv.perms.reset()
	iv.exhausted = false
}
