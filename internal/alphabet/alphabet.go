// Package alphabet models the 26-letter cipher alphabet. Every letter is
// carried as an integer residue in [0, 26) so the substitution and
// transposition stages can do plain modular arithmetic without re-parsing
// characters at each step.
package alphabet

import "strings"

// Size is the number of symbols in the alphabet.
const Size = 26

// Filler is the residue appended when padding text to a full transposition
// rectangle ('X').
const Filler byte = 'X' - 'A'

// Text is an ordered sequence of alphabet residues. Every element is
// expected to be a valid residue in [0, Size).
type Text []byte

// Normalize folds the input to uppercase and drops every rune that is not a
// letter, returning the surviving letters as residues. This is the only
// entry point that accepts raw user text; everything downstream assumes its
// inputs have already been through it.
func Normalize(s string) Text {
	out := make(Text, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			out = append(out, byte(r-'A'))
		case r >= 'a' && r <= 'z':
			out = append(out, byte(r-'a'))
		}
	}
	return out
}

// String renders the text as uppercase letters.
func (t Text) String() string {
	var b strings.Builder
	b.Grow(len(t))
	for _, v := range t {
		b.WriteByte('A' + v)
	}
	return b.String()
}

// Clone returns an independent copy of the text.
func (t Text) Clone() Text {
	if t == nil {
		return nil
	}
	out := make(Text, len(t))
	copy(out, t)
	return out
}

// Valid reports whether every element is a residue in [0, Size).
func (t Text) Valid() bool {
	for _, v := range t {
		if v >= Size {
			return false
		}
	}
	return true
}
