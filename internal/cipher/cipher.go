package cipher

import (
	"errors"
	"fmt"

	"github.com/RowanDark/scytale/internal/alphabet"
	"github.com/RowanDark/scytale/internal/columnar"
	"github.com/RowanDark/scytale/internal/vigenere"
)

// ErrInvalidKey indicates a key that does not meet the minimum length
// enforced at the transform boundary.
var ErrInvalidKey = errors.New("cipher: invalid key")

const (
	// MinSubstitutionKeyLen is the minimum Vigenere key length accepted by
	// Encode and Decode.
	MinSubstitutionKeyLen = 10

	// MinTranspositionKeyLen is the minimum columnar key length accepted by
	// Encode and Decode.
	MinTranspositionKeyLen = 2
)

func validateKeys(subKey, transKey alphabet.Text) error {
	if len(subKey) < MinSubstitutionKeyLen {
		return fmt.Errorf("%w: substitution key must have at least %d symbols, got %d",
			ErrInvalidKey, MinSubstitutionKeyLen, len(subKey))
	}
	if len(transKey) < MinTranspositionKeyLen {
		return fmt.Errorf("%w: transposition key must have at least %d symbols, got %d",
			ErrInvalidKey, MinTranspositionKeyLen, len(transKey))
	}
	return nil
}

// Encode applies the full two-stage encryption: Vigenere substitution under
// subKey, then columnar transposition under transKey. The plaintext must
// already be normalized.
func Encode(text, subKey, transKey alphabet.Text) (alphabet.Text, error) {
	if err := validateKeys(subKey, transKey); err != nil {
		return nil, err
	}
	intermediate := vigenere.Encrypt(text, subKey)
	return columnar.Encrypt(intermediate, transKey), nil
}

// Decode reverses Encode under the same key pair. Padding appended during
// encryption is removed, so for any normalized text
// Decode(Encode(text, kv, kc), kv, kc) reproduces text exactly.
func Decode(text, subKey, transKey alphabet.Text) (alphabet.Text, error) {
	if err := validateKeys(subKey, transKey); err != nil {
		return nil, err
	}
	intermediate := columnar.Decrypt(text, transKey)
	return vigenere.Decrypt(intermediate, subKey), nil
}
