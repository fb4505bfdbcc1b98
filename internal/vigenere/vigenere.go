// Package vigenere implements the polyalphabetic substitution stage: each
// position is shifted by the key symbol at the same position modulo the key
// length.
package vigenere

import "github.com/RowanDark/scytale/internal/alphabet"

// Encrypt shifts each symbol forward by the cyclically aligned key symbol.
// The key must be non-empty; key length policy is enforced at the transform
// boundary, not here.
func Encrypt(text, key alphabet.Text) alphabet.Text {
	if len(key) == 0 {
		return text.Clone()
	}
	out := make(alphabet.Text, len(text))
	for i, v := range text {
		out[i] = (v + key[i%len(key)]) % alphabet.Size
	}
	return out
}

// Decrypt reverses Encrypt under the same key.
func Decrypt(text, key alphabet.Text) alphabet.Text {
	if len(key) == 0 {
		return text.Clone()
	}
	out := make(alphabet.Text, len(text))
	for i, v := range text {
		out[i] = (v + alphabet.Size - key[i%len(key)]) % alphabet.Size
	}
	return out
}
