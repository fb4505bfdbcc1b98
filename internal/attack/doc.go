// Package attack recovers plaintext and keys from two-stage classical
// ciphertext. The transposition inverter lazily enumerates every candidate
// column permutation, shift recovery derives the best (or forced)
// substitution key for each reconstruction, and the engine fans the
// independent branches out across a worker pool before ranking the merged
// candidates deterministically.
//
// Two attack modes are supported:
//
//   - Frequency: ciphertext only. Every (column count, permutation, key
//     length) branch is scored with the chi-squared statistic and the ten
//     best candidates are returned in ascending score order.
//   - Known plaintext: a matched plaintext/ciphertext fragment. Each branch
//     contributes at most one candidate, and only when the periodically
//     extended key reproduces the known fragment exactly.
//
// Column counts above MaxPermutedColumns contribute no candidates; the
// factorial permutation space makes larger counts a documented capability
// limit rather than an error.
package attack
