package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/RowanDark/scytale/internal/alphabet"
	"github.com/RowanDark/scytale/internal/cipher"
)

// readText resolves the input text for a transform command from either a
// --text literal or an --in file.
func readText(literal, path string) (alphabet.Text, error) {
	literal = strings.TrimSpace(literal)
	path = strings.TrimSpace(path)
	if literal != "" && path != "" {
		return nil, fmt.Errorf("--text and --in are mutually exclusive")
	}
	if literal != "" {
		return alphabet.Normalize(literal), nil
	}
	if path == "" {
		return nil, fmt.Errorf("--text or --in must be provided")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return alphabet.Normalize(string(data)), nil
}

func writeText(path string, text alphabet.Text) error {
	if strings.TrimSpace(path) == "" {
		fmt.Println(text.String())
		return nil
	}
	if err := os.WriteFile(path, []byte(text.String()+"\n"), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func runEncrypt(args []string) int {
	fs := flag.NewFlagSet("encrypt", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	text := fs.String("text", "", "plaintext to encrypt")
	input := fs.String("in", "", "path to a plaintext file")
	subKey := fs.String("sub-key", "", "substitution key (at least 10 letters)")
	transKey := fs.String("trans-key", "", "transposition key (at least 2 letters)")
	output := fs.String("out", "", "path to write the ciphertext (default stdout)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	plain, err := readText(*text, *input)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	ciphertext, err := cipher.Encode(plain, alphabet.Normalize(*subKey), alphabet.Normalize(*transKey))
	if err != nil {
		fmt.Fprintf(os.Stderr, "encrypt: %v\n", err)
		return 1
	}
	if err := writeText(*output, ciphertext); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runDecrypt(args []string) int {
	fs := flag.NewFlagSet("decrypt", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	text := fs.String("text", "", "ciphertext to decrypt")
	input := fs.String("in", "", "path to a ciphertext file")
	subKey := fs.String("sub-key", "", "substitution key (at least 10 letters)")
	transKey := fs.String("trans-key", "", "transposition key (at least 2 letters)")
	output := fs.String("out", "", "path to write the plaintext (default stdout)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	ciphertext, err := readText(*text, *input)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	plain, err := cipher.Decode(ciphertext, alphabet.Normalize(*subKey), alphabet.Normalize(*transKey))
	if err != nil {
		fmt.Fprintf(os.Stderr, "decrypt: %v\n", err)
		return 1
	}
	if err := writeText(*output, plain); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
