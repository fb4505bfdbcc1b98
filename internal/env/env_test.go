package env

import (
	"fmt"
	"strings"
	"testing"
)

func TestLookupPrefersNewKey(t *testing.T) {
	t.Setenv("SCYTALE_OUT", "/tmp/new")
	t.Setenv("CIPHER_OUT", "/tmp/old")

	got, ok := Lookup("SCYTALE_OUT", "CIPHER_OUT")
	if !ok {
		t.Fatal("expected lookup to succeed")
	}
	if got != "/tmp/new" {
		t.Fatalf("expected %q, got %q", "/tmp/new", got)
	}
}

func TestLookupFallsBackWithWarning(t *testing.T) {
	ResetWarningsForTesting()
	var warnings []string
	restore := SetWarnLoggerForTesting(func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	})
	defer restore()

	t.Setenv("CIPHER_OUT", "/tmp/legacy")

	for i := 0; i < 3; i++ {
		got, ok := Lookup("SCYTALE_OUT", "CIPHER_OUT")
		if !ok {
			t.Fatal("expected legacy lookup to succeed")
		}
		if got != "/tmp/legacy" {
			t.Fatalf("expected %q, got %q", "/tmp/legacy", got)
		}
	}

	if len(warnings) != 1 {
		t.Fatalf("expected exactly one warning, got %d", len(warnings))
	}
	if !strings.Contains(warnings[0], "CIPHER_OUT is deprecated") {
		t.Fatalf("unexpected warning: %q", warnings[0])
	}
}

func TestLookupMissing(t *testing.T) {
	if _, ok := Lookup("SCYTALE_DOES_NOT_EXIST", "CIPHER_DOES_NOT_EXIST"); ok {
		t.Fatal("expected lookup to fail")
	}
}
