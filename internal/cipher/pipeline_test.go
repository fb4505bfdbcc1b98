package cipher

import (
	"context"
	"testing"
)

func TestPipelineExecuteAndReverse(t *testing.T) {
	ctx := context.Background()
	pipeline := &Pipeline{
		Operations: []OperationConfig{
			{Name: "vigenere_encrypt", Parameters: map[string]interface{}{"key": "LONGERKEYABC"}},
			{Name: "columnar_encrypt", Parameters: map[string]interface{}{"key": "ZEBRA"}},
		},
		Reversible: true,
	}

	ct, err := pipeline.Execute(ctx, []byte("THISISATEST"))
	if err != nil {
		t.Fatalf("pipeline execute failed: %v", err)
	}

	reversed, err := pipeline.Reverse()
	if err != nil {
		t.Fatalf("pipeline reverse failed: %v", err)
	}
	pt, err := reversed.Execute(ctx, ct)
	if err != nil {
		t.Fatalf("reversed pipeline execute failed: %v", err)
	}
	if string(pt) != "THISISATEST" {
		t.Errorf("pipeline round trip = %q, want %q", string(pt), "THISISATEST")
	}
}

func TestPipelineMatchesDirectEncode(t *testing.T) {
	ctx := context.Background()
	pipeline := &Pipeline{
		Operations: []OperationConfig{
			{Name: "vigenere_encrypt", Parameters: map[string]interface{}{"key": "LONGERKEYABC"}},
			{Name: "columnar_encrypt", Parameters: map[string]interface{}{"key": "ZEBRA"}},
		},
	}
	staged, err := pipeline.Execute(ctx, []byte("THISISATEST"))
	if err != nil {
		t.Fatalf("pipeline execute failed: %v", err)
	}

	combined, _ := GetOperation("classical_encrypt")
	direct, err := combined.Execute(ctx, []byte("THISISATEST"), map[string]interface{}{
		"substitution_key":  "LONGERKEYABC",
		"transposition_key": "ZEBRA",
	})
	if err != nil {
		t.Fatalf("classical_encrypt failed: %v", err)
	}
	if string(staged) != string(direct) {
		t.Errorf("staged pipeline = %q, classical_encrypt = %q", string(staged), string(direct))
	}
}

func TestPipelineUnknownOperation(t *testing.T) {
	pipeline := &Pipeline{
		Operations: []OperationConfig{{Name: "rot13_encrypt"}},
	}
	if _, err := pipeline.Execute(context.Background(), []byte("TEST")); err == nil {
		t.Error("expected an error for an unknown operation")
	}
}

func TestPipelineNotReversible(t *testing.T) {
	pipeline := &Pipeline{
		Operations: []OperationConfig{{Name: "vigenere_encrypt"}},
		Reversible: false,
	}
	if _, err := pipeline.Reverse(); err == nil {
		t.Error("expected an error reversing a non-reversible pipeline")
	}
}
