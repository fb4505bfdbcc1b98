package columnar

import (
	"testing"

	"github.com/RowanDark/scytale/internal/alphabet"
)

func TestOrder(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want []int
	}{
		{"zebra", "ZEBRA", []int{4, 2, 1, 3, 0}},
		{"sorted key is identity", "ABC", []int{0, 1, 2}},
		{"equal symbols break ties by index", "AAB", []int{0, 1, 2}},
		{"repeated symbols", "BANANA", []int{1, 3, 5, 0, 2, 4}},
		{"two columns", "BA", []int{1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Order(alphabet.Normalize(tt.key))
			if len(got) != len(tt.want) {
				t.Fatalf("Order(%q) = %v, want %v", tt.key, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Order(%q) = %v, want %v", tt.key, got, tt.want)
				}
			}
		})
	}
}

func TestOrderIsPermutation(t *testing.T) {
	for _, key := range []string{"ZEBRAFOXTROT", "AAAAA", "QQAZZ"} {
		order := Order(alphabet.Normalize(key))
		seen := make(map[int]bool, len(order))
		for _, idx := range order {
			if idx < 0 || idx >= len(order) || seen[idx] {
				t.Fatalf("Order(%q) = %v is not a permutation", key, order)
			}
			seen[idx] = true
		}
	}
}

func TestEncrypt(t *testing.T) {
	// "ABCDE" under key "BA": rows are AB/CD/EX, column 1 is read first.
	got := Encrypt(alphabet.Normalize("ABCDE"), alphabet.Normalize("BA"))
	if got.String() != "BDXACE" {
		t.Fatalf("Encrypt = %q, want %q", got.String(), "BDXACE")
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		text string
		key  string
	}{
		{"exact rectangle", "ABCDEF", "CAB"},
		{"needs padding", "ABCDEFG", "ZEBRA"},
		{"single row", "AB", "ZEBRA"},
		{"repeated key symbols", "THEQUICKBROWNFOG", "BANANA"},
		{"empty text", "", "KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pt := alphabet.Normalize(tt.text)
			key := alphabet.Normalize(tt.key)
			got := Decrypt(Encrypt(pt, key), key)
			if got.String() != pt.String() {
				t.Errorf("round trip of %q under %q = %q", tt.text, tt.key, got.String())
			}
		})
	}
}

func TestSplit(t *testing.T) {
	segments := Split(alphabet.Normalize("ABCDEFG"), 3)
	want := []string{"ABC", "DEF", "G"}
	if len(segments) != len(want) {
		t.Fatalf("Split produced %d segments, want %d", len(segments), len(want))
	}
	for i, seg := range segments {
		if seg.String() != want[i] {
			t.Errorf("segment %d = %q, want %q", i, seg.String(), want[i])
		}
	}
}

func TestReassembleShortSegment(t *testing.T) {
	// Uneven split: the unfilled cells must be skipped, not rendered.
	segments := Split(alphabet.Normalize("ABCDEFG"), 3)
	got := Reassemble(segments, []int{0, 1, 2})
	if got.String() != "ADGBECF" {
		t.Fatalf("Reassemble = %q, want %q", got.String(), "ADGBECF")
	}
}

func TestTrimFiller(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"trailing filler removed", "HELLOXX", "HELLO"},
		{"interior filler kept", "XRAYX", "XRAY"},
		{"no filler", "HELLO", "HELLO"},
		{"all filler", "XXXX", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrimFiller(alphabet.Normalize(tt.text))
			if got.String() != tt.want {
				t.Errorf("TrimFiller(%q) = %q, want %q", tt.text, got.String(), tt.want)
			}
		})
	}
}
