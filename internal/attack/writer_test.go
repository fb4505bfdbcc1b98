package attack

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestWriteJSONL(t *testing.T) {
	candidates := []Candidate{
		{
			Columns:   2,
			Perm:      []int{1, 0},
			KeyLength: 10,
			Key:       "QWERTYUIOP",
			Plaintext: "ITWASTHEBESTOFTIMES",
			Score:     58.52,
		},
		{
			Columns:   3,
			Perm:      []int{1, 0, 2},
			KeyLength: 3,
			Key:       "CAB",
			Plaintext: "MEETMEATMIDNIGHT",
			Validated: true,
		},
	}

	path := filepath.Join(t.TempDir(), "out", "candidates.jsonl")
	if err := WriteJSONL(path, candidates); err != nil {
		t.Fatalf("WriteJSONL: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer file.Close()

	var got []Candidate
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var c Candidate
		if err := json.Unmarshal(scanner.Bytes(), &c); err != nil {
			t.Fatalf("line %d: %v", len(got)+1, err)
		}
		got = append(got, c)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan output: %v", err)
	}

	if !reflect.DeepEqual(got, candidates) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, candidates)
	}
}

func TestWriteJSONLRejectsEmptyPath(t *testing.T) {
	if err := WriteJSONL("  ", nil); err == nil {
		t.Error("expected an error for a blank path")
	}
}

func TestWriteJSONLTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candidates.jsonl")
	if err := WriteJSONL(path, []Candidate{{Columns: 2}, {Columns: 3}}); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := WriteJSONL(path, []Candidate{{Columns: 4}}); err != nil {
		t.Fatalf("second write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var c Candidate
	if err := json.Unmarshal(data, &c); err != nil {
		t.Fatalf("output is not a single candidate line: %v", err)
	}
	if c.Columns != 4 {
		t.Errorf("columns = %d, want 4", c.Columns)
	}
}
