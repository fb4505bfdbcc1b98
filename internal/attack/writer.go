package attack

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteJSONL persists candidates to a JSON Lines file at the provided path.
// Each candidate is encoded on its own line so the output can be streamed
// and diffed with the rest of the tooling.
func WriteJSONL(path string, candidates []Candidate) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("output path is required")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open candidate output: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	encoder := json.NewEncoder(writer)
	for _, candidate := range candidates {
		if err := encoder.Encode(candidate); err != nil {
			return fmt.Errorf("encode candidate: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush candidate output: %w", err)
	}
	return nil
}
