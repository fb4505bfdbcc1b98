package score

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadDistribution reads a reference letter distribution from a YAML file
// mapping letters to expected percentages:
//
//	A: 8.167
//	B: 1.492
//	...
//
// All 26 letters must be present and the percentages must sum to roughly
// 100.
func LoadDistribution(path string) (Distribution, error) {
	var dist Distribution

	data, err := os.ReadFile(path)
	if err != nil {
		return dist, fmt.Errorf("read language table %s: %w", path, err)
	}

	raw := make(map[string]float64)
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return dist, fmt.Errorf("parse language table %s: %w", path, err)
	}

	seen := 0
	for letter, pct := range raw {
		if len(letter) != 1 || letter[0] < 'A' || letter[0] > 'Z' {
			return dist, fmt.Errorf("language table %s: invalid letter %q", path, letter)
		}
		if pct < 0 {
			return dist, fmt.Errorf("language table %s: negative frequency for %s", path, letter)
		}
		dist[letter[0]-'A'] = pct
		seen++
	}
	if seen != len(dist) {
		return dist, fmt.Errorf("language table %s: expected %d letters, got %d", path, len(dist), seen)
	}

	var total float64
	for _, pct := range dist {
		total += pct
	}
	if total < 90 || total > 110 {
		return dist, fmt.Errorf("language table %s: frequencies sum to %.2f, expected ~100", path, total)
	}

	return dist, nil
}
