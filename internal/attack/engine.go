package attack

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/RowanDark/scytale/internal/alphabet"
	"github.com/RowanDark/scytale/internal/score"
	"github.com/RowanDark/scytale/internal/vigenere"
)

const (
	// DefaultMaxColumns is the default ceiling for the column-count search.
	DefaultMaxColumns = 8

	// DefaultMaxKeyLength is the default ceiling for assumed substitution
	// key lengths in the frequency attack.
	DefaultMaxKeyLength = 20

	defaultConcurrency = 4

	// maxFrequencyCandidates is how many ranked candidates the frequency
	// attack returns.
	maxFrequencyCandidates = 10
)

// Config controls an attack Engine. Zero fields fall back to defaults.
type Config struct {
	// MaxColumns bounds the column counts tried. Counts above
	// MaxPermutedColumns never produce candidates regardless of this value.
	MaxColumns int

	// MaxKeyLength bounds the assumed key lengths in the frequency attack.
	MaxKeyLength int

	// Concurrency is the number of branch workers.
	Concurrency int

	// Scorer judges candidate decryptions. Defaults to the English table.
	Scorer *score.Scorer

	// Logger receives progress events.
	Logger *slog.Logger
}

// Engine drives the outer search over column counts and key lengths and
// aggregates candidates. Each invocation is reproducible from its inputs
// alone; no state is shared between calls.
type Engine struct {
	maxColumns   int
	maxKeyLength int
	concurrency  int
	scorer       score.Scorer
	logger       *slog.Logger
}

// NewEngine builds an engine from the config, applying defaults for unset
// fields.
func NewEngine(cfg Config) *Engine {
	if cfg.MaxColumns <= 0 {
		cfg.MaxColumns = DefaultMaxColumns
	}
	if cfg.MaxKeyLength <= 0 {
		cfg.MaxKeyLength = DefaultMaxKeyLength
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	scorer := score.Default()
	if cfg.Scorer != nil {
		scorer = *cfg.Scorer
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stdout, nil))
	}
	return &Engine{
		maxColumns:   cfg.MaxColumns,
		maxKeyLength: cfg.MaxKeyLength,
		concurrency:  cfg.Concurrency,
		scorer:       scorer,
		logger:       logger,
	}
}

// branch is one independent unit of work: a reconstructed intermediate text
// for a (column count, permutation) pair.
type branch struct {
	cols int
	perm []int
	text alphabet.Text
}

// produceBranches streams every inversion of the ciphertext for every
// column count in range onto the jobs channel. The channel is closed when
// the space is exhausted or the context is cancelled.
func (e *Engine) produceBranches(ctx context.Context, ciphertext alphabet.Text, jobs chan<- branch) {
	defer close(jobs)
	n := len(ciphertext)
	for cols := 2; cols <= e.maxColumns && cols < n; cols++ {
		inverter := NewInverter(ciphertext, cols)
		for {
			inv, ok := inverter.Next()
			if !ok {
				break
			}
			select {
			case jobs <- branch{cols: cols, perm: inv.Perm, text: inv.Text}:
			case <-ctx.Done():
				return
			}
		}
	}
}

// collect fans workers out over the branch stream and gathers their
// candidates. The per-branch work function must be pure.
func (e *Engine) collect(ctx context.Context, jobs <-chan branch, work func(branch) []Candidate) []Candidate {
	results := make(chan Candidate, e.concurrency*2)

	var wg sync.WaitGroup
	for i := 0; i < e.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				for _, candidate := range work(job) {
					select {
					case results <- candidate:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var all []Candidate
	for candidate := range results {
		all = append(all, candidate)
	}
	return all
}

// AttackFrequency runs the blind frequency attack: every (column count,
// permutation, key length) branch is tried, each candidate decryption is
// scored with the chi-squared statistic, and the ten best candidates are
// returned in ascending score order. The search is exhaustive up to the
// configured ceilings; callers needing a cost bound should cancel ctx.
func (e *Engine) AttackFrequency(ctx context.Context, ciphertext alphabet.Text) ([]Candidate, error) {
	start := time.Now()
	e.logger.Info("frequency attack started",
		slog.Int("ciphertext_len", len(ciphertext)),
		slog.Int("max_columns", e.maxColumns),
		slog.Int("max_key_length", e.maxKeyLength))

	jobs := make(chan branch, e.concurrency*2)
	go e.produceBranches(ctx, ciphertext, jobs)

	all := e.collect(ctx, jobs, func(job branch) []Candidate {
		maxKeyLen := e.maxKeyLength
		if len(job.text) < maxKeyLen {
			maxKeyLen = len(job.text)
		}
		candidates := make([]Candidate, 0, maxKeyLen)
		for keyLen := 1; keyLen <= maxKeyLen; keyLen++ {
			key := RecoverKey(job.text, keyLen, e.scorer)
			plaintext := vigenere.Decrypt(job.text, key)
			candidates = append(candidates, Candidate{
				Columns:   job.cols,
				Perm:      job.perm,
				KeyLength: keyLen,
				Key:       key.String(),
				Plaintext: plaintext.String(),
				Score:     e.scorer.ChiSquared(plaintext),
			})
		}
		return candidates
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rankByScore(all)
	if len(all) > maxFrequencyCandidates {
		all = all[:maxFrequencyCandidates]
	}

	e.logger.Info("frequency attack completed",
		slog.Int("candidates", len(all)),
		slog.Duration("elapsed", time.Since(start)))
	return all, nil
}

// AttackKnownPlaintext runs the known-plaintext attack: for every (column
// count, permutation) branch the per-position shifts forced by the known
// fragment are derived, periodically extended, and validated against the
// full decryption. Every validated candidate is returned; more than one can
// validate for short fragments, and callers must disambiguate.
func (e *Engine) AttackKnownPlaintext(ctx context.Context, knownPlain, knownCipher alphabet.Text) ([]Candidate, error) {
	if len(knownPlain) == 0 {
		return nil, fmt.Errorf("known plaintext is required")
	}

	start := time.Now()
	e.logger.Info("known-plaintext attack started",
		slog.Int("known_len", len(knownPlain)),
		slog.Int("ciphertext_len", len(knownCipher)),
		slog.Int("max_columns", e.maxColumns))

	jobs := make(chan branch, e.concurrency*2)
	go e.produceBranches(ctx, knownCipher, jobs)

	all := e.collect(ctx, jobs, func(job branch) []Candidate {
		key, plaintext, ok := RecoverKnown(job.text, knownPlain)
		if !ok {
			return nil
		}
		return []Candidate{{
			Columns:   job.cols,
			Perm:      job.perm,
			KeyLength: len(key),
			Key:       key.String(),
			Plaintext: plaintext.String(),
			Validated: true,
		}}
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rankByBranch(all)

	e.logger.Info("known-plaintext attack completed",
		slog.Int("candidates", len(all)),
		slog.Duration("elapsed", time.Since(start)))
	return all, nil
}

// Frequency runs a frequency attack with a default engine bounded by
// maxCols and maxKeyLen.
func Frequency(ctx context.Context, ciphertext alphabet.Text, maxCols, maxKeyLen int) ([]Candidate, error) {
	engine := NewEngine(Config{MaxColumns: maxCols, MaxKeyLength: maxKeyLen})
	return engine.AttackFrequency(ctx, ciphertext)
}

// KnownPlaintext runs a known-plaintext attack with a default engine
// bounded by maxCols.
func KnownPlaintext(ctx context.Context, knownPlain, knownCipher alphabet.Text, maxCols int) ([]Candidate, error) {
	engine := NewEngine(Config{MaxColumns: maxCols})
	return engine.AttackKnownPlaintext(ctx, knownPlain, knownCipher)
}
