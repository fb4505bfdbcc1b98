package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/RowanDark/scytale/internal/alphabet"
	"github.com/RowanDark/scytale/internal/attack"
	"github.com/RowanDark/scytale/internal/config"
	"github.com/RowanDark/scytale/internal/score"
)

func attackScorer(cfg config.Config, tablePath string) (score.Scorer, error) {
	path := strings.TrimSpace(tablePath)
	if path == "" {
		path = cfg.LanguageTable
	}
	if path == "" {
		return score.Default(), nil
	}
	dist, err := score.LoadDistribution(path)
	if err != nil {
		return score.Scorer{}, fmt.Errorf("load language table: %w", err)
	}
	return score.NewScorer(dist), nil
}

func candidatePath(cfg config.Config, out string) string {
	if strings.TrimSpace(out) != "" {
		return strings.TrimSpace(out)
	}
	return filepath.Join(cfg.OutputDir, "candidates.jsonl")
}

func runAttackFreq(args []string) int {
	fs := flag.NewFlagSet("attack freq", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	text := fs.String("text", "", "ciphertext to attack")
	input := fs.String("in", "", "path to a ciphertext file")
	maxColumns := fs.Int("max-columns", 0, "column counts to try (default from config)")
	maxKeyLength := fs.Int("max-key-length", 0, "key lengths to try (default from config)")
	concurrency := fs.Int("concurrency", 0, "branch workers (default from config)")
	table := fs.String("table", "", "path to a YAML letter-frequency table")
	output := fs.String("out", "", "path to write candidate JSONL (default <output_dir>/candidates.jsonl)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	ciphertext, err := readText(*text, *input)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}
	scorer, err := attackScorer(cfg, *table)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	engineCfg := attack.Config{
		MaxColumns:   cfg.Attack.MaxColumns,
		MaxKeyLength: cfg.Attack.MaxKeyLength,
		Concurrency:  cfg.Attack.Concurrency,
		Scorer:       &scorer,
		Logger:       slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}
	if *maxColumns > 0 {
		engineCfg.MaxColumns = *maxColumns
	}
	if *maxKeyLength > 0 {
		engineCfg.MaxKeyLength = *maxKeyLength
	}
	if *concurrency > 0 {
		engineCfg.Concurrency = *concurrency
	}

	engine := attack.NewEngine(engineCfg)
	candidates, err := engine.AttackFrequency(context.Background(), ciphertext)
	if err != nil {
		fmt.Fprintf(os.Stderr, "frequency attack: %v\n", err)
		return 1
	}

	outPath := candidatePath(cfg, *output)
	if err := attack.WriteJSONL(outPath, candidates); err != nil {
		fmt.Fprintf(os.Stderr, "write candidates: %v\n", err)
		return 1
	}

	if len(candidates) == 0 {
		fmt.Println("no candidates found")
		return 0
	}
	top := candidates[0]
	fmt.Printf("best candidate (score %.2f, key %s, %d columns): %s\n",
		top.Score, top.Key, top.Columns, top.Plaintext)
	fmt.Printf("wrote %d candidates to %s\n", len(candidates), outPath)
	return 0
}

func runAttackKnown(args []string) int {
	fs := flag.NewFlagSet("attack known", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	known := fs.String("known", "", "known plaintext fragment")
	text := fs.String("text", "", "ciphertext to attack")
	input := fs.String("in", "", "path to a ciphertext file")
	maxColumns := fs.Int("max-columns", 0, "column counts to try (default from config)")
	concurrency := fs.Int("concurrency", 0, "branch workers (default from config)")
	output := fs.String("out", "", "path to write candidate JSONL (default <output_dir>/candidates.jsonl)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	knownPlain := alphabet.Normalize(*known)
	if len(knownPlain) == 0 {
		fmt.Fprintln(os.Stderr, "--known must contain at least one letter")
		return 2
	}
	ciphertext, err := readText(*text, *input)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}

	engineCfg := attack.Config{
		MaxColumns:  cfg.Attack.MaxColumns,
		Concurrency: cfg.Attack.Concurrency,
		Logger:      slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}
	if *maxColumns > 0 {
		engineCfg.MaxColumns = *maxColumns
	}
	if *concurrency > 0 {
		engineCfg.Concurrency = *concurrency
	}

	engine := attack.NewEngine(engineCfg)
	candidates, err := engine.AttackKnownPlaintext(context.Background(), knownPlain, ciphertext)
	if err != nil {
		fmt.Fprintf(os.Stderr, "known-plaintext attack: %v\n", err)
		return 1
	}

	outPath := candidatePath(cfg, *output)
	if err := attack.WriteJSONL(outPath, candidates); err != nil {
		fmt.Fprintf(os.Stderr, "write candidates: %v\n", err)
		return 1
	}

	fmt.Printf("wrote %d candidates to %s\n", len(candidates), outPath)
	return 0
}
