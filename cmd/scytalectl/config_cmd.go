package main

import (
	"fmt"
	"io"
	"os"

	"github.com/RowanDark/scytale/internal/config"
)

func runConfig(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "config subcommand required")
		return 2
	}

	switch args[0] {
	case "show":
		return runConfigShow()
	default:
		fmt.Fprintf(os.Stderr, "unknown config subcommand: %s\n", args[0])
		return 2
	}
}

func runConfigShow() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}

	printResolvedConfig(os.Stdout, cfg)
	return 0
}

func printResolvedConfig(out io.Writer, cfg config.Config) {
	fmt.Fprintf(out, "output_dir: %s\n", cfg.OutputDir)
	fmt.Fprintf(out, "language_table: %s\n", cfg.LanguageTable)
	fmt.Fprintln(out, "attack:")
	fmt.Fprintf(out, "  max_columns: %d\n", cfg.Attack.MaxColumns)
	fmt.Fprintf(out, "  max_key_length: %d\n", cfg.Attack.MaxKeyLength)
	fmt.Fprintf(out, "  concurrency: %d\n", cfg.Attack.Concurrency)
}
