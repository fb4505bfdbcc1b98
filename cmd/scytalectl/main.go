package main

import (
	"flag"
	"fmt"
	"os"
)

const productName = "scytale"
const cliBanner = productName + " CLI (scytalectl)"

func init() {
	defaultUsage := flag.Usage
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), cliBanner)
		fmt.Fprintln(flag.CommandLine.Output())
		if defaultUsage != nil {
			defaultUsage()
		}
	}
}

func main() {
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	switch args[0] {
	case "encrypt":
		os.Exit(runEncrypt(args[1:]))
	case "decrypt":
		os.Exit(runDecrypt(args[1:]))
	case "attack":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "attack subcommand required (freq or known)")
			os.Exit(2)
		}
		switch args[1] {
		case "freq":
			os.Exit(runAttackFreq(args[2:]))
		case "known":
			os.Exit(runAttackKnown(args[2:]))
		default:
			fmt.Fprintf(os.Stderr, "unknown attack subcommand: %s\n", args[1])
			os.Exit(2)
		}
	case "config":
		os.Exit(runConfig(args[1:]))
	case "version":
		os.Exit(runVersion(args[1:]))
	case "self-update":
		os.Exit(runSelfUpdate(args[1:]))
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		flag.Usage()
		os.Exit(2)
	}
}
