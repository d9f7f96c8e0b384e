package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/clktmr/semihosting/tools/run"
)

const usageString = `semihost is a tool for running Go programs on RISC-V targets attached
to a semihosting debug host.

Usage:

	%s <command> [arguments]

The commands are:

	run      boot an ELF in QEMU with semihosting enabled

Tests can be run on the target with 'go test -exec "semihost run"'.
`

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), usageString, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	log.Default().SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	switch flag.Arg(0) {
	case "run":
		run.Main(flag.Args())
	default:
		fmt.Fprintf(flag.CommandLine.Output(), "unknown command: %s\n", flag.Arg(0))
		flag.Usage()
		os.Exit(1)
	}
}
