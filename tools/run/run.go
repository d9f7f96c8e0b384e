// Copyright 2024 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package run boots a RISC-V ELF in QEMU with semihosting enabled and
// propagates the target's exit status.
package run

import (
	"bufio"
	"debug/elf"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"
	"golang.org/x/term"
)

const usageString = `Run a RISC-V ELF in QEMU with semihosting enabled.

Usage: %s [flags] <elffile> [args...]

The target's command line is the ELF's path followed by args. The exit
status is the one the target reported with SYS_EXIT.

`

// EnvCommand overrides the default emulator command.
const EnvCommand = "SEMIHOST_RUN"

var (
	flags = flag.NewFlagSet("run", flag.ExitOnError)

	emulator = flags.String("qemu", os.Getenv(EnvCommand), "Emulator command, the ELF is appended as -kernel (default depends on ELF class)")
	usePty   = flags.Bool("pty", term.IsTerminal(int(os.Stdin.Fd())), "Connect the emulator to a pseudo terminal")
	grace    = flags.Duration("grace", 500*time.Millisecond, "Time the emulator gets to exit after a test verdict")
)

var errNotRISCV = errors.New("not a RISC-V executable")

func usage() {
	fmt.Fprintf(flags.Output(), usageString, "run")
	flags.PrintDefaults()
}

func Main(args []string) {
	flags.Usage = usage
	flags.Parse(args[1:])

	if flags.NArg() < 1 {
		flags.Usage()
		os.Exit(1)
	}
	elfpath, targs := flags.Arg(0), flags.Args()[1:]

	class, err := checkELF(elfpath)
	if err != nil {
		log.Fatalln(err)
	}
	cmdline := *emulator
	if cmdline == "" {
		cmdline = defaultEmulator(class)
	}
	argv, err := command(cmdline, elfpath, targs)
	if err != nil {
		log.Fatalln("run:", err)
	}
	os.Exit(run(argv, *usePty))
}

func checkELF(path string) (elf.Class, error) {
	f, err := elf.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	if f.Machine != elf.EM_RISCV {
		return 0, fmt.Errorf("%s: %w", path, errNotRISCV)
	}
	return f.Class, nil
}

func defaultEmulator(class elf.Class) string {
	bin := "qemu-system-riscv64"
	if class == elf.ELFCLASS32 {
		bin = "qemu-system-riscv32"
	}
	return bin + " -machine virt -nographic -bios none"
}

// command returns the emulator's argv. The target's command line is
// passed as a single shell quoted string, which is how QEMU hands it to
// SYS_GET_CMDLINE.
func command(cmdline, elfpath string, targs []string) ([]string, error) {
	argv, err := shellquote.Split(cmdline)
	if err != nil {
		return nil, err
	}
	if len(argv) == 0 {
		return nil, errors.New("empty emulator command")
	}
	return append(argv,
		"-semihosting-config", semihostingConfig(elfpath, targs),
		"-kernel", elfpath,
	), nil
}

func semihostingConfig(elfpath string, targs []string) string {
	args := shellquote.Join(append([]string{elfpath}, targs...)...)
	return "enable=on,target=native,arg=" + strings.ReplaceAll(args, ",", ",,")
}

// classify reports whether line ends a test run and the resulting exit
// status.
func classify(line string) (code int, ok bool) {
	switch {
	case strings.HasPrefix(line, "fatal error:"), strings.HasPrefix(line, "panic:"):
		return 1, true
	case line == "FAIL":
		return 1, true
	case line == "PASS":
		return 0, true
	}
	return 0, false
}

// exitCode combines the emulator's exit status with the verdict found in
// the output, -1 meaning none.
func exitCode(status, verdict int) int {
	if status < 0 {
		if verdict >= 0 {
			return verdict
		}
		return 1
	}
	return max(status, verdict)
}

func run(argv []string, usePty bool) int {
	var p *process
	var err error
	if usePty {
		p, err = startPty(argv)
	} else {
		p, err = startPipe(argv)
	}
	if err != nil {
		log.Fatal("start command:", err)
	}
	defer p.cleanup()

	sigintr := make(chan os.Signal, 1)
	signal.Notify(sigintr, os.Interrupt)
	go func() {
		<-sigintr
		p.kill()
	}()

	verdict := -1
	scanner := bufio.NewScanner(p.out)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if !p.echo {
			log.Println(line)
		}
		if verdict >= 0 {
			continue
		}
		if code, ok := classify(line); ok {
			verdict = code
			// give panic() time to print the stacktrace
			go p.killAfter(*grace)
		}
	}
	return exitCode(p.wait(), verdict)
}
