package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/55utah/fc6502/nes"
	"github.com/55utah/fc6502/ui"
)

var errStepLimit = errors.New("step limit reached")

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [flags] ROM.nes\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	trace := flag.Bool("trace", false, "print a nestest-style trace line per instruction instead of opening a window")
	pc := flag.String("pc", "", "start address in hex, overriding the reset vector (e.g. C000 for nestest)")
	useTerm := flag.Bool("term", false, "render in the terminal instead of a window")
	delay := flag.Duration("delay", 70*time.Microsecond, "sleep after each instruction")
	seed := flag.Int64("seed", 0, "seed for the random byte at $FE (0 = time based)")
	steps := flag.Int("steps", 0, "stop trace mode after this many instructions (0 = no limit)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(1)
	}
	nes.SetDebug(*debug)

	card, err := nes.LoadNESFile(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	console := nes.NewConsoleFromCartridge(card)
	if *seed != 0 {
		console.SetSeed(*seed)
	}
	if *pc != "" {
		start, err := strconv.ParseUint(*pc, 16, 16)
		if err != nil {
			log.Fatalf("invalid -pc %q: %v", *pc, err)
		}
		console.CPU.PC = uint16(start)
	}

	switch {
	case *trace:
		err = runTrace(console.CPU, *steps)
	case *useTerm:
		err = ui.RunTerminal(console, *delay)
	default:
		ui.OpenWindow(console, *delay)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func runTrace(cpu *nes.CPU, steps int) error {
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	count := 0
	limit := nes.StepHookFunc(func(*nes.CPU) error {
		if steps > 0 && count >= steps {
			return errStepLimit
		}
		count++
		return nil
	})
	err := cpu.RunWithHook(nes.ChainHooks(limit, nes.TraceHook(out)))
	if errors.Is(err, errStepLimit) {
		return nil
	}
	return err
}
