package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/integrii/flaggy"

	"life/src/config"
	"life/src/universe"
	"life/src/view"
)

const (
	exitFailure   = 1
	exitMalformed = 2
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("life: ")

	c, err := initOptions(flaggy.NewParser("life"), os.Args[1:])
	if err != nil {
		log.Println(err)
		os.Exit(exitFailure)
	}
	os.Exit(run(c, os.Stderr))
}

//initOptions loads the environment and lets the command line override it
func initOptions(p *flaggy.Parser, args []string) (config.Config, error) {
	c, err := config.Load()
	if err != nil {
		return c, err
	}
	p.Description = "Conway's Game of Life"
	p.ShowHelpOnUnexpected = true
	p.AdditionalHelpAppend = "\nThe input is \"<rows> <cols>\" followed by \"<row> <col>\" pairs of live cells." +
		"\nEnvironment: LIFE_GENERATIONS, LIFE_DELAY, LIFE_TOROIDAL, LIFE_SILENT, LIFE_VERBOSE, LIFE_STOP_WHEN_STABLE, LIFE_INPUT, LIFE_OUTPUT"
	p.Bool(&c.Toroidal, "t", "toroidal", "Create the universe as a toroidal")
	p.Bool(&c.Silent, "s", "silent", "Silent - do not animate the evolution")
	p.Int(&c.Generations, "n", "generations", "Number of generations")
	p.String(&c.Input, "i", "input", "Input file [default: stdin]")
	p.String(&c.Output, "o", "output", "Output file [default: stdout]")
	p.Duration(&c.Delay, "d", "delay", "Pause between animated generations, for example 50ms")
	p.Bool(&c.Verbose, "v", "verbose", "Print the run summary to stderr")
	p.Bool(&c.Stable, "", "stop-when-stable", "Finish early when a generation changes nothing")
	if err = p.ParseArgs(args); err != nil {
		return c, fmt.Errorf("parse arguments: %w", err)
	}

	return c, c.Validate()
}

//run executes the simulation and returns the process exit code
//diagnostics are written to diag, the snapshot goes to the configured output
func run(c config.Config, diag io.Writer) int {
	logger := log.New(diag, "life: ", 0)

	in, closeIn, err := openInput(c.Input)
	if err != nil {
		logger.Println(err)
		return exitFailure
	}
	defer closeIn()

	u, err := universe.Load(in, c.Toroidal)
	if errors.Is(err, universe.ErrMalformedInput) {
		logger.Println(err)
		fmt.Fprintln(diag, "Malformed input.")
		return exitMalformed
	} else if err != nil {
		logger.Println(err)
		return exitFailure
	}

	out, closeOut, err := openOutput(c.Output, logger)
	if err != nil {
		logger.Println(err)
		return exitFailure
	}
	defer closeOut()

	s, err := universe.NewSimulation(u, c.SimulationOptions())
	if err != nil {
		logger.Println(err)
		return exitFailure
	}
	defer s.Close()

	//the report is held back while the terminal is animated
	var report bytes.Buffer
	if c.Verbose {
		w := diag
		if !c.Silent {
			w = &report
		}
		co := view.NewConsoleOut(w)
		co.Start(u, s.Options())
		s.RegisterViewer(co)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = simulate(ctx, s, c.Silent)
	_, _ = report.WriteTo(diag)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Println(err)
		return exitFailure
	}

	if err = s.Current().Print(out); err != nil {
		logger.Printf("write output: %v", err)
		return exitFailure
	}
	return 0
}

func simulate(ctx context.Context, s *universe.Simulation, silent bool) error {
	if silent {
		return s.Run(ctx)
	}
	ui, err := view.NewConsoleUI()
	if err != nil {
		return err
	}
	return ui.Animate(ctx, s)
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func openOutput(path string, logger *log.Logger) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open output: %w", err)
	}
	return f, func() {
		if err := f.Close(); err != nil {
			logger.Printf("close output: %v", err)
		}
	}, nil
}
