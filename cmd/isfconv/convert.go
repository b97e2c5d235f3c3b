package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/linuxmatters/isfconv/internal/batch"
	"github.com/linuxmatters/isfconv/internal/cli"
	"github.com/linuxmatters/isfconv/internal/config"
	"github.com/linuxmatters/isfconv/internal/export"
	"github.com/linuxmatters/isfconv/internal/isf"
	"github.com/linuxmatters/isfconv/internal/ui"
)

// ConvertCmd converts ISF files to CSV.
type ConvertCmd struct {
	Files      []string `arg:"" optional:"" help:"ISF files to convert." type:"path"`
	Dir        string   `short:"d" help:"Convert every .isf file in this directory." type:"path" placeholder:"DIR"`
	OutDir     string   `short:"o" name:"out-dir" help:"Directory for the CSV files (default: next to each input)." type:"path" placeholder:"DIR"`
	SaveAs     []string `short:"s" name:"save-as" help:"Output file names, one per input." placeholder:"NAME"`
	Head       *bool    `help:"Write the header fields as the first line."`
	Delimiter  *string  `help:"CSV column delimiter (default: ,)." placeholder:"CHAR"`
	Precision  *int     `help:"Digits after the decimal point; -1 writes the shortest exact value (default: -1)." placeholder:"N"`
	Jobs       *int     `short:"j" help:"Files converted concurrently (default: 4)." placeholder:"N"`
	NoProgress bool     `help:"Disable the progress display."`
}

// inputs returns the files to convert, from -d or the arguments.
func (c *ConvertCmd) inputs() ([]string, error) {
	switch {
	case c.Dir != "" && len(c.Files) > 0:
		return nil, fmt.Errorf("--dir and FILES are mutually exclusive")
	case c.Dir != "":
		files, err := export.FindFiles(c.Dir, config.ISFExt)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("no %s files found in %s", config.ISFExt, c.Dir)
		}
		return files, nil
	case len(c.Files) > 0:
		return c.Files, nil
	default:
		return nil, fmt.Errorf("either --dir or FILES is required")
	}
}

// options merges flags over the runtime configuration.
func (c *ConvertCmd) options(rc *config.RuntimeConfig) (export.Options, int, string, error) {
	precision := rc.GetPrecision()
	opts := export.Options{
		Delimiter: rc.GetDelimiter(),
		Precision: &precision,
		Header:    rc.GetIncludeHeader(),
	}
	if c.Delimiter != nil {
		d, err := delimiterFlag(*c.Delimiter)
		if err != nil {
			return export.Options{}, 0, "", err
		}
		opts.Delimiter = d
	}
	if c.Precision != nil {
		precision = min(*c.Precision, config.MaxPrecision)
	}
	if c.Head != nil {
		opts.Header = *c.Head
	}

	workers := rc.GetWorkers()
	if c.Jobs != nil {
		if *c.Jobs < 1 {
			return export.Options{}, 0, "", fmt.Errorf("--jobs must be at least 1, got %d", *c.Jobs)
		}
		workers = *c.Jobs
	}

	outDir := c.OutDir
	if outDir == "" && rc != nil {
		outDir = rc.OutputDir
	}
	return opts, workers, outDir, nil
}

func delimiterFlag(s string) (rune, error) {
	if s == `\t` {
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("--delimiter must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

func (c *ConvertCmd) Run(g *Globals) error {
	inputs, err := c.inputs()
	if err != nil {
		return err
	}
	opts, workers, outDir, err := c.options(g.Config)
	if err != nil {
		return err
	}
	outputs, err := export.OutputPaths(inputs, c.SaveAs, outDir)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	jobs := batch.Jobs(inputs, outputs)
	convert := func(ctx context.Context, job batch.Job) batch.Result {
		return convertFile(job, opts)
	}

	start := time.Now()
	var results []batch.Result
	if c.NoProgress || !isatty.IsTerminal(os.Stdout.Fd()) {
		runner := &batch.Runner{
			Workers: workers,
			OnDone:  func(res batch.Result) { printResult(res, g.Verbose) },
		}
		results = runner.Run(ctx, jobs, convert)
		printSummary(results, time.Since(start))
	} else {
		results, err = runWithProgress(ctx, cancel, workers, jobs, convert, start)
		if err != nil {
			return err
		}
	}

	if n := batch.Failed(results); n > 0 {
		return failures(n, len(results))
	}
	return nil
}

// runWithProgress runs the batch under the Bubbletea progress display.
func runWithProgress(ctx context.Context, cancel func(), workers int, jobs []batch.Job, fn batch.Func, start time.Time) ([]batch.Result, error) {
	model := ui.NewModel(len(jobs), cancel)
	p := tea.NewProgram(model)

	runner := &batch.Runner{
		Workers: workers,
		OnStart: func(job batch.Job) { p.Send(ui.FileStarted{Job: job}) },
		OnDone:  func(res batch.Result) { p.Send(ui.FileDone{Result: res}) },
	}

	var results []batch.Result
	done := make(chan struct{})
	go func() {
		defer close(done)
		results = runner.Run(ctx, jobs, fn)
		p.Send(ui.BatchComplete{Elapsed: time.Since(start)})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-done
		return results, fmt.Errorf("running UI: %w", err)
	}
	<-done
	if model.Interrupted() {
		cli.PrintWarning(fmt.Sprintf("interrupted after %d of %d files", model.Done(), len(jobs)))
	}
	return results, nil
}

// convertFile decodes one ISF file and writes its CSV.
func convertFile(job batch.Job, opts export.Options) batch.Result {
	wf, err := isf.ReadFile(job.Input, nil)
	if err != nil {
		return batch.Result{Err: err}
	}
	res := batch.Result{Warnings: wf.Header.Warnings}

	written, err := export.WriteWaveform(job.Output, wf, opts)
	if err != nil {
		res.Err = err
		return res
	}
	res.Written = written
	res.Points = len(wf.X)
	return res
}

func printResult(res batch.Result, verbose bool) {
	name := filepath.Base(res.Input)
	for _, w := range res.Warnings {
		cli.PrintWarning(fmt.Sprintf("%s: %s", name, w))
	}
	if res.Err != nil {
		cli.PrintError(fmt.Sprintf("%s: %v", name, res.Err))
		return
	}
	if verbose {
		cli.PrintSuccess(fmt.Sprintf("%s → %s (%d points)", name, res.Written, res.Points))
	}
}

func printSummary(results []batch.Result, elapsed time.Duration) {
	failed := batch.Failed(results)
	points := 0
	for _, res := range results {
		points += res.Points
	}
	cli.PrintConvertSummary(len(results)-failed, failed, points, elapsed)
}
