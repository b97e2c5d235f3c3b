package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/linuxmatters/isfconv/internal/cli"
	"github.com/linuxmatters/isfconv/internal/config"
)

// version is set via ldflags at build time
// Local dev builds: "dev"
// Release builds: git tag (e.g. "v0.1.0")
var version = "dev"

// CLI is the command tree.
type CLI struct {
	Config  string `help:"YAML configuration file." type:"existingfile" placeholder:"FILE"`
	Verbose bool   `short:"v" help:"Print a line for every file processed."`

	Convert  ConvertCmd  `cmd:"" help:"Convert ISF files to CSV."`
	Info     InfoCmd     `cmd:"" help:"Show header fields, payload location and trace statistics."`
	XY       XYCmd       `cmd:"" name:"xy" help:"Write two CSV columns as an XY ISF file."`
	WAV      WAVCmd      `cmd:"" name:"wav" help:"Export a waveform as mono PCM WAV."`
	Spectrum SpectrumCmd `cmd:"" help:"Write the amplitude spectrum of a waveform as CSV."`
	Plot     PlotCmd     `cmd:"" help:"Render a waveform as a PNG image."`
	Import   ImportCmd   `cmd:"" help:"Convert a WAV, FLAC or MP3 file to an XY ISF file."`
	Version  VersionCmd  `cmd:"" help:"Show version information."`
}

// Globals is bound into every command's Run method.
type Globals struct {
	Config  *config.RuntimeConfig
	Verbose bool
}

// errFailed is returned once the failure has already been reported.
var errFailed = errors.New("failed")

func main() {
	os.Exit(run(os.Args[1:], os.Exit))
}

// run parses args and executes the selected command. It returns the process
// exit status.
func run(args []string, exit func(int)) int {
	var c CLI
	parser, err := kong.New(&c,
		kong.Name("isfconv"),
		kong.Description("Convert Tektronix ISF oscilloscope captures to CSV, WAV, PNG and back."),
		kong.Vars{"version": version},
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
		kong.Writers(cli.Stdout, cli.Stderr),
		kong.Exit(exit),
	)
	if err != nil {
		cli.PrintError(err.Error())
		return 1
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		cli.PrintError(err.Error())
		return 1
	}

	g := &Globals{Verbose: c.Verbose}
	if c.Config != "" {
		rc, err := config.Load(c.Config)
		if err != nil {
			cli.PrintError(err.Error())
			return 1
		}
		g.Config = rc
	}

	if err := ctx.Run(g); err != nil {
		if !errors.Is(err, errFailed) {
			cli.PrintError(err.Error())
		}
		return 1
	}
	return 0
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (VersionCmd) Run() error {
	cli.PrintVersion(version)
	return nil
}

// failures wraps errFailed with a count for the final message.
func failures(n, total int) error {
	return fmt.Errorf("%d of %d files %w", n, total, errFailed)
}
