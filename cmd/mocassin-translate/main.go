// Command mocassin-translate turns a reference data snapshot into an
// interop bundle for the simulator.
//
// Settings come from MOCASSIN_* environment variables; flags override them.
//
// Usage:
//
//	mocassin-translate <command> [flags] <file>
//
// Commands:
//
//	translate   Build and encode a snapshot into a bundle
//	inspect     List the blobs of a bundle
//
// Examples:
//
//	# Translate with a build log
//	mocassin-translate translate -o zirconia.mbundle -log build.mlog zirconia.yaml
//
//	# Check a bundle
//	mocassin-translate inspect zirconia.mbundle
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/mocassin-sim/mocassin-go/cmd/mocassin-translate/commands"
	"github.com/mocassin-sim/mocassin-go/pkg/config"
)

const usage = `mocassin-translate - Simulation Model Translator

Usage:
  mocassin-translate <command> [flags] <file>

Commands:
  translate   Build and encode a snapshot into a bundle
  inspect     List the blobs of a bundle

Use "mocassin-translate <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "translate":
		runTranslate(args)
	case "inspect":
		runInspect(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func runTranslate(args []string) {
	fs := flag.NewFlagSet("translate", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `mocassin-translate translate - Build and encode a snapshot into a bundle

Usage:
  mocassin-translate translate [flags] <snapshot.yaml>

Flags:
`)
		fs.PrintDefaults()
	}

	cfg, err := config.Load()
	if err != nil {
		fail(err)
	}

	output := fs.String("o", "", "Output bundle (default: <snapshot>.mbundle)")
	fs.StringVar(&cfg.BuildLog, "log", cfg.BuildLog, "Write build events to this CBOR log file")
	fs.IntVar(&cfg.MarshalPoolSize, "pool", cfg.MarshalPoolSize, "Marshal blocks per record kind")
	fs.DurationVar(&cfg.AcquireTimeout, "acquire-timeout", cfg.AcquireTimeout, "Maximum wait for a marshal block (0 waits forever)")
	fs.Float64Var(&cfg.ChargeTolerance, "charge-tolerance", cfg.ChargeTolerance, "Tolerance of charge conservation checks")
	verbose := fs.Bool("v", false, "Log build events (debug level)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: snapshot path required")
		fs.Usage()
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fail(err)
	}

	path := fs.Arg(0)
	if *output == "" {
		*output = strings.TrimSuffix(path, filepath.Ext(path)) + ".mbundle"
	}

	level := cfg.LogLevel
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := commands.Translate(ctx, commands.TranslateOptions{
		SnapshotPath: path,
		OutputPath:   *output,
		Config:       cfg,
		Logger:       logger,
	})
	if err != nil {
		stop()
		fail(err)
	}

	fmt.Printf("Build %s: %d blobs (%d bytes) written to %s\n",
		res.Bundle.BuildID, len(res.Bundle.Blobs), res.Bundle.Size(), *output)
	if cfg.BuildLog != "" {
		fmt.Printf("%d build events written to %s\n", res.Events, cfg.BuildLog)
	}
}

func runInspect(args []string) {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `mocassin-translate inspect - List the blobs of a bundle

Usage:
  mocassin-translate inspect <file.mbundle>

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: bundle path required")
		fs.Usage()
		os.Exit(1)
	}

	if err := commands.RunInspect(fs.Arg(0), os.Stdout); err != nil {
		fail(err)
	}
}
