// whatinput-replay runs scripted event sequences through the input tracker.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Faultbox/whatinput/internal/config"
	"github.com/Faultbox/whatinput/internal/logger"
	"github.com/Faultbox/whatinput/internal/replay"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "run":
		os.Exit(cmdRun(args, false))
	case "check":
		os.Exit(cmdRun(args, true))
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`whatinput-replay - replay input event scripts

Usage:
  whatinput-replay <command> [options] <script.yaml>...

Commands:
  run    Replay scripts and print a transcript
  check  Replay scripts and report failed expectations only

Options:
  -config <file>  Take tracker defaults from a config file
  -format text|yaml
  -v              Debug logging

Examples:
  whatinput-replay run internal/replay/testdata/scroll.yaml
  whatinput-replay run -format yaml session.yaml
  whatinput-replay check internal/replay/testdata/*.yaml`)
}

func cmdRun(args []string, quiet bool) int {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	configPath := fs.String("config", "", "Config file with tracker defaults")
	format := fs.String("format", "text", "Transcript format: text or yaml")
	verbose := fs.Bool("v", false, "Debug logging")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: whatinput-replay run [options] <script.yaml>...")
		return 1
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	if err := logger.Init(level, ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		cfg = loaded
	}

	failed := 0
	for _, path := range fs.Args() {
		if err := replayFile(path, &cfg.Tracker, *format, quiet); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed++
		}
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d scripts failed\n", failed, fs.NArg())
		return 1
	}
	if quiet {
		fmt.Printf("ok: %d scripts\n", fs.NArg())
	}
	return 0
}

func replayFile(path string, defaults *config.TrackerConfig, format string, quiet bool) error {
	s, err := replay.Load(path)
	if err != nil {
		return err
	}

	tr, err := replay.Run(s, replay.Options{Defaults: defaults, Logger: logger.Named("replay")})
	if err != nil {
		return err
	}

	if !quiet {
		fmt.Printf("# %s\n", tr.Name)
		switch format {
		case "yaml":
			err = tr.WriteYAML(os.Stdout)
		default:
			err = tr.WriteText(os.Stdout)
		}
		if err != nil {
			return err
		}
	}

	if quiet {
		for _, m := range tr.Mismatches {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, m)
		}
	}
	return tr.Err()
}
