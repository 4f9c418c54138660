package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"nesapu/emu/log"
)

type mode byte

const (
	playMode    mode = iota // Play a register trace
	infoMode                // Show trace infos
	versionMode             // Show version
)

type (
	CLI struct {
		Play    Play    `cmd:"" help:"Play a register trace through the APU."`
		Info    Info    `cmd:"" help:"Show trace infos."`
		Version Version `cmd:"" help:"Show nesapu version."`

		Config string     `help:"Path to configuration file." type:"path"`
		Log    logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`

		mode mode
	}

	Play struct {
		TracePath string `arg:"" name:"/path/to/trace" help:"${tracepath_help}" required:"true" type:"existingfile"`

		Backend  string        `name:"backend" help:"Audio backend (sdl, portaudio)."`
		Rate     int           `name:"rate" help:"Output sample rate in Hz."`
		Duration time.Duration `name:"duration" help:"Stop playback after this long."`
	}

	Info struct {
		TracePath string `arg:"" name:"/path/to/trace" type:"existingfile"`
	}

	Version struct{}
)

var vars = kong.Vars{
	"tracepath_help": "JSON register trace to replay (see the trace package).",
	"log_help":       "Enable logging for specified modules.",
}

func parseArgs(args []string) CLI {
	var cfg CLI
	parser, err := kong.New(&cfg,
		kong.Name("nesapu"),
		kong.Description("NES APU synthesis engine and player."),
		kong.UsageOnError(),
		kong.Help(printHelp),
		vars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")
	checkf(ctx.Error, "failed to parse command line")

	switch ctx.Command() {
	case "info </path/to/trace>":
		cfg.mode = infoMode
	case "version":
		cfg.mode = versionMode
	default:
		cfg.mode = playMode
	}
	return cfg
}

func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}
	if strings.HasPrefix(ctx.Command(), "play") {
		loggingHelp := `
Log modules:
  The --log flag accepts a comma-separated list of modules.

  Valid log modules are:
%s

  As a special case, the following values are accepted:
    - no                     Disable all logging.
    - all                    Enable all logs.
`
		var strs []string
		for _, m := range log.ModuleNames() {
			strs = append(strs, "    - "+m)
		}

		fmt.Fprintf(os.Stderr, loggingHelp, strings.Join(strs, "\n"))
	}

	return nil
}

type logModMask log.ModuleMask

// Decode decodes a comma-separated list of module names into a module mask.
//
// Implements kong.MapperValue interface.
func (lm logModMask) Decode(ctx *kong.DecodeContext) error {
	nolog := false
	allLogs := false

	tok := ctx.Scan.Pop()
	for _, v := range strings.Split(tok.Value.(string), ",") {
		switch v {
		case "all":
			allLogs = true
		case "no":
			nolog = true
		default:
			mod, ok := log.ModuleByName(v)
			if !ok {
				return fmt.Errorf("unknown log module %s", v)
			}
			lm |= logModMask(mod.Mask())
		}
	}

	if nolog {
		if allLogs {
			return fmt.Errorf("cannot use 'all' and 'no' together")
		}
		if lm != 0 {
			return fmt.Errorf("cannot combine 'no' with other log modules")
		}
		log.Disable()
		return nil
	}

	if allLogs {
		lm = logModMask(log.ModuleMaskAll)
	}

	log.EnableDebugModules(log.ModuleMask(lm))
	return nil
}

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fatalf(format+".\n"+err.Error(), args...)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal error:")
	fmt.Fprintf(os.Stderr, "\n\t%s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
