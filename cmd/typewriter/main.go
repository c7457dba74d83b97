package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/drake/typewriter/config"
	"github.com/drake/typewriter/debug"
	"github.com/drake/typewriter/internal/logging"
	"github.com/drake/typewriter/markup"
	"github.com/drake/typewriter/session"
	"github.com/drake/typewriter/typewriter"
	"github.com/drake/typewriter/ui"
	"github.com/drake/typewriter/ui/tui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// cliFlags are the command line overrides for config.yaml.
type cliFlags struct {
	configPath  string
	simple      bool
	strings     []string
	loop        bool
	autoStart   bool
	delay       string
	deleteSpeed string
	pauseFor    string
	cursor      string
	script      string
	watch       bool
	graphemes   bool
	sanitize    bool
	dev         bool
	logFile     string
	logLevel    string
}

func newRootCmd() *cobra.Command {
	f := &cliFlags{}

	cmd := &cobra.Command{
		Use:   "typewriter [script.lua]",
		Short: "Animate typing and deleting text in the terminal",
		Long: `Typewriter types and deletes text in the terminal, one character at a time.

Strings come from --string, config.yaml or a Lua script. Without a script,
~/.config/typewriter/init.lua is loaded when it exists.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				f.script = args[0]
			}
			return run(cmd, *f)
		},
	}
	bindFlags(cmd.Flags(), f)
	return cmd
}

func bindFlags(fl *pflag.FlagSet, f *cliFlags) {
	fl.StringVar(&f.configPath, "config", config.File(), "path to config.yaml")
	fl.BoolVar(&f.simple, "simple", false, "use the line console instead of the full screen UI")
	fl.StringArrayVarP(&f.strings, "string", "s", nil, "string to type out (repeatable)")
	fl.BoolVar(&f.loop, "loop", false, "replay the animation forever")
	fl.BoolVar(&f.autoStart, "autostart", true, "type out the strings immediately")
	fl.StringVar(&f.delay, "delay", "", `typing delay: "natural", milliseconds or a duration`)
	fl.StringVar(&f.deleteSpeed, "delete-speed", "", `deleting delay: "natural", milliseconds or a duration`)
	fl.StringVar(&f.pauseFor, "pause-for", "", "pause after each string")
	fl.StringVar(&f.cursor, "cursor", "", "cursor text")
	fl.StringVar(&f.script, "script", "", "Lua script to run")
	fl.BoolVar(&f.watch, "watch", false, "reload the script when it changes")
	fl.BoolVar(&f.graphemes, "graphemes", false, "type whole grapheme clusters")
	fl.BoolVar(&f.sanitize, "sanitize", false, "strip unsafe markup before typing")
	fl.BoolVar(&f.dev, "dev", false, "log every processed operation")
	fl.StringVar(&f.logFile, "log-file", "", "write logs to this file")
	fl.StringVar(&f.logLevel, "log-level", "", "trace, debug, info, warn, error or off")
}

// launch is the resolved invocation.
type launch struct {
	session session.Config
	simple  bool
	logFile string
	level   string
}

func run(cmd *cobra.Command, f cliFlags) error {
	settings, err := config.Load(f.configPath)
	if err != nil {
		return err
	}

	l, err := resolve(cmd, f, settings)
	if err != nil {
		return err
	}

	logger, closeLog, err := openLogger(l)
	if err != nil {
		return err
	}
	defer closeLog()
	l.session.Logger = logger

	var u ui.UI
	if l.simple {
		u = ui.NewConsoleUI(os.Stdin, os.Stdout)
	} else {
		u = tui.NewBubbleTeaUI()
	}

	s := session.New(u, l.session)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	debug.NewMonitor(ctx, s, logger).Start()

	logger.Info().
		Str("script", l.session.Script).
		Bool("simple", l.simple).
		Msg("starting")

	return s.Run()
}

// resolve layers defaults, config.yaml and the flags the user set.
func resolve(cmd *cobra.Command, f cliFlags, settings config.Settings) (launch, error) {
	opts := typewriter.DefaultOptions()
	if err := settings.Apply(&opts); err != nil {
		return launch{}, fmt.Errorf("config: %w", err)
	}

	changed := cmd.Flags().Changed

	if changed("string") {
		if len(f.strings) == 1 {
			opts.Strings = typewriter.One(f.strings[0])
		} else {
			opts.Strings = typewriter.List(f.strings...)
		}
	}
	if changed("loop") {
		opts.Loop = f.loop
	}
	if changed("cursor") {
		opts.Cursor = f.cursor
	}
	if changed("delay") {
		sp, err := typewriter.ParseSpeed(f.delay)
		if err != nil {
			return launch{}, fmt.Errorf("--delay: %w", err)
		}
		opts.Delay = sp
	}
	if changed("delete-speed") {
		sp, err := typewriter.ParseSpeed(f.deleteSpeed)
		if err != nil {
			return launch{}, fmt.Errorf("--delete-speed: %w", err)
		}
		opts.DeleteSpeed = sp
	}
	if changed("pause-for") {
		sp, err := typewriter.ParseSpeed(f.pauseFor)
		if err != nil {
			return launch{}, fmt.Errorf("--pause-for: %w", err)
		}
		if sp.IsNatural() {
			return launch{}, errors.New("--pause-for cannot be natural")
		}
		opts.PauseFor = sp.Duration()
	}
	if f.graphemes {
		opts.StringSplitter = typewriter.GraphemeSplitter
	}
	if f.sanitize {
		opts.Parser = markup.NewParser(markup.Sanitized())
	}
	if f.dev {
		opts.DevMode = true
	}

	script := f.script
	if script == "" {
		script = settings.Script
	}
	// Explicit strings win over the user's init.lua.
	if script == "" && opts.Strings.Empty() {
		if _, err := os.Stat(config.InitFile()); err == nil {
			script = config.InitFile()
		}
	}

	switch {
	case changed("autostart"):
		opts.AutoStart = f.autoStart
	case settings.AutoStart == nil:
		opts.AutoStart = script == ""
	}

	level := settings.LogLevel
	if changed("log-level") {
		level = f.logLevel
	}
	if opts.DevMode && level == "" {
		level = "debug"
	}
	logFile := settings.LogFile
	if changed("log-file") {
		logFile = f.logFile
	}

	return launch{
		session: session.Config{
			Options: opts,
			Script:  script,
			Watch:   f.watch,
		},
		simple:  f.simple || settings.UI == "console",
		logFile: logFile,
		level:   level,
	}, nil
}

// openLogger logs to the log file when one is set, else to stderr in
// console mode. The full screen UI owns the terminal, so without a file it
// logs nowhere.
func openLogger(l launch) (zerolog.Logger, func(), error) {
	var out io.Writer
	closeFn := func() {}

	switch {
	case l.logFile != "":
		file, err := logging.OpenFile(l.logFile)
		if err != nil {
			return zerolog.Logger{}, nil, fmt.Errorf("log file: %w", err)
		}
		out = file
		closeFn = func() { file.Close() }
	case l.simple:
		out = os.Stderr
	default:
		return logging.Nop(), closeFn, nil
	}

	level := l.level
	if level == "" {
		level = "warn"
	}
	return logging.New(logging.Config{Level: level, Out: out}), closeFn, nil
}
