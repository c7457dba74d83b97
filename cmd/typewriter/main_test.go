package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/drake/typewriter/config"
	"github.com/drake/typewriter/typewriter"
)

func parse(t *testing.T, args ...string) (*cobra.Command, cliFlags) {
	t.Helper()
	cmd := &cobra.Command{Use: "typewriter"}
	f := &cliFlags{}
	bindFlags(cmd.Flags(), f)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags(%v): %v", args, err)
	}
	return cmd, *f
}

func TestResolveFlagsOverrideConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	loop := false
	cursor := "_"
	settings := config.Settings{Loop: &loop, Cursor: &cursor}

	cmd, f := parse(t, "-s", "one", "-s", "two", "--loop", "--delay", "50", "--delete-speed", "natural", "--pause-for", "2s")
	l, err := resolve(cmd, f, settings)
	if err != nil {
		t.Fatal(err)
	}

	opts := l.session.Options
	if got := opts.Strings.Strings(); len(got) != 2 || got[0] != "one" || got[1] != "two" {
		t.Errorf("Strings = %v", got)
	}
	if !opts.Loop {
		t.Error("--loop did not override config")
	}
	if opts.Cursor != "_" {
		t.Errorf("Cursor = %q, want config value", opts.Cursor)
	}
	if opts.Delay != typewriter.Speed(50*time.Millisecond) {
		t.Errorf("Delay = %v", opts.Delay)
	}
	if !opts.DeleteSpeed.IsNatural() {
		t.Errorf("DeleteSpeed = %v", opts.DeleteSpeed)
	}
	if opts.PauseFor != 2*time.Second {
		t.Errorf("PauseFor = %v", opts.PauseFor)
	}
	if !opts.AutoStart {
		t.Error("strings without a script should autostart")
	}
	if l.session.Script != "" {
		t.Errorf("Script = %q", l.session.Script)
	}
}

func TestResolveSingleString(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cmd, f := parse(t, "--string", "hello")
	l, err := resolve(cmd, f, config.Settings{})
	if err != nil {
		t.Fatal(err)
	}
	if !l.session.Options.Strings.Single() {
		t.Error("one --string should be a single source")
	}
}

func TestResolveScript(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	initFile := config.InitFile()
	if err := os.MkdirAll(filepath.Dir(initFile), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(initFile, []byte("-- init"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		args       []string
		settings   config.Settings
		wantScript string
		wantAuto   bool
	}{
		{"init.lua fallback", nil, config.Settings{}, initFile, false},
		{"flag script", []string{"--script", "demo.lua"}, config.Settings{}, "demo.lua", false},
		{"config script", nil, config.Settings{Script: "cfg.lua"}, "cfg.lua", false},
		{"strings skip init.lua", []string{"-s", "hi"}, config.Settings{}, "", true},
		{"autostart flag wins", []string{"--script", "demo.lua", "--autostart"}, config.Settings{}, "demo.lua", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, f := parse(t, tt.args...)
			l, err := resolve(cmd, f, tt.settings)
			if err != nil {
				t.Fatal(err)
			}
			if l.session.Script != tt.wantScript {
				t.Errorf("Script = %q, want %q", l.session.Script, tt.wantScript)
			}
			if l.session.Options.AutoStart != tt.wantAuto {
				t.Errorf("AutoStart = %v, want %v", l.session.Options.AutoStart, tt.wantAuto)
			}
		})
	}
}

func TestResolveErrors(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--delay", "quick"}, "--delay"},
		{[]string{"--delete-speed=-5"}, "--delete-speed"},
		{[]string{"--pause-for", "natural"}, "cannot be natural"},
	}
	for _, tt := range tests {
		cmd, f := parse(t, tt.args...)
		_, err := resolve(cmd, f, config.Settings{})
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("resolve(%v) error = %v, want %q", tt.args, err, tt.want)
		}
	}
}

func TestResolveModes(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cmd, f := parse(t, "--dev", "--log-file", "tw.log")
	l, err := resolve(cmd, f, config.Settings{UI: "console"})
	if err != nil {
		t.Fatal(err)
	}
	if !l.simple {
		t.Error(`ui: console should select the console UI`)
	}
	if !l.session.Options.DevMode || l.level != "debug" {
		t.Errorf("dev mode = %v, level = %q", l.session.Options.DevMode, l.level)
	}
	if l.logFile != "tw.log" {
		t.Errorf("logFile = %q", l.logFile)
	}
}
