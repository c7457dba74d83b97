// Package config locates and reads the typewriter configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/drake/typewriter/markup"
	"github.com/drake/typewriter/typewriter"
)

// Dir returns the typewriter configuration directory.
// Respects XDG_CONFIG_HOME on Unix, APPDATA on Windows.
func Dir() string {
	var base string

	if runtime.GOOS == "windows" {
		base = os.Getenv("APPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	} else {
		base = os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, _ := os.UserHomeDir()
			base = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(base, "typewriter")
}

// File returns the path to config.yaml
func File() string {
	return filepath.Join(Dir(), "config.yaml")
}

// InitFile returns the path to init.lua
func InitFile() string {
	return filepath.Join(Dir(), "init.lua")
}

// Strings is the strings field: a single string or a list.
type Strings struct {
	Source typewriter.Source
	Set    bool
}

// UnmarshalYAML accepts a scalar or a sequence of scalars.
func (s *Strings) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		s.Source = typewriter.One(node.Value)
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		s.Source = typewriter.List(list...)
	default:
		return fmt.Errorf("line %d: strings must be a string or a list of strings", node.Line)
	}
	s.Set = true
	return nil
}

// Settings is the decoded config.yaml. Pointer fields distinguish "unset"
// from zero values so only what the file names overrides the defaults.
type Settings struct {
	Strings     Strings           `yaml:"strings"`
	Cursor      *string           `yaml:"cursor"`
	Delay       *typewriter.Speed `yaml:"delay"`
	DeleteSpeed *typewriter.Speed `yaml:"delete_speed"`
	PauseFor    *typewriter.Speed `yaml:"pause_for"`
	Loop        *bool             `yaml:"loop"`
	AutoStart   *bool             `yaml:"auto_start"`

	Graphemes bool `yaml:"graphemes"` // split by grapheme cluster
	Sanitize  bool `yaml:"sanitize"`  // strip unsafe markup before typing

	Script   string `yaml:"script"`
	UI       string `yaml:"ui"` // "tui" or "console"
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
	Dev      bool   `yaml:"dev"`
}

// Load reads a settings file. A missing file yields empty settings.
func Load(path string) (Settings, error) {
	var s Settings

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("config %s: %w", path, err)
	}
	return s, nil
}

// Apply overlays the settings onto opts.
func (s Settings) Apply(opts *typewriter.Options) error {
	if s.Strings.Set {
		opts.Strings = s.Strings.Source
	}
	if s.Cursor != nil {
		opts.Cursor = *s.Cursor
	}
	if s.Delay != nil {
		opts.Delay = *s.Delay
	}
	if s.DeleteSpeed != nil {
		opts.DeleteSpeed = *s.DeleteSpeed
	}
	if s.PauseFor != nil {
		if s.PauseFor.IsNatural() {
			return errors.New("pause_for cannot be natural")
		}
		opts.PauseFor = s.PauseFor.Duration()
	}
	if s.Loop != nil {
		opts.Loop = *s.Loop
	}
	if s.AutoStart != nil {
		opts.AutoStart = *s.AutoStart
	}
	if s.Graphemes {
		opts.StringSplitter = typewriter.GraphemeSplitter
	}
	if s.Sanitize {
		opts.Parser = markup.NewParser(markup.Sanitized())
	}
	if s.Dev {
		opts.DevMode = true
	}
	return nil
}
