package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const defaultConfigName = ".basic.yaml"

//
// Settings read from the YAML config file.  Everything here can also
// be toggled at the prompt, except the prompts and the log level
//

type config struct {
	Prompt      string      `yaml:"prompt"`
	InputPrompt string      `yaml:"input_prompt"`
	Stats       bool        `yaml:"stats"`
	LogLevel    string      `yaml:"log_level"`
	HistoryFile string      `yaml:"history_file"`
	Trace       traceConfig `yaml:"trace"`
}

type traceConfig struct {
	Exec bool `yaml:"exec"`
	Vars bool `yaml:"vars"`
	Dump bool `yaml:"dump"`
}

func defaultConfig() config {

	return config{
		Prompt:      defaultPrompt,
		InputPrompt: defaultInputPrompt,
		LogLevel:    "warn",
	}
}

//
// Read a config file.  An empty file is fine; unknown keys are not,
// since a typo there would otherwise be silently ignored
//

func readConfig(r io.Reader) (config, error) {

	cfg := defaultConfig()

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, err
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel)); err != nil {
		return cfg, fmt.Errorf("invalid log_level %q", cfg.LogLevel)
	}

	return cfg, nil
}

//
// Load the named config file, or the default one in the home
// directory if no name was given.  Only the default may be missing
//

func loadConfig(name string) (config, error) {

	explicit := name != ""

	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return defaultConfig(), nil
		}
		name = filepath.Join(home, defaultConfigName)
	}

	f, err := os.Open(name)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return defaultConfig(), err
	}
	defer f.Close()

	cfg, err := readConfig(f)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", name, err)
	}

	log.Debug().Str("file", name).Msg("config loaded")

	return cfg, nil
}

func applyConfig(cfg config) {

	g.prompt = cfg.Prompt
	g.inputPrompt = cfg.InputPrompt
	g.historyFile = cfg.HistoryFile
	g.printStats = cfg.Stats
	g.traceExec = cfg.Trace.Exec
	g.traceVars = cfg.Trace.Vars
	g.traceDump = cfg.Trace.Dump

	setupLogging(os.Stderr, cfg.LogLevel)
}

//
// Diagnostics go to stderr, so they never mix with program output
//

func setupLogging(w io.Writer, level string) {

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.WarnLevel
	}

	zerolog.SetGlobalLevel(lvl)

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w,
		TimeFormat: time.TimeOnly}).With().Timestamp().Logger()
}
