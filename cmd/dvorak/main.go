package main

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/tbocek/dvorak/internal/config"
	"github.com/tbocek/dvorak/internal/configpaths"
	"github.com/tbocek/dvorak/internal/log"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
)

func main() {
	userCfg := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	var cli config.CLI
	ctx := kong.Parse(&cli,
		kong.Name("dvorak"),
		kong.Description("Dvorak typing with QWERTY shortcuts, remapped at the evdev level"),
		kong.UsageOnError(),
		// Load configuration from JSON/YAML/TOML in priority order; flags/env override config values.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closeFiles, err := log.SetupLogger(cli.Log.Level, cli.Log.File)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	events, f := openEventLog(cli.Log, logger)
	if f != nil {
		closeFiles = append(closeFiles, f)
	}

	ctx.Bind(logger)
	ctx.BindTo(events, (*log.EventLogger)(nil))

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

// openEventLog picks the per-event trace target: the event file if set,
// stdout at trace level, otherwise nothing.
func openEventLog(cfg config.Log, logger *slog.Logger) (log.EventLogger, io.Closer) {
	switch {
	case cfg.EventFile != "":
		f, err := os.OpenFile(cfg.EventFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			logger.Error("failed to open event log file", "file", cfg.EventFile, "error", err)
			return log.NewEventLogger(nil), nil
		}
		return log.NewEventLogger(f), f
	case log.ParseLevel(cfg.Level) == log.LevelTrace:
		return log.NewEventLogger(os.Stdout), nil
	default:
		return log.NewEventLogger(nil), nil
	}
}

func findUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	if v := os.Getenv("DVORAK_CONFIG"); v != "" {
		return v
	}
	return ""
}
