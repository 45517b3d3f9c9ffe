// Package config holds the command line definition parsed by kong.
package config

import "github.com/tbocek/dvorak/internal/cmd"

type Log struct {
	Level     string `help:"Log level" enum:"trace,debug,info,warn,error" default:"info" env:"DVORAK_LOG_LEVEL"`
	File      string `help:"Also write logs to this file" type:"path" env:"DVORAK_LOG_FILE"`
	EventFile string `help:"Write one line per input and output event to this file" type:"path" env:"DVORAK_LOG_EVENT_FILE"`
}

type CLI struct {
	Config string `help:"Configuration file (JSON, YAML or TOML)" type:"path" env:"DVORAK_CONFIG"`
	Log    Log    `embed:"" prefix:"log."`

	Remap     cmd.Remap         `cmd:"" default:"withargs" help:"Map a Dvorak keyboard so shortcuts use QWERTY positions"`
	List      cmd.List          `cmd:"" help:"List input devices"`
	Autoclick cmd.Autoclick     `cmd:"" help:"Repeat left clicks after a long press"`
	Cfg       cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
	Install   cmd.Install       `cmd:"" help:"Install the remapper as a systemd service"`
	Uninstall cmd.Uninstall     `cmd:"" help:"Remove the systemd service"`
}
