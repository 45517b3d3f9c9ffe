package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/holoplot/go-evdev"
	toml "github.com/pelletier/go-toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"

	"github.com/tbocek/dvorak/internal/input"
	"github.com/tbocek/dvorak/internal/log"
	"github.com/tbocek/dvorak/layout"
)

func TestRemapOptions(t *testing.T) {
	r := &Remap{Layout: "qwerty", NoToggle: true, LedgerCapacity: 8}
	opts, err := r.Options(nil)
	require.NoError(t, err)
	assert.Equal(t, layout.IDQwerty, opts.Table.ID())
	assert.Equal(t, layout.Qwerty.Len(), opts.Table.Len())
	assert.False(t, opts.Umlaut)
	assert.True(t, opts.DisableToggle)
	assert.Equal(t, 8, opts.LedgerCapacity)

	r = &Remap{Layout: "umlaut"}
	opts, err = r.Options(nil)
	require.NoError(t, err)
	assert.True(t, opts.Umlaut)

	r = &Remap{Layout: "qwerty", Umlaut: true}
	opts, err = r.Options(nil)
	require.NoError(t, err)
	assert.True(t, opts.Umlaut)
}

func TestRemapOptionsRestrictToDevice(t *testing.T) {
	caps := input.Capabilities{evdev.EV_KEY: {evdev.KEY_J, evdev.KEY_C, evdev.KEY_K}}
	opts, err := (&Remap{}).Options(caps.HasKey)
	require.NoError(t, err)

	assert.True(t, opts.Table.Maps(evdev.KEY_J))
	assert.False(t, opts.Table.Maps(evdev.KEY_K), "KEY_V target is missing")
	assert.Equal(t, 0, opts.UmlautTable.Len())
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()

	for _, format := range []string{"json", "yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			dest := filepath.Join(dir, "remap."+format)
			c := &ConfigInit{Command: "remap", Format: format, Output: dest}
			require.NoError(t, c.Run(log.Discard()))

			data, err := os.ReadFile(dest)
			require.NoError(t, err)

			got := map[string]any{}
			switch format {
			case "json":
				require.NoError(t, json.Unmarshal(data, &got))
			case "yaml":
				require.NoError(t, yaml.Unmarshal(data, &got))
			case "toml":
				tree, err := toml.LoadBytes(data)
				require.NoError(t, err)
				got = tree.ToMap()
			}
			assert.Contains(t, got, "device")
			assert.Contains(t, got, "noToggle")
			assert.Contains(t, got, "metrics")
			assert.EqualValues(t, "200ms", got["grabDelay"])

			// Existing file without --force.
			assert.Error(t, c.Run(log.Discard()))
			c.Force = true
			assert.NoError(t, c.Run(log.Discard()))
		})
	}
}

func TestConfigInitUserDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	c := &ConfigInit{Command: "autoclick", Format: "yml", User: true}
	require.NoError(t, c.Run(log.Discard()))

	p := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "dvorak", "autoclick.yaml")
	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hold: 3s")
}

func TestTemplateForUnknown(t *testing.T) {
	_, err := templateFor("server")
	assert.Error(t, err)
}

func TestWriteDevices(t *testing.T) {
	devices := []input.DeviceInfo{
		{Path: "/dev/input/event3", Name: "AT Translated Set 2 keyboard", Keyboard: true},
		{Path: "/dev/input/event5", Name: "Logitech M705"},
		{Path: "/dev/input/event9", Name: input.VirtualDeviceName, Keyboard: true, Virtual: true},
	}

	kbds := filterDevices(devices, false)
	require.Len(t, kbds, 1)
	assert.Equal(t, "/dev/input/event3", kbds[0].Path)
	assert.Len(t, filterDevices(devices, true), 3)

	var buf bytes.Buffer
	require.NoError(t, writeDevices(&buf, kbds, "table"))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "PATH"))
	assert.Contains(t, lines[1], "AT Translated Set 2 keyboard")

	buf.Reset()
	require.NoError(t, writeDevices(&buf, nil, "json"))
	assert.JSONEq(t, "[]", buf.String())

	buf.Reset()
	require.NoError(t, writeDevices(&buf, kbds, "json"))
	var decoded []input.DeviceInfo
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, kbds, decoded)
}
