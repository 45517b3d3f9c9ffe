//go:build linux

package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSystemdUnitContent(t *testing.T) {
	unit := systemdUnitContent("/usr/local/bin/dvorak", []string{"remap", "--device", "/dev/input/by-id/kbd", "--umlaut"})
	assert.Contains(t, unit, `ExecStart="/usr/local/bin/dvorak" "remap" "--device" "/dev/input/by-id/kbd" "--umlaut"`)
	assert.Contains(t, unit, "WorkingDirectory=/usr/local/bin")
	assert.Contains(t, unit, "WantedBy=multi-user.target")
}
