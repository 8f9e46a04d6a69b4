package conf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssantosv/wslkit/pkg/api"
)

const sampleGuestConf = `[automount]
enabled = false
root = /media
options = "metadata,umask=22"

[network]
hostname = devbox
generateResolvConf = false

[interop]
enabled = true

[user]
default = alice

[boot]
systemd = false

[useWindowsTimezone]
enabled = false
`

func TestGuestConfTypedView(t *testing.T) {
	c := ParseGuestConf([]byte(sampleGuestConf))

	assert.False(t, c.AutomountEnabled())
	assert.Equal(t, "/media", c.AutomountRoot())
	assert.Equal(t, `"metadata,umask=22"`, c.AutomountOptions())
	assert.Equal(t, "devbox", c.Hostname())
	assert.True(t, c.GenerateHosts())
	assert.False(t, c.GenerateResolvConf())
	assert.True(t, c.InteropEnabled())
	assert.False(t, c.SystemdEnabled())
	assert.False(t, c.UseWindowsTimezone())
	assert.Equal(t, "alice", c.DefaultUser())
}

func TestGuestConfDefaults(t *testing.T) {
	c := ParseGuestConf(nil)

	assert.True(t, c.AutomountEnabled())
	assert.Equal(t, "/mnt", c.AutomountRoot())
	assert.True(t, c.InteropEnabled())
	assert.True(t, c.GenerateResolvConf())
	assert.True(t, c.UseWindowsTimezone())
	assert.Empty(t, c.DefaultUser())
}

func TestHostConfTypedView(t *testing.T) {
	c := ParseHostConf([]byte("[wsl2]\nmemory=4GB\nprocessors=2\nswap=512MB\nlocalhostForwarding=false\n"))

	assert.Equal(t, "4GB", c.Memory())
	bytes, err := c.MemoryBytes()
	require.NoError(t, err)
	assert.Equal(t, int64(4)<<30, bytes)
	assert.Equal(t, 2, c.Processors())
	assert.Equal(t, "512MB", c.Swap())
	assert.False(t, c.LocalhostForwarding())
	assert.True(t, c.GUIApplications())
}

func TestHostConfDefaults(t *testing.T) {
	c := ParseHostConf(nil)

	assert.Empty(t, c.Memory())
	bytes, err := c.MemoryBytes()
	require.NoError(t, err)
	assert.Zero(t, bytes)
	assert.Zero(t, c.Processors())
	assert.True(t, c.LocalhostForwarding())
}

func TestParseSize(t *testing.T) {
	cases := map[string]int64{
		"1024":  1024,
		"2GB":   2 << 30,
		"512MB": 512 << 20,
		"1kb":   1 << 10,
		"3TB":   3 << 40,
		"10B":   10,
		" 2GB ": 2 << 30,
	}
	for in, want := range cases {
		got, err := ParseSize(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "GB", "-1GB", "two GB"} {
		_, err := ParseSize(bad)
		assert.True(t, errors.Is(err, api.ErrInvalidConfig), "input %q", bad)
	}
}
