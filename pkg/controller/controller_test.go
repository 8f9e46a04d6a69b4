package controller

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssantosv/wslkit/pkg/api"
	"github.com/ssantosv/wslkit/pkg/distro"
	"github.com/ssantosv/wslkit/pkg/wslapi"
)

// fakeWSL emulates the wsl.exe argument surface with a shell script:
// management flags are handled up front, guest commands are dispatched
// on the text after the -- separator.
const fakeWSL = `#!/bin/sh
case "$1" in
--export)
	printf 'tarball' > "$3"
	exit 0
	;;
--list)
	printf 'Ubuntu\n'
	exit 0
	;;
--terminate)
	exit 0
	;;
esac
user=""
cwd=""
while [ $# -gt 0 ]; do
	case "$1" in
	--user) user="$2"; shift 2 ;;
	--cd) cwd="$2"; shift 2 ;;
	--) shift; break ;;
	*) shift ;;
	esac
done
cmd="$3"
case "$cmd" in
"id -un")
	echo "${user:-root}"
	;;
"pwd")
	echo "${cwd:-/root}"
	;;
"cat /etc/wsl.conf")
	cat "%CONF%"
	;;
"hostname -I")
	echo "172.20.97.5 10.0.0.3"
	;;
"which apt")
	echo /usr/bin/apt
	;;
"apt list --installed")
	printf 'curl/now 8.5.0 amd64 [installed]\ngit/now 2.43.0 amd64 [installed]\n'
	;;
"sudo -S apt-get install -y htop")
	read pw
	echo "installing htop for $pw"
	;;
wslpath*)
	set -- $cmd
	echo "%WINROOT%$3"
	;;
*)
	exec /bin/sh -c "$cmd"
	;;
esac
`

type fakeEnv struct {
	exe     string
	winRoot string
	conf    string
}

func writeFakeWSL(t *testing.T) *fakeEnv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake wsl.exe needs a POSIX shell")
	}
	dir := t.TempDir()
	env := &fakeEnv{
		exe:     filepath.Join(dir, "wsl"),
		winRoot: filepath.Join(dir, "winroot"),
		conf:    filepath.Join(dir, "wsl.conf"),
	}
	require.NoError(t, os.MkdirAll(env.winRoot, 0755))
	require.NoError(t, os.WriteFile(env.conf, nil, 0644))

	script := strings.NewReplacer("%CONF%", env.conf, "%WINROOT%", env.winRoot).Replace(fakeWSL)
	require.NoError(t, os.WriteFile(env.exe, []byte(script), 0755))
	return env
}

func newTestController(t *testing.T, opts ...Option) (*Controller, *fakeEnv) {
	t.Helper()
	env := writeFakeWSL(t)
	opts = append([]Option{
		WithProcessExe(env.exe),
		WithSurface(wslapi.NewMock()),
		WithCatalogDir(t.TempDir()),
	}, opts...)
	c := New("Ubuntu", opts...)
	t.Cleanup(func() { c.Close() })
	return c, env
}

func TestRunCapturesOutput(t *testing.T) {
	c, _ := newTestController(t)

	res, err := c.Run(context.Background(), "echo hi")
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "hi\n", res.Stdout)
}

func TestRunReportsNonZeroExit(t *testing.T) {
	c, _ := newTestController(t)

	res, err := c.Run(context.Background(), "exit 4")
	require.NoError(t, err)
	assert.Equal(t, 4, res.ExitCode)
}

func TestRunWithUserAndWorkdir(t *testing.T) {
	c, _ := newTestController(t)
	ctx := context.Background()

	res, err := c.RunWith(ctx, "builder", "/srv/app", "id -un")
	require.NoError(t, err)
	assert.Equal(t, "builder\n", res.Stdout)

	res, err = c.RunWith(ctx, "builder", "/srv/app", "pwd")
	require.NoError(t, err)
	assert.Equal(t, "/srv/app\n", res.Stdout)

	res, err = c.RunAs(ctx, "builder", "pwd")
	require.NoError(t, err)
	assert.Equal(t, "/root\n", res.Stdout)

	res, err = c.RunIn(ctx, "/srv/app", "id -un")
	require.NoError(t, err)
	assert.Equal(t, "root\n", res.Stdout)
}

func TestCopyInAndOut(t *testing.T) {
	c, env := newTestController(t)
	ctx := context.Background()

	hostFile := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(hostFile, []byte("payload"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(env.winRoot, "guest"), 0755))

	require.NoError(t, c.CopyIn(ctx, hostFile, "/guest/in.txt"))
	data, err := os.ReadFile(filepath.Join(env.winRoot, "guest", "in.txt"))
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	outFile := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, c.CopyOut(ctx, "/guest/in.txt", outFile))
	data, err = os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestCopyInMissingGuestDir(t *testing.T) {
	c, _ := newTestController(t)

	hostFile := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(hostFile, []byte("x"), 0644))

	err := c.CopyIn(context.Background(), hostFile, "/nodir/in.txt")
	assert.ErrorIs(t, err, ErrCopyFile)
}

func TestBackupRecordsCatalog(t *testing.T) {
	c, _ := newTestController(t)

	entry, err := c.Backup(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "Ubuntu", entry.Distro)
	assert.Equal(t, int64(len("tarball")), entry.Size)

	entries, err := c.Backups()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry.ID, entries[0].ID)
}

func TestListDistributionsRefinesRunningState(t *testing.T) {
	mock := wslapi.NewMock()
	mock.Add("Ubuntu", wslapi.DistroConfig{Version: 2})
	mock.Add("Debian", wslapi.DistroConfig{Version: 2})
	c, _ := newTestController(t, WithSurface(mock))

	records, err := c.ListDistributions(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Debian", records[0].Name)
	assert.Equal(t, distro.StateStopped, records[0].State)
	assert.Equal(t, "Ubuntu", records[1].Name)
	assert.Equal(t, distro.StateRunning, records[1].State)
}

func TestLifecycleRoundTrip(t *testing.T) {
	c, _ := newTestController(t)

	ok, err := c.IsRegistered()
	require.NoError(t, err)
	assert.False(t, ok)

	rec, err := c.Register("/tmp/rootfs.tar.gz")
	require.NoError(t, err)
	assert.Equal(t, 2, rec.Version)

	ok, err = c.IsRegistered()
	require.NoError(t, err)
	assert.True(t, ok)

	uid := uint32(1000)
	require.NoError(t, c.SetConfiguration(distro.ConfigureOptions{DefaultUID: &uid}))
	rec, err = c.GetConfiguration()
	require.NoError(t, err)
	assert.Equal(t, uint32(1000), rec.DefaultUID)

	require.NoError(t, c.Unregister())
	require.NoError(t, c.Unregister())
}

func TestStrictUnregister(t *testing.T) {
	c, _ := newTestController(t, WithStrictUnregister())

	assert.ErrorIs(t, c.Unregister(), api.ErrNotFound)
}

func TestGuestConfViews(t *testing.T) {
	c, env := newTestController(t)
	ctx := context.Background()

	text := "[automount]\nenabled=false\nroot=/media\n\n[network]\nhostname=devbox\n\n[user]\ndefault=sonia\n\n[boot]\nsystemd=false\n\n[useWindowsTimezone]\nenabled=false\n"
	require.NoError(t, os.WriteFile(env.conf, []byte(text), 0644))

	nc, err := c.NetworkConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, "devbox", nc.Hostname)
	assert.True(t, nc.GenerateHosts)

	am, err := c.AutomountSettings(ctx)
	require.NoError(t, err)
	assert.False(t, am.Enabled)
	assert.Equal(t, "/media", am.Root)

	user, err := c.DefaultUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sonia", user)

	interop, err := c.InteropEnabled(ctx)
	require.NoError(t, err)
	assert.True(t, interop)

	systemd, err := c.SystemdEnabled(ctx)
	require.NoError(t, err)
	assert.False(t, systemd)

	winTZ, err := c.UseWindowsTimezone(ctx)
	require.NoError(t, err)
	assert.False(t, winTZ)
}

func TestIP(t *testing.T) {
	c, _ := newTestController(t)

	ip, err := c.IP(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "172.20.97.5", ip)
}

func TestListPackages(t *testing.T) {
	c, _ := newTestController(t)

	pkgs, err := c.ListPackages(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"curl/now 8.5.0 amd64 [installed]",
		"git/now 2.43.0 amd64 [installed]",
	}, pkgs)
}

func TestInstallPackageFeedsPassword(t *testing.T) {
	c, _ := newTestController(t)

	res, err := c.InstallPackage(context.Background(), "htop", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "installing htop for hunter2\n", res.Stdout)
}

func TestHostConfRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".wslconfig")
	c, _ := newTestController(t, WithHostConfPath(path))

	hc, err := c.ReadHostConf()
	require.NoError(t, err)
	assert.Empty(t, hc.Memory())

	hc.Doc.Set("wsl2", "memory", "4GB")
	hc.Doc.Set("wsl2", "processors", "2")
	require.NoError(t, c.WriteHostConf(hc))

	hc, err = c.ReadHostConf()
	require.NoError(t, err)
	assert.Equal(t, "4GB", hc.Memory())
	assert.Equal(t, 2, hc.Processors())
}

func TestAccessDates(t *testing.T) {
	c, _ := newTestController(t)

	out, err := c.AccessDates(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out, "/")
}
