//go:build windows

package wslapi

import (
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"

	"github.com/ssantosv/wslkit/internal/errx"
	"github.com/ssantosv/wslkit/pkg/api"
)

const lxssKeyPath = `Software\Microsoft\Windows\CurrentVersion\Lxss`

var (
	dllWSLAPI = windows.NewLazySystemDLL("wslapi.dll")
	dllOle32  = windows.NewLazySystemDLL("ole32.dll")

	procLaunch            = dllWSLAPI.NewProc("WslLaunch")
	procLaunchInteractive = dllWSLAPI.NewProc("WslLaunchInteractive")
	procRegister          = dllWSLAPI.NewProc("WslRegisterDistribution")
	procUnregister        = dllWSLAPI.NewProc("WslUnregisterDistribution")
	procIsRegistered      = dllWSLAPI.NewProc("WslIsDistributionRegistered")
	procConfigure         = dllWSLAPI.NewProc("WslConfigureDistribution")
	procGetConfiguration  = dllWSLAPI.NewProc("WslGetDistributionConfiguration")

	procCoTaskMemFree = dllOle32.NewProc("CoTaskMemFree")
)

type system struct{}

// System returns the wslapi.dll-backed control surface.
func System() API {
	return &system{}
}

// available reports whether wslapi.dll can be loaded at all.
func available() error {
	if err := dllWSLAPI.Load(); err != nil {
		return errx.Wrap(api.ErrBackendUnavailable, err)
	}
	return nil
}

func (s *system) Launch(distro, command string, useCWD bool) (*LaunchResult, error) {
	if err := available(); err != nil {
		return nil, err
	}
	distroP, err := windows.UTF16PtrFromString(distro)
	if err != nil {
		return nil, errx.Wrap(api.ErrInvalidArgument, err)
	}
	commandP, err := windows.UTF16PtrFromString(command)
	if err != nil {
		return nil, errx.Wrap(api.ErrInvalidArgument, err)
	}

	stdoutR, stdoutW, err := inheritablePipe()
	if err != nil {
		return nil, err
	}
	defer windows.CloseHandle(stdoutR)
	stderrR, stderrW, err := inheritablePipe()
	if err != nil {
		windows.CloseHandle(stdoutW)
		return nil, err
	}
	defer windows.CloseHandle(stderrR)

	var process windows.Handle
	hr, _, _ := procLaunch.Call(
		uintptr(unsafe.Pointer(distroP)),
		uintptr(unsafe.Pointer(commandP)),
		boolArg(useCWD),
		uintptr(windows.InvalidHandle), // no stdin
		uintptr(stdoutW),
		uintptr(stderrW),
		uintptr(unsafe.Pointer(&process)),
	)
	// The guest holds the write ends now; close ours so reads terminate.
	windows.CloseHandle(stdoutW)
	windows.CloseHandle(stderrW)
	if err := api.NativeError(uint32(hr)); err != nil {
		return nil, err
	}
	defer windows.CloseHandle(process)

	stdoutCh := make(chan []byte, 1)
	stderrCh := make(chan []byte, 1)
	go func() { stdoutCh <- drainPipe(stdoutR) }()
	go func() { stderrCh <- drainPipe(stderrR) }()

	if ev, err := windows.WaitForSingleObject(process, windows.INFINITE); err != nil || ev != windows.WAIT_OBJECT_0 {
		return nil, errx.Wrap(ErrWaitProcess, err)
	}
	var exitCode uint32
	if err := windows.GetExitCodeProcess(process, &exitCode); err != nil {
		return nil, errx.Wrap(ErrExitCode, err)
	}

	return &LaunchResult{
		ExitCode: exitCode,
		Stdout:   <-stdoutCh,
		Stderr:   <-stderrCh,
	}, nil
}

func (s *system) LaunchInteractive(distro, command string, useCWD bool) (uint32, error) {
	if err := available(); err != nil {
		return 0, err
	}
	distroP, err := windows.UTF16PtrFromString(distro)
	if err != nil {
		return 0, errx.Wrap(api.ErrInvalidArgument, err)
	}
	// A NULL command launches the distribution's default shell.
	var commandArg uintptr
	if command != "" {
		commandP, err := windows.UTF16PtrFromString(command)
		if err != nil {
			return 0, errx.Wrap(api.ErrInvalidArgument, err)
		}
		commandArg = uintptr(unsafe.Pointer(commandP))
	}

	var exitCode uint32
	hr, _, _ := procLaunchInteractive.Call(
		uintptr(unsafe.Pointer(distroP)),
		commandArg,
		boolArg(useCWD),
		uintptr(unsafe.Pointer(&exitCode)),
	)
	if err := api.NativeError(uint32(hr)); err != nil {
		return 0, err
	}
	return exitCode, nil
}

func (s *system) RegisterDistribution(name, tarGzPath string) error {
	if err := available(); err != nil {
		return err
	}
	nameP, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return errx.Wrap(api.ErrInvalidArgument, err)
	}
	pathP, err := windows.UTF16PtrFromString(tarGzPath)
	if err != nil {
		return errx.Wrap(api.ErrInvalidArgument, err)
	}
	hr, _, _ := procRegister.Call(
		uintptr(unsafe.Pointer(nameP)),
		uintptr(unsafe.Pointer(pathP)),
	)
	return api.NativeError(uint32(hr))
}

func (s *system) UnregisterDistribution(name string) error {
	if err := available(); err != nil {
		return err
	}
	nameP, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return errx.Wrap(api.ErrInvalidArgument, err)
	}
	hr, _, _ := procUnregister.Call(uintptr(unsafe.Pointer(nameP)))
	return api.NativeError(uint32(hr))
}

func (s *system) IsDistributionRegistered(name string) (bool, error) {
	if err := available(); err != nil {
		return false, err
	}
	nameP, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return false, errx.Wrap(api.ErrInvalidArgument, err)
	}
	// Returns a BOOL, not an HRESULT.
	ret, _, _ := procIsRegistered.Call(uintptr(unsafe.Pointer(nameP)))
	return ret != 0, nil
}

func (s *system) ConfigureDistribution(name string, defaultUID uint32, flags api.DistroFlags) error {
	if err := available(); err != nil {
		return err
	}
	nameP, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return errx.Wrap(api.ErrInvalidArgument, err)
	}
	hr, _, _ := procConfigure.Call(
		uintptr(unsafe.Pointer(nameP)),
		uintptr(defaultUID),
		uintptr(flags),
	)
	return api.NativeError(uint32(hr))
}

func (s *system) GetDistributionConfiguration(name string) (*DistroConfig, error) {
	if err := available(); err != nil {
		return nil, err
	}
	nameP, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return nil, errx.Wrap(api.ErrInvalidArgument, err)
	}

	var (
		version  uint32
		uid      uint32
		flags    uint32
		envArray **uint16
		envCount uint32
	)
	hr, _, _ := procGetConfiguration.Call(
		uintptr(unsafe.Pointer(nameP)),
		uintptr(unsafe.Pointer(&version)),
		uintptr(unsafe.Pointer(&uid)),
		uintptr(unsafe.Pointer(&flags)),
		uintptr(unsafe.Pointer(&envArray)),
		uintptr(unsafe.Pointer(&envCount)),
	)
	if err := api.NativeError(uint32(hr)); err != nil {
		return nil, err
	}

	env := decodeEnvArray(envArray, envCount)

	f := api.DistroFlags(flags)
	return &DistroConfig{
		Version:    f.Version(),
		DefaultUID: uid,
		Flags:      f,
		Env:        env,
	}, nil
}

// decodeEnvArray parses the CoTaskMem-allocated KEY=VALUE string array and
// frees every entry plus the array itself.
func decodeEnvArray(envArray **uint16, count uint32) map[string]string {
	env := make(map[string]string, count)
	if envArray == nil {
		return env
	}
	entries := unsafe.Slice(envArray, count)
	for _, entry := range entries {
		if entry == nil {
			continue
		}
		pair := windows.UTF16PtrToString(entry)
		if key, value, ok := strings.Cut(pair, "="); ok {
			env[key] = value
		}
		procCoTaskMemFree.Call(uintptr(unsafe.Pointer(entry)))
	}
	procCoTaskMemFree.Call(uintptr(unsafe.Pointer(envArray)))
	return env
}

func (s *system) DistributionNames() ([]string, error) {
	lxss, err := registry.OpenKey(registry.CURRENT_USER, lxssKeyPath, registry.READ)
	if err != nil {
		return nil, errx.Wrap(ErrOpenRegistry, err)
	}
	defer lxss.Close()

	guids, err := lxss.ReadSubKeyNames(-1)
	if err != nil {
		return nil, errx.Wrap(ErrReadRegistry, err)
	}

	var names []string
	for _, guid := range guids {
		sub, err := registry.OpenKey(lxss, guid, registry.READ)
		if err != nil {
			continue
		}
		name, _, err := sub.GetStringValue("DistributionName")
		sub.Close()
		if err != nil {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

func (s *system) DistroInfo(name string) (*DistroInfo, error) {
	lxss, err := registry.OpenKey(registry.CURRENT_USER, lxssKeyPath, registry.READ)
	if err != nil {
		return nil, errx.Wrap(ErrOpenRegistry, err)
	}
	defer lxss.Close()

	guids, err := lxss.ReadSubKeyNames(-1)
	if err != nil {
		return nil, errx.Wrap(ErrReadRegistry, err)
	}

	for _, guid := range guids {
		sub, err := registry.OpenKey(lxss, guid, registry.READ)
		if err != nil {
			continue
		}
		distroName, _, err := sub.GetStringValue("DistributionName")
		if err != nil || !strings.EqualFold(distroName, name) {
			sub.Close()
			continue
		}

		info := &DistroInfo{Name: distroName, GUID: guid}
		if v, _, err := sub.GetStringValue("BasePath"); err == nil {
			info.BasePath = v
		}
		if v, _, err := sub.GetStringValue("Flavor"); err == nil {
			info.Flavor = v
		}
		if v, _, err := sub.GetStringValue("PackageFamilyName"); err == nil {
			info.PackageFamilyName = v
		}
		if v, _, err := sub.GetStringValue("osVersion"); err == nil {
			info.OSVersion = v
		}
		sub.Close()
		return info, nil
	}
	return nil, errx.With(api.ErrNotFound, ": %s", name)
}

func inheritablePipe() (read, write windows.Handle, err error) {
	sa := &windows.SecurityAttributes{InheritHandle: 1}
	sa.Length = uint32(unsafe.Sizeof(*sa))
	if err := windows.CreatePipe(&read, &write, sa, 0); err != nil {
		return 0, 0, errx.Wrap(ErrCreatePipe, err)
	}
	// Keep the read end out of the child.
	_ = windows.SetHandleInformation(read, windows.HANDLE_FLAG_INHERIT, 0)
	return read, write, nil
}

// drainPipe reads the pipe to EOF. A broken pipe is the normal end of
// stream once the guest closes its write end.
func drainPipe(h windows.Handle) []byte {
	var out []byte
	buf := make([]byte, 4096)
	for {
		var n uint32
		err := windows.ReadFile(h, buf, &n, nil)
		if n > 0 {
			out = append(out, buf[:n]...)
		}
		if err != nil {
			return out
		}
	}
}

func boolArg(b bool) uintptr {
	if b {
		return 1
	}
	return 0
}
