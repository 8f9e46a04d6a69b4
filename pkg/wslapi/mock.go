package wslapi

import (
	"sync"

	"github.com/ssantosv/wslkit/pkg/api"
)

// Mock is an in-memory API implementation for tests. It mimics the host
// surface's observable behavior: registering a taken name fails with the
// already-exists status, operating on a missing name fails with not-found.
// Safe for concurrent use.
type Mock struct {
	mu      sync.Mutex
	distros map[string]*MockDistro

	// LaunchFunc, when set, handles Launch calls. The default reports
	// exit code 0 with empty output.
	LaunchFunc func(distro, command string) (*LaunchResult, error)
	// InteractiveExit is returned from LaunchInteractive.
	InteractiveExit uint32
	// Err, when set, fails every call. Set it to api.ErrBackendUnavailable
	// to simulate a missing control surface.
	Err error
}

// MockDistro is the mutable state the Mock keeps per distribution.
type MockDistro struct {
	Config DistroConfig
	Info   DistroInfo
}

// NewMock returns an empty mock surface.
func NewMock() *Mock {
	return &Mock{distros: make(map[string]*MockDistro)}
}

// Add seeds a registered distribution without going through Register.
func (m *Mock) Add(name string, cfg DistroConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cfg.Version == 0 {
		cfg.Version = cfg.Flags.Version()
	}
	m.distros[name] = &MockDistro{
		Config: cfg,
		Info:   DistroInfo{Name: name, GUID: "{" + name + "}"},
	}
}

func (m *Mock) Launch(distro, command string, useCWD bool) (*LaunchResult, error) {
	m.mu.Lock()
	fn := m.LaunchFunc
	err := m.Err
	_, ok := m.distros[distro]
	m.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, api.NativeError(0x80070490)
	}
	if fn != nil {
		return fn(distro, command)
	}
	return &LaunchResult{}, nil
}

func (m *Mock) LaunchInteractive(distro, command string, useCWD bool) (uint32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	if _, ok := m.distros[distro]; !ok {
		return 0, api.NativeError(0x80070490)
	}
	return m.InteractiveExit, nil
}

func (m *Mock) RegisterDistribution(name, tarGzPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.distros[name]; ok {
		return api.NativeError(0x800700B7)
	}
	m.distros[name] = &MockDistro{
		Config: DistroConfig{
			Version: 2,
			Flags:   (api.FlagEnableInterop | api.FlagAppendNTPath | api.FlagEnableDriveMounting).WithVersion(2),
			Env:     map[string]string{},
		},
		Info: DistroInfo{Name: name, GUID: "{" + name + "}", BasePath: tarGzPath},
	}
	return nil
}

func (m *Mock) UnregisterDistribution(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.distros[name]; !ok {
		return api.NativeError(0x80070490)
	}
	delete(m.distros, name)
	return nil
}

func (m *Mock) IsDistributionRegistered(name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	_, ok := m.distros[name]
	return ok, nil
}

func (m *Mock) ConfigureDistribution(name string, defaultUID uint32, flags api.DistroFlags) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	d, ok := m.distros[name]
	if !ok {
		return api.NativeError(0x80070490)
	}
	d.Config.DefaultUID = defaultUID
	d.Config.Flags = flags
	d.Config.Version = flags.Version()
	return nil
}

func (m *Mock) GetDistributionConfiguration(name string) (*DistroConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	d, ok := m.distros[name]
	if !ok {
		return nil, api.NativeError(0x80070490)
	}
	cfg := d.Config
	cfg.Env = make(map[string]string, len(d.Config.Env))
	for k, v := range d.Config.Env {
		cfg.Env[k] = v
	}
	return &cfg, nil
}

func (m *Mock) DistributionNames() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	names := make([]string, 0, len(m.distros))
	for name := range m.distros {
		names = append(names, name)
	}
	return names, nil
}

func (m *Mock) DistroInfo(name string) (*DistroInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	d, ok := m.distros[name]
	if !ok {
		return nil, api.NativeError(0x80070490)
	}
	info := d.Info
	return &info, nil
}
