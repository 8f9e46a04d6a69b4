// Package distro tracks the set of installed WSL distributions through
// the native control surface. The registry holds no cache of its own:
// registration state changes out-of-band (other processes, the OS), so
// every call re-queries the surface.
package distro

import (
	"errors"
	"sort"

	"github.com/ssantosv/wslkit/internal/errx"
	"github.com/ssantosv/wslkit/pkg/api"
	"github.com/ssantosv/wslkit/pkg/wslapi"
)

// State describes a distribution's lifecycle state as far as the native
// surface can tell. Running/stopped refinement comes from wsl.exe and is
// filled in by the controller.
type State string

const (
	StateRegistered State = "registered"
	StateRunning    State = "running"
	StateStopped    State = "stopped"
)

// Record is one registered distribution with its extended configuration
// and, when the Lxss hive has an entry for it, its registry metadata.
type Record struct {
	Name       string
	State      State
	Version    int
	DefaultUID uint32
	Flags      api.DistroFlags
	Env        map[string]string

	// Registry metadata, best effort: left blank when the hive lookup
	// fails so Get still returns the core configuration.
	GUID              string
	BasePath          string
	Flavor            string
	PackageFamilyName string
	OSVersion         string
}

// Registry exposes registration, removal and query operations. The
// zero-strictness default makes Unregister lenient: removing a missing
// name succeeds silently.
type Registry struct {
	surface wslapi.API
	strict  bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithStrictUnregister makes Unregister fail with api.ErrNotFound when
// the name is not registered.
func WithStrictUnregister() Option {
	return func(r *Registry) { r.strict = true }
}

// NewRegistry wraps a control surface. Passing nil selects the system
// surface.
func NewRegistry(surface wslapi.API, opts ...Option) *Registry {
	if surface == nil {
		surface = wslapi.System()
	}
	r := &Registry{surface: surface}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// List enumerates registered distributions with their extended
// configuration, sorted by name. A record whose extended query fails is
// omitted rather than failing the whole list.
func (r *Registry) List() ([]Record, error) {
	names, err := r.surface.DistributionNames()
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(names))
	for _, name := range names {
		rec, err := r.Get(name)
		if err != nil {
			continue
		}
		records = append(records, *rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	return records, nil
}

// Get queries one distribution's extended configuration and registry
// metadata.
func (r *Registry) Get(name string) (*Record, error) {
	cfg, err := r.surface.GetDistributionConfiguration(name)
	if err != nil {
		return nil, err
	}
	rec := &Record{
		Name:       name,
		State:      StateRegistered,
		Version:    cfg.Version,
		DefaultUID: cfg.DefaultUID,
		Flags:      cfg.Flags,
		Env:        cfg.Env,
	}
	if info, err := r.surface.DistroInfo(name); err == nil {
		rec.GUID = info.GUID
		rec.BasePath = info.BasePath
		rec.Flavor = info.Flavor
		rec.PackageFamilyName = info.PackageFamilyName
		rec.OSVersion = info.OSVersion
	}
	return rec, nil
}

// IsRegistered is a cheap membership check without the extended query.
func (r *Registry) IsRegistered(name string) (bool, error) {
	return r.surface.IsDistributionRegistered(name)
}

// Register installs a distribution from a rootfs tarball. Registering a
// name that already exists fails with api.ErrConflict.
func (r *Registry) Register(name, tarGzPath string) (*Record, error) {
	registered, err := r.surface.IsDistributionRegistered(name)
	if err != nil {
		return nil, err
	}
	if registered {
		return nil, errx.With(api.ErrConflict, ": %s", name)
	}
	if err := r.surface.RegisterDistribution(name, tarGzPath); err != nil {
		return nil, err
	}
	return r.Get(name)
}

// Unregister removes a distribution. With the lenient default a missing
// name succeeds silently; WithStrictUnregister surfaces api.ErrNotFound.
func (r *Registry) Unregister(name string) error {
	err := r.surface.UnregisterDistribution(name)
	if err == nil {
		return nil
	}
	if !r.strict && errors.Is(err, api.ErrNotFound) {
		return nil
	}
	return err
}

// ConfigureOptions is a partial update: nil fields keep the current
// value, matching the read-modify-write the host API requires.
type ConfigureOptions struct {
	DefaultUID *uint32
	Flags      *api.DistroFlags
	Version    *int
}

// Configure applies a partial configuration update.
func (r *Registry) Configure(name string, opts ConfigureOptions) error {
	if opts.Version != nil && *opts.Version != 1 && *opts.Version != 2 {
		return errx.With(api.ErrInvalidArgument, ": WSL version must be 1 or 2")
	}

	current, err := r.surface.GetDistributionConfiguration(name)
	if err != nil {
		return err
	}

	uid := current.DefaultUID
	if opts.DefaultUID != nil {
		uid = *opts.DefaultUID
	}
	flags := current.Flags
	if opts.Flags != nil {
		// Caller-supplied flags never clobber the version bit.
		flags = opts.Flags.WithVersion(current.Version)
	}
	if opts.Version != nil {
		flags = flags.WithVersion(*opts.Version)
	}

	return r.surface.ConfigureDistribution(name, uid, flags)
}

// SetFlag flips one flag while keeping the others unchanged.
func (r *Registry) SetFlag(name string, flag api.DistroFlags, enable bool) error {
	current, err := r.surface.GetDistributionConfiguration(name)
	if err != nil {
		return err
	}
	flags := current.Flags
	if enable {
		flags |= flag
	} else {
		flags &^= flag
	}
	return r.surface.ConfigureDistribution(name, current.DefaultUID, flags)
}
