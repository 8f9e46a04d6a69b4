package api

import "strings"

// DistroFlags mirrors the wslapi WSL_DISTRIBUTION_FLAGS enumeration.
// https://learn.microsoft.com/en-us/windows/win32/api/wslapi/ne-wslapi-wsl_distribution_flags
type DistroFlags uint32

const (
	FlagNone                DistroFlags = 0x0
	FlagEnableInterop       DistroFlags = 0x1
	FlagAppendNTPath        DistroFlags = 0x2
	FlagEnableDriveMounting DistroFlags = 0x4

	// flagWSL2 is the undocumented 4th bit carrying the WSL version.
	// See github.com/microsoft/WSL-DistroLauncher issue 96.
	flagWSL2 DistroFlags = 0x8
)

// Version returns the WSL version (1 or 2) encoded in the flags.
func (f DistroFlags) Version() int {
	if f&flagWSL2 != 0 {
		return 2
	}
	return 1
}

// WithVersion returns the flags with the version bit set for v.
// Any v other than 2 selects version 1.
func (f DistroFlags) WithVersion(v int) DistroFlags {
	if v == 2 {
		return f | flagWSL2
	}
	return f &^ flagWSL2
}

// Has reports whether all bits of flag are set.
func (f DistroFlags) Has(flag DistroFlags) bool {
	return f&flag == flag
}

// String renders the documented flag names, comma separated.
func (f DistroFlags) String() string {
	if f&(FlagEnableInterop|FlagAppendNTPath|FlagEnableDriveMounting) == 0 {
		return "none"
	}
	var names []string
	if f.Has(FlagEnableInterop) {
		names = append(names, "interop")
	}
	if f.Has(FlagAppendNTPath) {
		names = append(names, "append-nt-path")
	}
	if f.Has(FlagEnableDriveMounting) {
		names = append(names, "drive-mounting")
	}
	return strings.Join(names, ",")
}
