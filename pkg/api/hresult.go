package api

import "fmt"

// HRESULT values returned by the wslapi control surface. Zero is S_OK.
// Non-success values are Win32 error codes wrapped in the 0x8007 facility.
const (
	hrOK                 = 0
	hrFileNotFound       = 0x80070002
	hrPathNotFound       = 0x80070003
	hrAccessDenied       = 0x80070005
	hrInvalidParameter   = 0x80070057
	hrAlreadyExists      = 0x800700B7
	hrWSLDistroNotFound  = 0x80070490 // ERROR_NOT_FOUND
	hrWSLOptionalCompOff = 0x8007019E // WSL feature not enabled
)

// NativeError maps a wslapi HRESULT to exactly one taxonomy sentinel.
// A zero status returns nil.
func NativeError(hr uint32) error {
	switch hr {
	case hrOK:
		return nil
	case hrFileNotFound, hrPathNotFound, hrWSLDistroNotFound:
		return fmt.Errorf("%w (hresult 0x%08X)", ErrNotFound, hr)
	case hrAccessDenied:
		return fmt.Errorf("%w (hresult 0x%08X)", ErrAccessDenied, hr)
	case hrInvalidParameter:
		return fmt.Errorf("%w (hresult 0x%08X)", ErrInvalidArgument, hr)
	case hrAlreadyExists:
		return fmt.Errorf("%w (hresult 0x%08X)", ErrConflict, hr)
	case hrWSLOptionalCompOff:
		return fmt.Errorf("%w (hresult 0x%08X)", ErrBackendUnavailable, hr)
	default:
		return fmt.Errorf("%w (hresult 0x%08X)", ErrInternal, hr)
	}
}
