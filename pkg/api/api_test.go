package api

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecResultSuccess(t *testing.T) {
	assert.True(t, (&ExecResult{ExitCode: 0}).Success())
	assert.False(t, (&ExecResult{ExitCode: 1}).Success())

	var nilResult *ExecResult
	assert.False(t, nilResult.Success())
}

func TestDistroFlagsVersion(t *testing.T) {
	assert.Equal(t, 1, FlagNone.Version())
	assert.Equal(t, 2, FlagNone.WithVersion(2).Version())
	assert.Equal(t, 1, FlagNone.WithVersion(2).WithVersion(1).Version())

	// Version bit must not disturb documented flags.
	f := FlagEnableInterop | FlagEnableDriveMounting
	assert.True(t, f.WithVersion(2).Has(FlagEnableInterop))
	assert.True(t, f.WithVersion(2).Has(FlagEnableDriveMounting))
}

func TestDistroFlagsString(t *testing.T) {
	assert.Equal(t, "none", FlagNone.String())
	assert.Equal(t, "none", FlagNone.WithVersion(2).String())
	assert.Equal(t, "interop,drive-mounting", (FlagEnableInterop | FlagEnableDriveMounting).String())
}

func TestNativeErrorMapping(t *testing.T) {
	assert.NoError(t, NativeError(0))

	cases := map[uint32]error{
		0x80070002: ErrNotFound,
		0x80070003: ErrNotFound,
		0x80070490: ErrNotFound,
		0x80070005: ErrAccessDenied,
		0x80070057: ErrInvalidArgument,
		0x800700B7: ErrConflict,
		0x8007019E: ErrBackendUnavailable,
	}
	for hr, want := range cases {
		err := NativeError(hr)
		assert.True(t, errors.Is(err, want), "hresult 0x%08X", hr)
	}

	// Unknown statuses fall into the internal bucket, never a generic kind.
	assert.True(t, errors.Is(NativeError(0x80004005), ErrInternal))
}
