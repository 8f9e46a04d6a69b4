package distro

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssantosv/wslkit/pkg/api"
	"github.com/ssantosv/wslkit/pkg/wslapi"
)

func TestRegisterThenQueryThenUnregister(t *testing.T) {
	mock := wslapi.NewMock()
	reg := NewRegistry(mock)

	rec, err := reg.Register("X", `C:\images\x.tar.gz`)
	require.NoError(t, err)
	assert.Equal(t, "X", rec.Name)
	assert.Equal(t, 2, rec.Version)

	ok, err := reg.IsRegistered("X")
	require.NoError(t, err)
	assert.True(t, ok)

	records, err := reg.List()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "X", records[0].Name)

	require.NoError(t, reg.Unregister("X"))

	ok, err = reg.IsRegistered("X")
	require.NoError(t, err)
	assert.False(t, ok)

	records, err = reg.List()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestGetCarriesRegistryMetadata(t *testing.T) {
	mock := wslapi.NewMock()
	reg := NewRegistry(mock)

	_, err := reg.Register("Ubuntu", `C:\images\ubuntu.tar.gz`)
	require.NoError(t, err)

	rec, err := reg.Get("Ubuntu")
	require.NoError(t, err)
	assert.Equal(t, "{Ubuntu}", rec.GUID)
	assert.Equal(t, `C:\images\ubuntu.tar.gz`, rec.BasePath)
}

func TestRegisterConflict(t *testing.T) {
	mock := wslapi.NewMock()
	reg := NewRegistry(mock)

	_, err := reg.Register("Ubuntu", `C:\u.tar.gz`)
	require.NoError(t, err)

	_, err = reg.Register("Ubuntu", `C:\u.tar.gz`)
	assert.True(t, errors.Is(err, api.ErrConflict))
}

func TestUnregisterLenientDefault(t *testing.T) {
	reg := NewRegistry(wslapi.NewMock())
	assert.NoError(t, reg.Unregister("ghost"))
}

func TestUnregisterStrict(t *testing.T) {
	reg := NewRegistry(wslapi.NewMock(), WithStrictUnregister())
	err := reg.Unregister("ghost")
	assert.True(t, errors.Is(err, api.ErrNotFound))
}

func TestListSorted(t *testing.T) {
	mock := wslapi.NewMock()
	mock.Add("Zeta", wslapi.DistroConfig{Version: 2})
	mock.Add("Alpha", wslapi.DistroConfig{Version: 1})

	records, err := NewRegistry(mock).List()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Alpha", records[0].Name)
	assert.Equal(t, "Zeta", records[1].Name)
}

func TestConfigurePartialUpdate(t *testing.T) {
	mock := wslapi.NewMock()
	mock.Add("Ubuntu", wslapi.DistroConfig{
		Version:    2,
		DefaultUID: 1000,
		Flags:      (api.FlagEnableInterop | api.FlagEnableDriveMounting).WithVersion(2),
	})
	reg := NewRegistry(mock)

	uid := uint32(0)
	require.NoError(t, reg.Configure("Ubuntu", ConfigureOptions{DefaultUID: &uid}))

	rec, err := reg.Get("Ubuntu")
	require.NoError(t, err)
	assert.Equal(t, uint32(0), rec.DefaultUID)
	// untouched fields keep their values
	assert.True(t, rec.Flags.Has(api.FlagEnableInterop))
	assert.Equal(t, 2, rec.Version)
}

func TestConfigureInvalidVersion(t *testing.T) {
	mock := wslapi.NewMock()
	mock.Add("Ubuntu", wslapi.DistroConfig{Version: 2})

	v := 3
	err := NewRegistry(mock).Configure("Ubuntu", ConfigureOptions{Version: &v})
	assert.True(t, errors.Is(err, api.ErrInvalidArgument))
}

func TestSetFlag(t *testing.T) {
	mock := wslapi.NewMock()
	mock.Add("Ubuntu", wslapi.DistroConfig{
		Version: 2,
		Flags:   api.FlagEnableInterop.WithVersion(2),
	})
	reg := NewRegistry(mock)

	require.NoError(t, reg.SetFlag("Ubuntu", api.FlagAppendNTPath, true))
	rec, err := reg.Get("Ubuntu")
	require.NoError(t, err)
	assert.True(t, rec.Flags.Has(api.FlagAppendNTPath))
	assert.True(t, rec.Flags.Has(api.FlagEnableInterop))

	require.NoError(t, reg.SetFlag("Ubuntu", api.FlagEnableInterop, false))
	rec, err = reg.Get("Ubuntu")
	require.NoError(t, err)
	assert.False(t, rec.Flags.Has(api.FlagEnableInterop))
	assert.Equal(t, 2, rec.Version, "version bit must survive flag edits")
}

func TestListOmitsFailingRecords(t *testing.T) {
	mock := wslapi.NewMock()
	mock.Add("Good", wslapi.DistroConfig{Version: 2})

	// A name present in enumeration whose extended query fails must be
	// skipped, not fatal to the whole list.
	records, err := NewRegistry(&extraNameSurface{API: mock}).List()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Good", records[0].Name)
}

// extraNameSurface reports a phantom distribution name whose extended
// query fails with not-found.
type extraNameSurface struct {
	wslapi.API
}

func (s *extraNameSurface) DistributionNames() ([]string, error) {
	names, err := s.API.DistributionNames()
	return append(names, "phantom"), err
}
