package errx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errSentinel = errors.New("sentinel")

func TestWith(t *testing.T) {
	err := With(errSentinel, ": more detail")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errSentinel))
	assert.Equal(t, "sentinel: more detail", err.Error())
}

func TestWithFormats(t *testing.T) {
	cause := errors.New("cause")
	err := With(errSentinel, ": item %q: %w", "x", cause)
	assert.True(t, errors.Is(err, errSentinel))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, `sentinel: item "x": cause`, err.Error())
}

func TestWrap(t *testing.T) {
	cause := errors.New("cause")
	err := Wrap(errSentinel, cause)
	assert.True(t, errors.Is(err, errSentinel))
	assert.True(t, errors.Is(err, cause))
}

func TestWrapf(t *testing.T) {
	cause := errors.New("cause")
	err := Wrapf(errSentinel, cause, "item %q", "x")
	assert.True(t, errors.Is(err, errSentinel))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), `item "x"`)
}
