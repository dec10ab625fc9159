package cache

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapCache(t *testing.T) {
	mc := NewMapCache()

	err := mc.Acquire("key1")
	require.NoError(t, err)

	err = mc.Acquire("key1")
	require.ErrorIs(t, err, ErrExists)

	err = mc.Acquire("key2")
	require.NoError(t, err)

	mc.Release("key1")

	err = mc.Acquire("key1")
	require.NoError(t, err)

	err = mc.Acquire("key2")
	require.ErrorIs(t, err, ErrExists)
}
