package blockcache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staking_resolver/internal/adapter/blockcache"
	"staking_resolver/internal/port"
)

var _ port.BlockCache[string] = (*blockcache.BlockCache[string])(nil)

func TestBlockCache_StartsEmpty(t *testing.T) {
	c, err := blockcache.NewBlockCache[string]()
	require.NoError(t, err)

	assert.False(t, c.Has(1))
	_, ok := c.Get(1, "A")
	assert.False(t, ok)
}

func TestBlockCache_ReplaceEvictsPreviousBlock(t *testing.T) {
	c, err := blockcache.NewBlockCache[string]()
	require.NoError(t, err)

	c.ReplaceBlock(100, map[string]string{"A": "a", "B": "b"})
	v, ok := c.Get(100, "A")
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	assert.Equal(t, 2, c.Len(100))

	c.ReplaceBlock(101, map[string]string{"C": "c"})
	assert.Equal(t, 0, c.Len(100))
	assert.Equal(t, 1, c.Len(101))
	assert.False(t, c.Has(100))
	_, ok = c.Get(100, "A")
	assert.False(t, ok)

	v, ok = c.Get(101, "C")
	assert.True(t, ok)
	assert.Equal(t, "c", v)
}

func TestBlockCache_ReplaceSameBlockDoesNotMerge(t *testing.T) {
	c, err := blockcache.NewBlockCache[int]()
	require.NoError(t, err)

	c.ReplaceBlock(7, map[string]int{"A": 1})
	c.ReplaceBlock(7, map[string]int{"B": 2})

	_, ok := c.Get(7, "A")
	assert.False(t, ok)
	v, ok := c.Get(7, "B")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestBlockCache_EmptyBlockIsResident(t *testing.T) {
	c, err := blockcache.NewBlockCache[int]()
	require.NoError(t, err)

	c.ReplaceBlock(5, nil)
	assert.True(t, c.Has(5))
	assert.Equal(t, 0, c.Len(5))
	_, ok := c.Get(5, "A")
	assert.False(t, ok)
}

func TestBlockCache_Reset(t *testing.T) {
	c, err := blockcache.NewBlockCache[int]()
	require.NoError(t, err)

	c.ReplaceBlock(9, map[string]int{"A": 1})
	c.Reset()
	assert.False(t, c.Has(9))
}
