package blockcache

import (
	lru "github.com/hashicorp/golang-lru"

	"staking_resolver/internal/domain"
)

// residentBlocks bounds memory to the block currently being indexed. The
// cache is created empty and only ever reset by the next block's first miss.
const residentBlocks = 1

type BlockCache[V any] struct {
	lruCache *lru.Cache
}

func NewBlockCache[V any]() (*BlockCache[V], error) {
	c, err := lru.New(residentBlocks)
	if err != nil {
		return nil, err
	}
	return &BlockCache[V]{lruCache: c}, nil
}

func (c *BlockCache[V]) Has(block domain.BlockID) bool {
	return c.lruCache.Contains(block)
}

func (c *BlockCache[V]) Get(block domain.BlockID, account domain.AccountAddress) (V, bool) {
	var zero V
	raw, ok := c.lruCache.Get(block)
	if !ok {
		return zero, false
	}
	v, ok := raw.(map[domain.AccountAddress]V)[account]
	return v, ok
}

// Len is the number of accounts cached for block, 0 when it is not resident.
func (c *BlockCache[V]) Len(block domain.BlockID) int {
	raw, ok := c.lruCache.Peek(block)
	if !ok {
		return 0
	}
	return len(raw.(map[domain.AccountAddress]V))
}

func (c *BlockCache[V]) ReplaceBlock(block domain.BlockID, values map[domain.AccountAddress]V) {
	if values == nil {
		values = make(map[domain.AccountAddress]V)
	}
	c.lruCache.Purge()
	c.lruCache.Add(block, values)
}

func (c *BlockCache[V]) Reset() {
	c.lruCache.Purge()
}
