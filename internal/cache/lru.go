// Package cache memoizes schema inference across conversions.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/usestring/har2raml/pkg/raml"
)

// SchemaCache is a thread-safe LRU of generated schema documents keyed by a
// digest of the example they were inferred from.
type SchemaCache struct {
	cache    *lru.Cache[string, string]
	generate raml.SchemaGenerator

	hits, misses atomic.Int64
}

// NewSchemaCache wraps generate with an LRU holding at most maxItems documents.
func NewSchemaCache(maxItems int, generate raml.SchemaGenerator) (*SchemaCache, error) {
	c, err := lru.New[string, string](maxItems)
	if err != nil {
		return nil, err
	}
	return &SchemaCache{cache: c, generate: generate}, nil
}

// Generate returns the cached document for example, inferring it on a miss.
// Failures are not cached. It has the raml.SchemaGenerator signature.
func (c *SchemaCache) Generate(example string) (string, error) {
	key := digest(example)
	if doc, ok := c.cache.Get(key); ok {
		c.hits.Add(1)
		return doc, nil
	}
	c.misses.Add(1)
	doc, err := c.generate(example)
	if err != nil {
		return "", err
	}
	c.cache.Add(key, doc)
	return doc, nil
}

// Stats reports cache hits and misses since creation.
func (c *SchemaCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Len returns the number of cached documents.
func (c *SchemaCache) Len() int {
	return c.cache.Len()
}

func digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
