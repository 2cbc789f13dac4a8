package utils

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// cacheEntry 带过期时间的缓存项
type cacheEntry[T any] struct {
	value     T
	expiresAt time.Time
}

// SearchCache 定长 LRU + TTL 缓存，用于缓存搜索结果
type SearchCache[T any] struct {
	storage *lru.Cache[string, cacheEntry[T]]
	ttl     time.Duration
}

// NewSearchCache size 为最大条数，ttl 为有效期
func NewSearchCache[T any](size int, ttl time.Duration) *SearchCache[T] {
	if size <= 0 {
		size = 128
	}
	c, _ := lru.New[string, cacheEntry[T]](size)
	return &SearchCache[T]{storage: c, ttl: ttl}
}

func (c *SearchCache[T]) Set(key string, value T) {
	c.storage.Add(key, cacheEntry[T]{value: value, expiresAt: time.Now().Add(c.ttl)})
}

// Get 读取缓存，过期项会被移除
func (c *SearchCache[T]) Get(key string) (T, bool) {
	var zero T
	entry, ok := c.storage.Get(key)
	if !ok {
		return zero, false
	}
	if time.Now().After(entry.expiresAt) {
		c.storage.Remove(key)
		return zero, false
	}
	return entry.value, true
}

// Purge 清空全部缓存，数据变更后调用
func (c *SearchCache[T]) Purge() {
	c.storage.Purge()
}

func (c *SearchCache[T]) Len() int {
	return c.storage.Len()
}
