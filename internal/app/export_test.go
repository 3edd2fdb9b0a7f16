package app

// CacheKey exposes cacheKey for tests.
var CacheKey = cacheKey
