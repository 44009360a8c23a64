package regmap

import "errors"

// Domain errors for the regmap package.
var (
	// ErrCacheOnly is returned when Sync is called while the regmap is
	// still in cache-only mode.
	ErrCacheOnly = errors.New("regmap: cannot sync while cache-only")

	// ErrCacheMiss is returned by cache-only reads of an address that was
	// never written or read while the cache was live.
	ErrCacheMiss = errors.New("regmap: address not in cache")

	// ErrCacheDisabled is returned when cache-only mode is requested on a
	// regmap built without a cache mirror.
	ErrCacheDisabled = errors.New("regmap: cache is disabled")
)
