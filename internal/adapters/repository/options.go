package repository

// Option applies a configuration option to the CachedPlayerRepo.
type Option func(*CachedPlayerRepo)

// WithCacheSize bounds the number of player histories kept in memory.
// Zero or negative means unbounded.
func WithCacheSize(n int) Option {
	return func(c *CachedPlayerRepo) {
		c.maxSize = n
	}
}
