package cache

// Cache holds serialized responses keyed by string.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) bool
	Clear()
}
