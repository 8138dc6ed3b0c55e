package domain

// Cache key prefixes
const (
	CachePrefixUsers        = "users"
	CachePrefixProductsList = "products_list"
)

// CacheKey identifies a cached value. Keys with a prefix render as
// "prefix_key" so a whole prefix can be cleared at once.
type CacheKey struct {
	Prefix string
	Key    string
}

// String renders the key as stored
func (k CacheKey) String() string {
	if k.Prefix == "" {
		return k.Key
	}
	return k.Prefix + "_" + k.Key
}
