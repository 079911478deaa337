package cache

// ScopedKeyer prepends a namespace to every key from an inner Keyer, so
// several deployments (or a test run) can share one Redis database without
// reading each other's entries.
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "gridpath:staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, which defaults to DefaultKeyer when nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) SolveKey(gridText, mode string) string {
	return k.prefix + k.inner.SolveKey(gridText, mode)
}
