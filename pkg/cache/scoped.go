package cache

// ScopedKeyer wraps a Keyer with a prefix so several services can share one
// Redis without colliding:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "astrolabe:staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// A nil inner keyer means DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// LayoutKey returns the prefixed layout key.
func (k *ScopedKeyer) LayoutKey(canvasHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(canvasHash, opts)
}
