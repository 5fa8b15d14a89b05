package cache

// ScopedKeyer prefixes every key of an inner Keyer, so several trees (or
// several store keys) can share one cache without colliding.
//
//	keyer := cache.NewScopedKeyer(nil, "family-canvas-data:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner uses
// [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// PositionsKey implements Keyer.
func (k *ScopedKeyer) PositionsKey(treeKey string) string {
	return k.prefix + k.inner.PositionsKey(treeKey)
}

// RenderKey implements Keyer.
func (k *ScopedKeyer) RenderKey(layoutHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(layoutHash, opts)
}
