package cache

// ScopedKeyer prefixes every key from an inner Keyer. The CLI scopes keys by
// release so a new conversion algorithm never serves stale frames.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner with prefix. A nil inner uses DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ConvertKey returns the prefixed conversion key.
func (k *ScopedKeyer) ConvertKey(contentHash string, opts ConvertKeyOpts) string {
	return k.prefix + k.inner.ConvertKey(contentHash, opts)
}
