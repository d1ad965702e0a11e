package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation, for
// example one prefix per server deployment sharing a Redis instance.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// TranslationKey generates a prefixed key for translation caching.
func (k *ScopedKeyer) TranslationKey(sourceHash string, opts TranslationKeyOpts) string {
	return k.prefix + k.inner.TranslationKey(sourceHash, opts)
}
