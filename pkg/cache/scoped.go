package cache

// ScopedKeyer prefixes every key of an inner [Keyer], so several deployments
// can share one redis without reading each other's trees. The CLI enables it
// through CONTENTSTACK_CACHE_PREFIX.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) TreeKey(stateHash string, opts TreeKeyOpts) string {
	return k.prefix + k.inner.TreeKey(stateHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(treeHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(treeHash, opts)
}

var _ Keyer = (*ScopedKeyer)(nil)
