package cache

// ScopedKeyer wraps a Keyer with a prefix so several users of one backend
// (the CLI and a preview server sharing a Redis instance) keep separate
// namespaces.
//
// Example usage:
//
//	// Keys written by "collage serve"
//	serveKeyer := NewScopedKeyer(NewDefaultKeyer(), "serve:")
//
//	// Keys written by "collage render"
//	cliKeyer := NewDefaultKeyer()
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

// RenderKey generates a prefixed key for a rendered collage.
func (k *ScopedKeyer) RenderKey(opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(opts)
}

// LayoutKey generates a prefixed key for a layout preview.
func (k *ScopedKeyer) LayoutKey(layout string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(layout, opts)
}
