package cache

// Keyer builds cache keys for the different kinds of cached data.
type Keyer interface {
	// HTTPKey returns the key for a raw HTTP response.
	HTTPKey(namespace, key string) string

	// PagesKey returns the key for the converted pages of an article.
	PagesKey(article string, opts PagesKeyOpts) string
}

// PagesKeyOpts holds the inputs that change how an article is converted.
// Pages converted with different options are cached separately.
type PagesKeyOpts struct {
	ImageBase string   `json:"image_base"`
	Files     []string `json:"files,omitempty"`
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a [DefaultKeyer].
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// HTTPKey returns "http:<namespace>:<key>".
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// PagesKey hashes the article name together with opts.
func (DefaultKeyer) PagesKey(article string, opts PagesKeyOpts) string {
	return hashKey("pages", article, opts)
}

// ScopedKeyer prefixes every key, typically with the content repository
// coordinates, so one backend can serve several repositories.
//
//	keyer := cache.NewScopedKeyer(nil, "TroelsMortensen/Codelabs2@master:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner with prefix. A nil inner uses [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// HTTPKey returns the prefixed HTTP response key.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

// PagesKey returns the prefixed pages key.
func (k *ScopedKeyer) PagesKey(article string, opts PagesKeyOpts) string {
	return k.prefix + k.inner.PagesKey(article, opts)
}
