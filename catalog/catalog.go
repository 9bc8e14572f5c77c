package catalog

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"
)

// MessageCatalog maps message keys to templates for a single language.
// It is safe for concurrent lookups once built.
type MessageCatalog struct {
	tag     language.Tag
	builder *catalog.Builder
}

// New creates a catalog for tag holding the given key/template pairs
func New(tag language.Tag, messages map[string]string) (*MessageCatalog, error) {
	b := catalog.NewBuilder(catalog.Fallback(tag))
	for key, tmpl := range messages {
		if err := b.SetString(tag, key, tmpl); err != nil {
			return nil, err
		}
	}
	return &MessageCatalog{tag: tag, builder: b}, nil
}

// MustNew is like New but panics on error
func MustNew(tag language.Tag, messages map[string]string) *MessageCatalog {
	c, err := New(tag, messages)
	if err != nil {
		panic(err)
	}
	return c
}

// Tag returns the language of the catalog
func (c *MessageCatalog) Tag() language.Tag {
	return c.tag
}

// Catalog exposes the underlying x/text catalog, e.g. for message.NewPrinter
func (c *MessageCatalog) Catalog() catalog.Catalog {
	return c.builder
}

// Lookup returns the raw template stored under key
func (c *MessageCatalog) Lookup(key string) (string, bool) {
	if c == nil || key == "" {
		return "", false
	}
	var r rawRenderer
	if err := c.builder.Context(c.tag, &r).Execute(key); err != nil {
		return "", false
	}
	return r.String(), true
}

// rawRenderer collects the template text without applying any arguments;
// placeholder substitution is done by the formatter.
type rawRenderer struct {
	strings.Builder
}

func (r *rawRenderer) Render(s string) {
	r.WriteString(s)
}

func (r *rawRenderer) Arg(int) interface{} {
	return nil
}
