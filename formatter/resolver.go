package formatter

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/philipp01105/jsonlog/catalog"
	"github.com/philipp01105/jsonlog/core"
)

// Resolver turns raw log messages into display text using positional
// parameters and the message catalogs of the logger registry. Catalog
// lookups are cached per logger name for the lifetime of the Resolver.
type Resolver struct {
	catalogs *catalog.Cache
	printer  *message.Printer
}

// NewResolver creates a resolver over registry. Parameters are printed
// for the language tag.
func NewResolver(registry catalog.Registry, tag language.Tag) *Resolver {
	if tag == language.Und {
		tag = language.English
	}
	return &Resolver{
		catalogs: catalog.NewCache(registry),
		printer:  message.NewPrinter(tag),
	}
}

// Resolve returns the display text of msg. A message that contains a
// "{0" placeholder and comes with parameters is substituted directly.
// Otherwise msg is looked up as a key in the catalog of loggerName and
// the template found there is substituted. Without a catalog or key the
// raw message is returned unchanged.
func (r *Resolver) Resolve(loggerName, msg string, params []any) string {
	if len(params) > 0 && strings.Contains(msg, "{0") && strings.Contains(msg, "}") {
		return FormatTemplate(r.printer, msg, params)
	}
	if cat, ok := r.catalogs.Resolve(loggerName); ok {
		if tmpl, ok := cat.Lookup(msg); ok {
			return FormatTemplate(r.printer, tmpl, params)
		}
	}
	return msg
}

// ResolveCatalog returns the catalog of loggerName, consulting the
// registry only on the first request for that name
func (r *Resolver) ResolveCatalog(loggerName string) (*catalog.MessageCatalog, bool) {
	return r.catalogs.Resolve(loggerName)
}

// MessageID returns the raw message when it is a key with a non-empty
// template in the event's own catalog.
func MessageID(event *core.Event) (string, bool) {
	if event.Message == "" || event.Catalog == nil {
		return "", false
	}
	tmpl, ok := event.Catalog.Lookup(event.Message)
	if !ok || tmpl == "" {
		return "", false
	}
	return event.Message, true
}
