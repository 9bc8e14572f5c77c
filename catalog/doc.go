// Package catalog holds localized message catalogs and the registry the
// formatter resolves them from.
//
// A MessageCatalog maps message keys to templates for one language. It is
// backed by golang.org/x/text/message/catalog so that catalogs built here
// can also be handed to an x/text message.Printer.
//
// A Registry associates catalogs with logger names. Cache sits in front
// of a Registry and remembers every answer, including "no catalog", for
// the lifetime of the formatter that owns it. Catalogs are assumed static
// once registered, so cached entries are never invalidated.
//
// Bundles can be loaded from TOML or YAML files with LoadFile and LoadDir.
// Nested tables are flattened with dots, so the TOML line
//
//	order.failed = "Order {0} failed for {1}"
//
// defines the key "order.failed".
package catalog
