// Package logger is the public API of jsonlog. Most users only need to
// import this package.
//
// A Logger is immutable after construction: the name, the threshold and
// the handler are set once via the Builder and never modified. This makes
// Logger safe for concurrent use without any locking on the read path.
//
// Messages are templates with positional placeholders. Parameters are
// substituted by the formatter, not at the call site:
//
//	log.Info("Order {0} failed for {1}", orderID, customer)
//	log.SevereErr("", err)
//
// For custom configuration, use the Builder:
//
//	log := logger.NewBuilder().
//	    WithName("svc.orders").
//	    WithHandler(myHandler).
//	    WithLevel(logger.FineLevel).
//	    WithCaller(true).
//	    Build()
//
// A Factory hands out named loggers sharing one handler, with their
// threshold taken from JSON_LOGGING_HAZELCAST_LEVEL (INFO when unset).
// The package initializes a default Logger (JSON to stdout) in init();
// the package-level functions delegate to it. init panics when the
// variable holds a value that is neither a level name nor a rank.
//
// Level checks happen before any allocation, so filtered-out messages
// cost only an integer comparison.
package logger
