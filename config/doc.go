// Package config loads the backend configuration.
//
// Values are layered: built-in defaults, then an optional TOML file, then
// environment variables prefixed with JSON_LOGGING_HAZELCAST_. A key such
// as file.max_size_mb is read from JSON_LOGGING_HAZELCAST_FILE_MAX_SIZE_MB,
// so the level can be set with JSON_LOGGING_HAZELCAST_LEVEL.
//
// Configuration is read once at startup; the resulting formatter and
// handlers do not observe later changes.
package config
