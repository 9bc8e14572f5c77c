// Package filehandler provides a file handler that writes formatted log
// events to a file rotated by size, with optional age and backup-count
// limits and gzip compression of rotated files.
//
// Writes are synchronous and serialized by a mutex. With BufferSize set,
// lines are collected in a bufio.Writer and reach the file on Flush,
// Rotate or Close.
package filehandler
