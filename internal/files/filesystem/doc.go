// Package filesystem abstracts the directory trees pgstar reads data files from.
//
// Key interfaces:
//   - FileSystemProvider: opens directories for walking and files for streaming reads
//   - Directory: a traversable directory tree
//   - File: an individual file with metadata and a content accessor
//
// Implementations:
//   - OSFileSystem: production implementation using the OS filesystem
//   - MemoryFileSystem: in-memory implementation for tests
package filesystem
