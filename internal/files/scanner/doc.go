// Package scanner discovers data files in a directory tree.
//
// The scanner walks a root recursively and returns the absolute paths of all
// regular files whose base name matches a glob (pgstar.DataFilePattern by
// default), sorted for a deterministic load order. It reads through the
// filesystem.FileSystemProvider abstraction so tests can use an in-memory tree.
package scanner
