package filesystem

import (
	"io"
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// File represents an individual file with its metadata and content accessor.
type File interface {
	// Path returns the absolute path to the file
	Path() string

	// RelativePath returns the path relative to the walked root
	RelativePath() string

	// Info returns file metadata
	Info() FileInfo

	// Open returns a reader over the file content. The caller closes it.
	Open() (io.ReadCloser, error)
}

// Directory represents a directory that can be traversed to discover files.
type Directory interface {
	// Path returns the absolute path to the directory
	Path() string

	// Walk visits every file and directory below Path in lexical order.
	// Errors encountered while traversing are passed to fn with a nil File;
	// if fn returns an error, walking stops and Walk returns it.
	Walk(fn func(File, error) error) error
}

// FileSystemProvider is a factory for Directory instances and file readers.
type FileSystemProvider interface {
	// Open opens a directory at the specified path
	Open(path string) (Directory, error)

	// OpenFile opens a regular file for streaming reads.
	OpenFile(path string) (io.ReadCloser, error)

	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)
}
