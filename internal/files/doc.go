// Package files groups file access for data discovery.
//
// Package filesystem provides the OS and in-memory filesystem providers.
// Package scanner finds data files recursively and sorts them by path:
//
//	s := scanner.NewScanner()
//	paths, err := s.Discover("data/song_data")
package files
