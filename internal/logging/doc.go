// Package logging holds the pgstar.Logger implementations used by the CLI
// and tests.
//
// ConsoleLogger writes to stderr (or any io.Writer) and prints verbose
// lines only when asked to. NullLogger drops everything and keeps test
// output quiet.
//
// Both are safe for concurrent use.
package logging
