// Package services orchestrates a load run: connect, discover, transform
// and write each data file in its own transaction.
package services
