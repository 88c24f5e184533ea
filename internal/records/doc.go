// Package records defines the typed input records of the two data families
// and a streaming, validating JSON-lines decoder for them.
package records
