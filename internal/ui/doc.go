// Package ui confirms destructive schema operations on the console.
//
// InteractiveApprover asks the user to type the database name; ForcedApprover,
// selected by --force, prints a warning and approves after a countdown that
// Ctrl+C can still interrupt.
package ui
