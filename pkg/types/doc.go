// Package types defines the Journal interface, the Entry record, the
// configuration used to open a store, and the standard errors shared by
// every journal backend.
package types
