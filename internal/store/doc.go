// Package store defines the persistence boundary of the journal. Each
// in-memory component hands its full state over as an opaque named
// snapshot; the store only promises that what it saves it loads back
// byte for byte.
package store
