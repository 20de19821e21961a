// Package ir holds the row and entry types shared by every migration stage
// and the JSON value model used to encode them.
//
// Rows come from the legacy store; entries are what the builder produces.
// Everything written to disk is encoded with MarshalCanonical, so output is
// byte-stable for a given input. ir imports nothing internal.
package ir
