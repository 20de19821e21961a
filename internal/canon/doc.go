// Package canon maps legacy identifiers onto canonical UUID-v4-shaped
// identifiers and supplies the generators used for freshly minted edge ids.
//
// Resolution order for Canonicalize:
//
//  1. Already canonical (v4 shape, any case): returned unchanged.
//  2. 21 or 22 characters that Base58-decode to a v4-shaped UUID: the
//     decoded UUID.
//  3. Anything else: an MD5 digest of the raw string with the version and
//     variant bits forced, so the result is v4-shaped.
//
// Canonicalize never fails. A Base58 decode failure only routes the input
// to step 3. The mapping depends on the input string alone, so it is safe
// for concurrent use and stable across processes.
package canon
