// Package password wraps bcrypt credential hashing behind a small,
// configuration-validated hasher.
//
// # Architecture boundaries
//
// The hasher owns only digest computation and comparison. Password length
// policy is enforced by the engine before hashing; bcrypt's own 72-byte input
// cap is validated here because it is a property of the algorithm.
package password
