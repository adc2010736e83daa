// Package password implements password hashing and verification with Argon2id defaults.
//
// # Output format
//
// Hashes are encoded in PHC string format:
//
//	$argon2id$v=19$m=<memory>,t=<time>,p=<threads>$<salt>$<hash>
//
// Verification re-derives with the parameters embedded in the stored hash
// and compares in constant time; a mismatch is an ordinary false result,
// never a panic. [Argon2.NeedsUpgrade] reports whether a stored hash was
// produced with weaker parameters than currently configured so the caller
// can re-hash on the next successful login.
//
// # Architecture boundaries
//
// This package owns hashing and verification only. Password policy beyond
// rejecting empty input is the caller's concern; this hasher accepts
// arbitrary non-empty passwords.
//
// # What this package must NOT do
//
//   - Store or retrieve passwords — callers supply plaintext and receive hashes.
//   - Import any other authapi package.
//   - Log plaintext passwords or hash parameters at runtime.
package password
