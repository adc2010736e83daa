// Package jwt issues and verifies the compact HS256 session tokens used by
// the AuthAPI engine.
//
// Tokens are self-contained: they carry the subject (the user's email),
// issued-at, expiry, and a random jti, and are never persisted or revoked.
// Validity at verification time is solely a function of the signature and
// the encoded expiry.
//
// # Architecture boundaries
//
// This package owns signing and claim validation only. It does NOT consult
// any store, know about users, or map failures to the engine's error
// taxonomy — callers translate [ErrTokenInvalid] at their boundary.
//
// # What this package must NOT do
//
//   - Accept any signing algorithm other than the one it was configured
//     with (no "alg" negotiation with the token).
//   - Hold the signing key anywhere except the injected Config.
package jwt
