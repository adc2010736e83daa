// Package authapi provides a minimal credential-issuance engine: password
// registration and verification, an optional TOTP second factor, and signed
// HS256 bearer tokens over a pluggable user store.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build]. The engine owns no locks; per-email atomicity during
// registration and secret enrollment is a contract on the [UserStore]
// implementation.
//
// # Architecture boundaries
//
// authapi is the public surface. It exposes [Engine], [Builder], [Config],
// the [UserStore] contract, and value types (TOTPProvision, AuditEvent,
// MetricsSnapshot). Token signing lives in the jwt sub-package, credential
// hashing in password, and store implementations in redisstore and memstore.
//
// # What this package must NOT do
//
//   - Expose store clients or wire encodings in its public API.
//   - Log or place passwords, password hashes, or TOTP secrets in errors,
//     audit events, or metrics.
//   - Track issued tokens: validity is solely signature plus expiry at
//     verification time, and rotating the signing key invalidates every
//     outstanding token.
package authapi
