// Package redisstore provides a Redis-backed implementation of the
// authapi.UserStore contract.
//
// # Design
//
// Each user is a Redis hash at <prefix>:user:<email> with fields
// password_hash and totp_secret. Mutations run as Lua scripts so the
// exists-check and the write are a single atomic step per email: concurrent
// CreateUser calls for one email yield exactly one winner, and
// SetTOTPSecret never resurrects a deleted record.
//
// # Architecture boundaries
//
// This package owns persistence and per-email concurrency control. It does
// NOT hash passwords, generate or validate TOTP secrets, or make
// authentication decisions — those belong to the engine.
//
// # What this package must NOT do
//
//   - Log or expose password hashes or TOTP secrets.
//   - Interpret record contents beyond field names.
package redisstore
