// Package httpapi exposes the authentication engine over HTTP.
//
// # Endpoints
//
//	POST /register         {email, password}            -> {access_token, token_type}
//	POST /login            {email, password, twofa_code} -> {access_token, token_type}
//	POST /enable-2fa       ?email=<email>               -> {otp_auth_url}
//	GET  /enable-2fa-html  ?email=<email>               -> HTML page with QR code
//	GET  /                                               -> liveness message
//	GET  /metrics                                        -> Prometheus text exposition
//
// Error bodies are JSON objects with a single "detail" field. Credential
// failures map to 401, second-factor failures to 403, unknown users to
// 404, duplicate registrations to 400, malformed request bodies to 422,
// and backend failures to a generic 500.
//
// # Architecture boundaries
//
// Handlers translate between HTTP and [authapi.Engine] calls; every
// authentication decision lives in the engine. The handler attaches the
// client IP and User-Agent to the request context so engine audit events
// carry them.
//
// # What this package must NOT do
//
//   - Inspect or log passwords, TOTP secrets, or issued tokens.
//   - Bypass the engine's error taxonomy with its own checks.
package httpapi
