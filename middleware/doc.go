// Package middleware exposes the HTTP authorization gates for the newsdeck
// API.
//
// # Gates
//
//   - [RequireUser] — bearer access-token verification only.
//   - [RequireAdmin] — token verification plus an authoritative role re-fetch
//     from the credential store; the token's role claim alone never grants
//     admin access.
//
// Each gate reads the Authorization header, delegates verification to the
// engine, and injects the decoded claims into the request context. Per
// request the outcome is terminal: rejected (400 missing header, 401
// otherwise) or authorized; there are no retries.
//
// # What this package must NOT do
//
//   - Parse or create JWTs directly (delegates to the engine).
//   - Make authorization decisions beyond pass/reject from the engine.
package middleware
