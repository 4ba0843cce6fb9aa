// Package newsdeck is the backend core of a news-aggregation application:
// credential management with bcrypt hashing, JWT access/refresh token issuance,
// role-gated access control, and per-user smart-collection CRUD over a Redis
// document store.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// newsdeck is the public surface. It exposes [Engine], [Builder], [Config], and
// value types (UserRecord, CollectionRecord, MetricsSnapshot, etc.). HTTP
// concerns live in the httpapi and middleware sub-packages; token signing lives
// in jwt; credential hashing lives in password.
//
// # What this package must NOT do
//
//   - Expose Redis clients, key layouts, or document encodings in its public API.
//   - Read process environment or global state (configuration is injected once
//     through [Builder.WithConfig]).
//   - Perform network I/O during construction (Build is allocation-only; the
//     first Redis round-trip happens on the first Engine call).
package newsdeck
