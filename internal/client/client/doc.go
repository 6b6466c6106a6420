// Package client talks to the TABZ backend over HTTP and JSON.
//
// # Overview
//
// The package provides:
//  1. Executor, which runs every request through the same steps: wait for
//     the session's hydration gate, resolve the bearer token, attach
//     headers, send, classify the response and strip one {"value": ...}
//     envelope.
//  2. The Client interface and its HTTPClient implementation, one method
//     per backend endpoint.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite file with embedded goose migrations.
//
// # Error Handling
//
// Failures fall into four kinds callers branch on:
//
//   - ErrAuthMissing: no token after hydration. Nothing was sent.
//   - *HTTPError: the backend answered outside 2xx. Never retried.
//     401 and 403 also match ErrUnauthorized.
//   - *NetworkError: no response. Matches ErrUnavailable.
//   - decode errors for payloads that do not fit the expected type.
//
// Concurrency & Contexts
//
// Executor and HTTPClient are safe for concurrent use. All operations take
// a context.Context; cancelling it aborts the wait on the gate and the
// in-flight request.
package client
