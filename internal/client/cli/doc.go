// Package cli provides the interactive TABZ command-line client.
//
// It wires configuration, the platform's session store, the session, API
// services and the realtime feed, then runs a REPL over them. Session state
// is hydrated in the background before the first prompt.
//
// Key features:
//   - Login / Logout / WhoAmI and switching the backend base URL
//   - Buyer catalogue, ordering and order history
//   - Staff and venue order queues, with a polling "watch"
//   - Owner wallet, cashouts, bank details and payout reconciliation
//   - Identity verification and profile media uploads
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
