// Package services holds the client's use cases. Each service combines the
// backend Client with session state and applies the client-side rules the
// screens rely on: money parsing, bank-info validation, role gating and
// list ordering.
//
// Role checks here decode the token without verifying it. They decide what
// to offer the user; the backend enforces authorization on every call.
package services
