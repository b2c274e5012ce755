// Package auth implements email-based account management: invite-driven
// registration, password login, password and profile changes, password
// recovery, and email changes, all confirmed through one-time tokens.
//
// Requests (invites, recovery requests, change-email requests):
//   - Every security-sensitive mutation is mediated by a token-bearing
//     request row. A request is pending until it expires or is activated;
//     activation is one-shot and happens inside the same transaction as
//     the mutation it authorizes, so concurrent redemptions cannot both
//     win.
//   - Pending requests are rate limited per email (invites) or per user
//     (recovery, change email). Limits, request TTL, and token length
//     live in Config.
//
// Storage:
//   - Persistence goes through RepositoryManager, a thin set of Bun
//     repositories. Unique constraints on users.email and on each token
//     column back the application-level checks, so races fail with a
//     conflict instead of corrupting state.
//
// Activity sinks:
//   - ActivitySink is a light-weight audit emitter describing invite,
//     registration, login, password, and email-change events. Sinks run
//     best-effort (errors are logged) so you can forward to a database or
//     queue without blocking authentication.
package auth
