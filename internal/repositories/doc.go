// Package repositories persists user credentials.
//
// Two implementations of [UserStore] are provided:
//   - [FileUserStore] : one JSON document mapping username to {"password": hash}, rewritten in
//     full on every registration
//   - [SQLUserStore] : the SQLite users table, where the primary key makes duplicate
//     registrations fail atomically
//
// Passwords are hashed with bcrypt, which salts each hash. Authentication never reveals
// whether the username or the password was wrong; both map to [shared.ErrUnauthorized].
package repositories
