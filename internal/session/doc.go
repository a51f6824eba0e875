// Package session implements the login, session-probe, and logout endpoints.
//
// Login verifies the anti-automation challenge before touching the credential
// store, compares the password with bcrypt (with a constant-time dummy
// comparison for unknown usernames), and on success mints a session token via
// the shared codec, delivered as an HttpOnly cookie whose Max-Age matches the
// token's expiry. The probe is a side-effect-free query of the caller's auth
// state; logout clears the cookie without invalidating outstanding tokens.
package session
