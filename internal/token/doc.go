// Package token implements the session token codec: minting HS256-signed
// JWTs for authenticated users and validating them back into claim sets.
//
// A token is the standard three-segment base64url form
// header.payload.signature, signed with a shared secret. Expiry is carried
// in the exp claim as epoch seconds and enforced at decode time; there is no
// server-side revocation, so a minted token stays valid until it expires.
package token
