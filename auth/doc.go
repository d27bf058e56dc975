// Package auth authenticates shelf users and issues the bearer tokens
// they present on every other request.
//
// Passwords are never stored. Registration picks a random 128 byte key
// for the user (the salt) and keeps only HMAC-SHA512(salt, password).
// Login recomputes that HMAC with the stored salt and compares both
// values in constant time.
//
// A successful login returns a JWT signed with HS256. The token carries
// the user id as its subject and the user name as the "name" claim,
// plus issuer, audience and expiry taken from TokenConfig. There is no
// revocation list, a token is valid until it expires.
//
// Unknown users and wrong passwords produce the same error so callers
// cannot tell them apart. Registration does report a taken username,
// that leak is accepted.
package auth
