// Package authkit implements password login with signed, time-bounded
// bearer tokens carried in an HTTP cookie instead of an Authorization
// header.
//
// Token lifecycle:
//   - TokenService issues compact HS512 JWTs whose claims are built by
//     BuildClaims: one email claim plus one role claim per assigned role,
//     in store order. Expiry is issuance time plus a configured number of
//     whole minutes, validated with zero clock-skew tolerance.
//   - CookieTransport binds issued tokens to a configured cookie
//     (HttpOnly, Secure, SameSite=Strict) whose expiry matches the token,
//     and reads them back on inbound requests.
//
// The user store is a capability interface (UserStore); the bundled Bun
// implementation persists users, roles, and their assignments in SQL.
// There is no server-side session state: every validation is fully
// self-contained given the token string and the startup config.
package authkit
