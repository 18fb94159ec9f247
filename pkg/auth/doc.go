// Package auth resolves the caller identity and forwardable credential
// for each inbound request.
//
// A SessionProvider examines the request's cookies or headers and
// returns a three-outcome vote: Yes with an identity, No with a
// failure, or Abstain when the provider cannot handle the credential
// type. Providers are evaluated in a chain, mirroring the deployment
// setups where a JWT session cookie and a static development token
// coexist.
//
// Two distinct failures are preserved because they matter for
// diagnostics: ErrUnauthorized (no authenticated user) and
// ErrNoSessionToken (authenticated, but no credential that can be
// forwarded to the upstream backend). Both map to HTTP 401.
package auth
