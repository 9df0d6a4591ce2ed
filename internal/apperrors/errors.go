package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrInvalidCredential indicates an identity assertion that failed structural
// or cryptographic validation. Callers treat this as a hard authentication
// failure and never retry it automatically.
var ErrInvalidCredential = errors.New("invalid credential")

// ErrNoRefreshToken indicates a token refresh was requested for a user with no
// stored refresh token. Treated as "not authorized", not as a transient fault.
var ErrNoRefreshToken = errors.New("no refresh token stored")

// ErrRefreshRejected indicates the identity provider rejected the stored
// refresh token. The token is considered revoked; the user must re-authorize.
var ErrRefreshRejected = errors.New("refresh token rejected by provider")

// ErrNotAuthorized indicates publishing was attempted for a user without a
// complete credential pair. Publishing never triggers an interactive auth flow.
var ErrNotAuthorized = errors.New("user not authorized for publishing")

// ErrUpstreamFetch indicates a transport or permission failure while reading
// from the spreadsheet provider. Not retried within the failing call; the next
// scheduled run retries.
var ErrUpstreamFetch = errors.New("upstream fetch failed")
