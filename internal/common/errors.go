package common

import "errors"

// ErrTokenExpired reports a stored bearer token past its exp claim.
// Callers should use errors.Is to match it.
var ErrTokenExpired = errors.New("token expired")
