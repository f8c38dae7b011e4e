package middleware

import "errors"

// ErrRetryExhausted is wrapped into the error returned when every retry
// attempt has failed. Use errors.Is to detect it.
var ErrRetryExhausted = errors.New("retry attempts exhausted")
