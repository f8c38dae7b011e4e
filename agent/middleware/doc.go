// Package middleware provides ready-made [agent.Middleware] implementations
// for the provider send chain: structured request/response logging and
// transient-failure retry with exponential backoff.
package middleware
