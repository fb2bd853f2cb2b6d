// Package common contains shared constants and sentinel errors used across
// smarttask components.
package common

// Keys of the durable client-side metadata store.
const (
	// TokenKey holds the bearer token of the signed-in user. Its absence
	// means the client is logged out.
	TokenKey = "token"
	// LastEmailKey remembers the email of the last successful login.
	LastEmailKey = "last_email"
	// ThemeKey stores the preferred view theme ("light" or "dark").
	ThemeKey = "theme"
)

// RequestIDHeaderName carries a per-call correlation id on outbound requests.
const RequestIDHeaderName = "X-Request-ID"
