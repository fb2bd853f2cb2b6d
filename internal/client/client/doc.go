// Package client contains the transport-side building blocks of smarttask.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) for the
//     task API: Register/Login/Me, task list/create/delete/complete and the
//     two AI helpers (SuggestTime, VoiceTask).
//  2. A concrete HTTP implementation (see HTTPClient). Authenticated calls go
//     through an oauth2.Transport whose token source reads the live session
//     token, so the bearer credential always matches the current session.
//     Every call carries an X-Request-ID for log correlation.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations), opening the
//     SQLite file and applying the embedded goose migrations.
//  4. Unverified inspection of JWT bearer tokens (TokenExpiry, TokenExpired).
//
// # Error Handling
//
// Failures map to sentinel errors callers match with errors.Is:
// ErrUnauthorized, ErrBadRequest, ErrNotFound, ErrUnavailable. Any non-2xx
// response is also available as *HTTPError through errors.As.
//
// All operations accept a context.Context and honor cancellation.
package client
