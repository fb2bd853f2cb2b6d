// Package services contains the application services of the smarttask client.
// This file defines the authentication session: login, register, logout and
// the one-time resolution of a stored token at startup.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/smarttask/internal/client/client"
	"github.com/dmitrijs2005/smarttask/internal/client/models"
	"github.com/dmitrijs2005/smarttask/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/smarttask/internal/common"
	"github.com/dmitrijs2005/smarttask/internal/dbx"
	"github.com/dmitrijs2005/smarttask/internal/logging"
)

// Session is an immutable snapshot of the authentication state.
type Session struct {
	User    *models.User
	Token   string
	Loading bool
}

// Authenticated reports whether a user is signed in.
func (s Session) Authenticated() bool {
	return s.User != nil
}

// AuthSession is the single source of truth for "who is signed in".
//
// Contract:
//   - Login: authenticate, persist the token durably, then update state.
//   - Register: create an account; never changes the session.
//   - Logout: forget the user and the stored token; idempotent.
//   - Resolve: restore the session from a stored token at startup.
//   - Loading: true until the first Resolve settles; flips exactly once.
//
// Implementations are safe for concurrent use.
type AuthSession interface {
	Login(ctx context.Context, email string, password []byte) error
	Register(ctx context.Context, name, email string, password []byte) error
	Logout(ctx context.Context) error
	Resolve(ctx context.Context) error

	Loading() bool
	WaitResolved(ctx context.Context) error
	Snapshot() Session
	Token() string
	LastEmail(ctx context.Context) string
}

// authSession is the concrete AuthSession backed by a remote Client and the
// local metadata store.
type authSession struct {
	client client.Client
	db     *sql.DB
	log    logging.Logger
	now    func() time.Time

	mu      sync.RWMutex
	user    *models.User
	token   string
	loading bool

	resolveOnce sync.Once
	resolved    chan struct{}
}

// NewAuthSession constructs an AuthSession in the loading state.
func NewAuthSession(c client.Client, db *sql.DB, log logging.Logger) AuthSession {
	if log == nil {
		log = logging.Discard()
	}
	return &authSession{
		client:   c,
		db:       db,
		log:      log.With("component", "auth"),
		now:      time.Now,
		loading:  true,
		resolved: make(chan struct{}),
	}
}

func (a *authSession) getMetadataRepo() metadata.Repository {
	return metadata.NewSQLiteRepository(a.db)
}

// Login authenticates against the server. On success the token and email are
// stored in one transaction before the in-memory state changes; on failure
// the session is left untouched.
func (a *authSession) Login(ctx context.Context, email string, password []byte) error {
	token, user, err := a.client.Login(ctx, email, password)
	if err != nil {
		a.log.Warn(ctx, "login failed", "email", email, "error", err)
		return fmt.Errorf("login error: %w", err)
	}
	if user == nil {
		user = &models.User{Email: email}
	}

	if err := a.saveToken(ctx, token, email); err != nil {
		return fmt.Errorf("token saving error: %w", err)
	}

	a.mu.Lock()
	a.user = user
	a.token = token
	a.mu.Unlock()

	a.log.Info(ctx, "logged in", "user_id", user.ID)
	return nil
}

func (a *authSession) saveToken(ctx context.Context, token, email string) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.TokenKey, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, common.LastEmailKey, []byte(email))
	})
}

// Register creates a new account on the server.
func (a *authSession) Register(ctx context.Context, name, email string, password []byte) error {
	if err := a.client.Register(ctx, name, email, password); err != nil {
		a.log.Warn(ctx, "registration failed", "email", email, "error", err)
		return fmt.Errorf("register error: %w", err)
	}
	return nil
}

// Logout clears the in-memory session and deletes the stored token.
func (a *authSession) Logout(ctx context.Context) error {
	a.clear()
	if err := a.getMetadataRepo().Delete(ctx, common.TokenKey); err != nil {
		return fmt.Errorf("token removal error: %w", err)
	}
	return nil
}

func (a *authSession) clear() {
	a.mu.Lock()
	a.user = nil
	a.token = ""
	a.mu.Unlock()
}

// Resolve restores the session from the stored token. A missing or expired
// token leaves the session unauthenticated without a network call; a token the
// server rejects is forgotten. Loading settles when Resolve returns, whatever
// the outcome.
func (a *authSession) Resolve(ctx context.Context) error {
	defer a.settle()

	stored, err := a.getMetadataRepo().Get(ctx, common.TokenKey)
	if err != nil {
		a.clear()
		return fmt.Errorf("token loading error: %w", err)
	}
	token := string(stored)
	if token == "" {
		a.clear()
		return nil
	}

	if client.TokenExpired(token, a.now()) {
		a.log.Info(ctx, "stored token expired")
		return a.forget(ctx, common.ErrTokenExpired)
	}

	a.mu.Lock()
	a.token = token
	a.mu.Unlock()

	user, err := a.client.Me(ctx)
	if err != nil {
		a.log.Warn(ctx, "stored token rejected", "error", err)
		return a.forget(ctx, err)
	}

	a.mu.Lock()
	a.user = user
	a.mu.Unlock()
	return nil
}

// forget drops the session and the stored token. It reports cause only when
// the token could not be removed.
func (a *authSession) forget(ctx context.Context, cause error) error {
	a.clear()
	if err := a.getMetadataRepo().Delete(ctx, common.TokenKey); err != nil {
		return errors.Join(cause, fmt.Errorf("token removal error: %w", err))
	}
	return nil
}

func (a *authSession) settle() {
	a.resolveOnce.Do(func() {
		a.mu.Lock()
		a.loading = false
		a.mu.Unlock()
		close(a.resolved)
	})
}

func (a *authSession) Loading() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.loading
}

// WaitResolved blocks until the first Resolve has settled or ctx is done.
func (a *authSession) WaitResolved(ctx context.Context) error {
	select {
	case <-a.resolved:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *authSession) Snapshot() Session {
	a.mu.RLock()
	defer a.mu.RUnlock()

	s := Session{Token: a.token, Loading: a.loading}
	if a.user != nil {
		u := *a.user
		s.User = &u
	}
	return s
}

// Token returns the bearer token of the current session, or "".
func (a *authSession) Token() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token
}

// LastEmail returns the email of the last successful login, or "".
func (a *authSession) LastEmail(ctx context.Context) string {
	v, err := a.getMetadataRepo().Get(ctx, common.LastEmailKey)
	if err != nil {
		a.log.Debug(ctx, "last email unavailable", "error", err)
		return ""
	}
	return string(v)
}
