// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lightgate Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/oops"

	"github.com/lightgate/lightgate/internal/session"
	"github.com/lightgate/lightgate/pkg/errutil"
)

// Status is the outcome of a player-facing authentication operation.
// Command handlers map statuses to templated messages.
type Status int

// Operation statuses.
const (
	StatusOK Status = iota
	StatusTooSoon
	StatusAlreadyAuthenticated
	StatusNotAuthenticated
	StatusNotRegistered
	StatusAlreadyRegistered
	StatusWrongPassword
	StatusPasswordMismatch
	StatusWeakPassword
	StatusStorageError
)

// Service performs the credential-touching authentication operations:
// login, registration, password change, and the admin unlogin/unregister
// surface. All storage access is synchronous; callers run Service methods
// off the game loop.
type Service struct {
	store       CredentialStore
	hasher      PasswordHasher
	registry    *session.Registry
	startup     *session.StartupSet
	limiter     *AttemptLimiter
	notifier    Notifier
	policy      PasswordPolicy
	maxFailed   int
	punishments []string
	console     ConsoleDispatcher
	logger      *slog.Logger
	now         func() time.Time
}

// ServiceConfig carries the tunables for NewService.
type ServiceConfig struct {
	Policy      PasswordPolicy
	MaxFailed   int      // consecutive failures before punishment
	Punishments []string // console commands, {PLAYER} replaced by name
}

// NewService creates a Service. Returns an error if any required dependency
// is nil.
func NewService(store CredentialStore, hasher PasswordHasher, registry *session.Registry, startup *session.StartupSet, limiter *AttemptLimiter, notifier Notifier, console ConsoleDispatcher, cfg ServiceConfig) (*Service, error) {
	if store == nil {
		return nil, oops.Errorf("credential store is required")
	}
	if hasher == nil {
		return nil, oops.Errorf("password hasher is required")
	}
	if registry == nil {
		return nil, oops.Errorf("session registry is required")
	}
	if startup == nil {
		return nil, oops.Errorf("startup set is required")
	}
	if limiter == nil {
		return nil, oops.Errorf("attempt limiter is required")
	}
	if notifier == nil {
		return nil, oops.Errorf("notifier is required")
	}
	if console == nil {
		return nil, oops.Errorf("console dispatcher is required")
	}
	return &Service{
		store:       store,
		hasher:      hasher,
		registry:    registry,
		startup:     startup,
		limiter:     limiter,
		notifier:    notifier,
		policy:      cfg.Policy,
		maxFailed:   cfg.MaxFailed,
		punishments: cfg.Punishments,
		console:     console,
		logger:      slog.New(slog.DiscardHandler),
		now:         time.Now,
	}, nil
}

// WithLogger replaces the service's logger.
func (s *Service) WithLogger(logger *slog.Logger) *Service {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithClock replaces the service's time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// Login verifies the player's password against the stored credential.
//
// A wrong password is a business outcome, not an error: it increments the
// failure counter and, past the punishment threshold, dispatches the
// configured console commands. Attempts inside the command cooldown are
// rejected without consuming a failure slot.
func (s *Service) Login(ctx context.Context, p Player, password string) (Status, error) {
	id := p.Identity()

	if s.limiter.CheckAndRecordAttempt(id, s.now()) == AttemptTooSoon {
		LoginAttempts.WithLabelValues("too_soon").Inc()
		return StatusTooSoon, nil
	}

	if s.registry.IsAuthenticated(id) {
		return StatusAlreadyAuthenticated, nil
	}

	row, err := s.store.Search(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			LoginAttempts.WithLabelValues("not_registered").Inc()
			return StatusNotRegistered, nil
		}
		errutil.LogError(s.logger, "credential lookup failed during login", err)
		LoginAttempts.WithLabelValues("storage_error").Inc()
		return StatusStorageError, err
	}

	salt, err := decodeSalt(row.PasswordSalt)
	if err != nil {
		errutil.LogError(s.logger, "stored salt is corrupt", err)
		return StatusStorageError, err
	}

	if !s.hasher.Verify(password, salt, row.PasswordHash) {
		s.notify(EventWrongPassword, id, CauseCommand)
		LoginAttempts.WithLabelValues("wrong_password").Inc()

		count := s.limiter.RecordFailure(id)
		if count > s.maxFailed {
			s.punish(p)
		}
		return StatusWrongPassword, nil
	}

	s.limiter.RecordSuccess(id)
	s.registry.Authenticate(id)
	s.startup.Add(id)
	s.notify(EventAuthenticated, id, CauseCommand)
	LoginAttempts.WithLabelValues("success").Inc()

	// Best effort; login succeeds even if the timestamp write fails.
	if err := s.store.UpdateColumn(ctx, id, ColumnLastLogin, s.now().UnixMilli()); err != nil {
		errutil.LogError(s.logger, "failed to persist last login", err)
	}

	return StatusOK, nil
}

// Register creates a credential row for an unregistered player and
// authenticates them. Argument validation happens before any storage I/O.
func (s *Service) Register(ctx context.Context, p Player, password, confirm string) (Status, error) {
	id := p.Identity()

	if s.registry.IsAuthenticated(id) {
		return StatusAlreadyAuthenticated, nil
	}
	if password != confirm {
		return StatusPasswordMismatch, nil
	}
	if err := s.policy.Validate(password); err != nil {
		return StatusWeakPassword, err
	}

	salt, err := s.hasher.GenerateSalt(SaltLength)
	if err != nil {
		return StatusStorageError, err
	}

	row := NewCredential(id, s.hasher.Hash(password, salt), encodeSalt(salt), PackAddr(p.Addr()))
	if err := s.store.Insert(ctx, row); err != nil {
		if errors.Is(err, ErrAlreadyRegistered) {
			return StatusAlreadyRegistered, nil
		}
		errutil.LogError(s.logger, "failed to insert credential row", err)
		return StatusStorageError, err
	}

	s.registry.Authenticate(id)
	s.startup.Add(id)
	s.notify(EventRegistered, id, CauseCommand)
	s.notify(EventAuthenticated, id, CauseCommand)
	return StatusOK, nil
}

// ChangePassword replaces an authenticated player's password after
// verifying the old one.
func (s *Service) ChangePassword(ctx context.Context, p Player, oldPassword, newPassword, confirm string) (Status, error) {
	id := p.Identity()

	if !s.registry.IsAuthenticated(id) {
		return StatusNotAuthenticated, nil
	}
	if newPassword != confirm {
		return StatusPasswordMismatch, nil
	}
	if err := s.policy.Validate(newPassword); err != nil {
		return StatusWeakPassword, err
	}

	row, err := s.store.Search(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return StatusNotRegistered, nil
		}
		errutil.LogError(s.logger, "credential lookup failed during password change", err)
		return StatusStorageError, err
	}

	oldSalt, err := decodeSalt(row.PasswordSalt)
	if err != nil {
		errutil.LogError(s.logger, "stored salt is corrupt", err)
		return StatusStorageError, err
	}
	if !s.hasher.Verify(oldPassword, oldSalt, row.PasswordHash) {
		return StatusWrongPassword, nil
	}

	newSalt, err := s.hasher.GenerateSalt(SaltLength)
	if err != nil {
		return StatusStorageError, err
	}
	if err := s.store.UpdateColumn(ctx, id, ColumnPassword, s.hasher.Hash(newPassword, newSalt)); err != nil {
		errutil.LogError(s.logger, "failed to update password hash", err)
		return StatusStorageError, err
	}
	if err := s.store.UpdateColumn(ctx, id, ColumnSalt, encodeSalt(newSalt)); err != nil {
		errutil.LogError(s.logger, "failed to update password salt", err)
		return StatusStorageError, err
	}

	return StatusOK, nil
}

// SetEmail stores an authenticated player's recovery email.
func (s *Service) SetEmail(ctx context.Context, p Player, email string) (Status, error) {
	id := p.Identity()

	if !s.registry.IsAuthenticated(id) {
		return StatusNotAuthenticated, nil
	}
	if err := s.store.UpdateColumn(ctx, id, ColumnEmail, email); err != nil {
		errutil.LogError(s.logger, "failed to update email", err)
		return StatusStorageError, err
	}
	return StatusOK, nil
}

// Unlogin forces a connected player out of the authenticated state and back
// to pending login. Admin operation.
func (s *Service) Unlogin(_ context.Context, target Player) (Status, error) {
	id := target.Identity()

	if !s.registry.IsAuthenticated(id) {
		return StatusNotAuthenticated, nil
	}

	s.registry.Unauthenticate(id)
	s.notify(EventUnauthenticated, id, CauseCommand)
	s.registry.MarkPendingLogin(id)
	s.notify(EventLoginRequired, id, CauseCommand)
	return StatusOK, nil
}

// Unregister deletes an identity's credential row. A still-connected player
// drops to pending registration. Admin operation.
func (s *Service) Unregister(ctx context.Context, id uuid.UUID, online Player) (Status, error) {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return StatusNotRegistered, nil
		}
		errutil.LogError(s.logger, "failed to delete credential row", err)
		return StatusStorageError, err
	}

	s.notify(EventUnregistered, id, CauseCommand)
	if online != nil && online.Online() {
		s.registry.MarkPendingRegistration(id)
		s.notify(EventRegistrationRequired, id, CauseCommand)
	} else {
		s.registry.Remove(id)
	}
	return StatusOK, nil
}

func (s *Service) punish(p Player) {
	Punishments.Inc()
	for _, cmd := range s.punishments {
		line := strings.ReplaceAll(cmd, "{PLAYER}", p.Name())
		if err := s.console.DispatchCommand(line); err != nil {
			errutil.LogError(s.logger, "bruteforce punishment dispatch failed", err)
		}
	}
	s.logger.Warn("bruteforce punishment dispatched",
		"identity", p.Identity().String(),
		"player", p.Name(),
	)
}

func (s *Service) notify(t EventType, id uuid.UUID, cause Cause) {
	s.notifier.Notify(Event{
		Type:      t,
		Identity:  id,
		Cause:     cause,
		Timestamp: s.now(),
	})
}
