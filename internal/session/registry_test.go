// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lightgate Contributors

package session_test

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lightgate/lightgate/internal/session"
)

func TestRegistry_StateTransitions(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name  string
		setup func(r *session.Registry)
		want  session.State
	}{
		{
			name:  "untracked by default",
			setup: func(_ *session.Registry) {},
			want:  session.StateNone,
		},
		{
			name: "authenticate",
			setup: func(r *session.Registry) {
				r.Authenticate(id)
			},
			want: session.StateAuthenticated,
		},
		{
			name: "authenticate displaces pending login",
			setup: func(r *session.Registry) {
				r.MarkPendingLogin(id)
				r.Authenticate(id)
			},
			want: session.StateAuthenticated,
		},
		{
			name: "pending registration displaces authenticated",
			setup: func(r *session.Registry) {
				r.Authenticate(id)
				r.MarkPendingRegistration(id)
			},
			want: session.StatePendingRegistration,
		},
		{
			name: "pending login displaces pending registration",
			setup: func(r *session.Registry) {
				r.MarkPendingRegistration(id)
				r.MarkPendingLogin(id)
			},
			want: session.StatePendingLogin,
		},
		{
			name: "unauthenticate removes authenticated",
			setup: func(r *session.Registry) {
				r.Authenticate(id)
				r.Unauthenticate(id)
			},
			want: session.StateNone,
		},
		{
			name: "unauthenticate leaves pending login untouched",
			setup: func(r *session.Registry) {
				r.MarkPendingLogin(id)
				r.Unauthenticate(id)
			},
			want: session.StatePendingLogin,
		},
		{
			name: "clear pending login only clears pending login",
			setup: func(r *session.Registry) {
				r.Authenticate(id)
				r.ClearPendingLogin(id)
			},
			want: session.StateAuthenticated,
		},
		{
			name: "remove drops any state",
			setup: func(r *session.Registry) {
				r.MarkPendingRegistration(id)
				r.Remove(id)
			},
			want: session.StateNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := session.NewRegistry()
			tt.setup(r)
			assert.Equal(t, tt.want, r.State(id))
		})
	}
}

func TestRegistry_AuthenticateIdempotent(t *testing.T) {
	r := session.NewRegistry()
	id := uuid.New()

	r.Authenticate(id)
	r.Authenticate(id)

	assert.True(t, r.IsAuthenticated(id))
	assert.Equal(t, session.StateAuthenticated, r.State(id))
	assert.Len(t, r.Snapshot(), 1)
}

func TestRegistry_IsAuthenticated(t *testing.T) {
	r := session.NewRegistry()
	id := uuid.New()

	assert.False(t, r.IsAuthenticated(id))

	r.MarkPendingLogin(id)
	assert.False(t, r.IsAuthenticated(id))

	r.Authenticate(id)
	assert.True(t, r.IsAuthenticated(id))
}

func TestRegistry_SnapshotIsCopy(t *testing.T) {
	r := session.NewRegistry()
	id := uuid.New()
	r.Authenticate(id)

	snap := r.Snapshot()
	snap[id] = session.StatePendingLogin

	assert.Equal(t, session.StateAuthenticated, r.State(id))
}

// Players transition from many goroutines at once: login completions on I/O
// goroutines race against disconnect cleanup on the dispatch goroutine. The
// registry must never let a player occupy more than one state.
func TestRegistry_ConcurrentMutationHoldsInvariant(t *testing.T) {
	r := session.NewRegistry()

	ids := make([]uuid.UUID, 8)
	for i := range ids {
		ids[i] = uuid.New()
	}

	var wg sync.WaitGroup
	for w := 0; w < 16; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				id := ids[(w+i)%len(ids)]
				switch i % 5 {
				case 0:
					r.Authenticate(id)
				case 1:
					r.MarkPendingLogin(id)
				case 2:
					r.MarkPendingRegistration(id)
				case 3:
					r.Unauthenticate(id)
				case 4:
					r.IsAuthenticated(id)
				}
			}
		}(w)
	}
	wg.Wait()

	// Quiescent point: every tracked player holds exactly one state.
	snap := r.Snapshot()
	for id, st := range snap {
		require.Contains(t, []session.State{
			session.StateAuthenticated,
			session.StatePendingLogin,
			session.StatePendingRegistration,
		}, st, "player %s has invalid state", id)
	}
}

func TestStartupSet(t *testing.T) {
	s := session.NewStartupSet()
	id := uuid.New()

	assert.False(t, s.Contains(id))

	s.Add(id)
	assert.True(t, s.Contains(id))

	// Re-adding is harmless.
	s.Add(id)
	assert.Equal(t, 1, s.Len())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "none", session.StateNone.String())
	assert.Equal(t, "authenticated", session.StateAuthenticated.String())
	assert.Equal(t, "pending_login", session.StatePendingLogin.String())
	assert.Equal(t, "pending_registration", session.StatePendingRegistration.String())
}
