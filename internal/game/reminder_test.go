// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lightgate Contributors

package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/lightgate/lightgate/internal/auth/authtest"
	"github.com/lightgate/lightgate/internal/session"
)

func TestReminder_PromptsPendingPlayers(t *testing.T) {
	registry := session.NewRegistry()
	pendingLogin := authtest.NewPlayer("login-pending")
	pendingReg := authtest.NewPlayer("register-pending")
	authed := authtest.NewPlayer("authed")
	registry.MarkPendingLogin(pendingLogin.ID)
	registry.MarkPendingRegistration(pendingReg.ID)
	registry.Authenticate(authed.ID)
	roster := &authtest.Roster{Players: []*authtest.Player{pendingLogin, pendingReg, authed}}

	reminder, err := NewReminder(registry, roster, "please log in", "please register")
	require.NoError(t, err)

	reminder.Prompt()

	assert.True(t, pendingLogin.Received("please log in"))
	assert.True(t, pendingReg.Received("please register"))
	assert.Empty(t, authed.Messages, "authenticated players are not nagged")
}

func TestReminder_RunStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	registry := session.NewRegistry()
	reminder, err := NewReminder(registry, &authtest.Roster{}, "a", "b")
	require.NoError(t, err)
	reminder = reminder.WithInterval(time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		reminder.Run(ctx)
	}()

	time.Sleep(5 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
