// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lightgate Contributors

// Package authtest provides in-memory fakes of the host and storage
// surfaces for tests.
package authtest

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"net/netip"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/lightgate/lightgate/internal/auth"
)

// Player is a scriptable fake of the host player surface.
type Player struct {
	mu sync.Mutex

	ID       uuid.UUID
	PName    string
	Address  netip.Addr
	IsOnline bool
	IsOp     bool

	Messages   []string
	KickReason string
	Kicked     bool
	KickPanic  bool // when set, Kick panics; exercises sweep isolation
	Progress   []float64
}

// NewPlayer creates an online, non-operator fake player with a fresh
// identity and a fixed IPv4 address.
func NewPlayer(name string) *Player {
	return &Player{
		ID:       uuid.New(),
		PName:    name,
		Address:  netip.MustParseAddr("192.168.1.10"),
		IsOnline: true,
	}
}

func (p *Player) Identity() uuid.UUID { return p.ID }
func (p *Player) Name() string        { return p.PName }
func (p *Player) Addr() netip.Addr    { return p.Address }
func (p *Player) Operator() bool      { return p.IsOp }

func (p *Player) Online() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.IsOnline
}

// SetOnline flips the online flag.
func (p *Player) SetOnline(online bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.IsOnline = online
}

func (p *Player) SendMessage(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Messages = append(p.Messages, msg)
}

func (p *Player) Kick(reason string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.KickPanic {
		panic("kick failed")
	}
	p.Kicked = true
	p.KickReason = reason
	p.IsOnline = false
}

func (p *Player) ShowProgress(ratio float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Progress = append(p.Progress, ratio)
}

// Received reports whether the player got a message equal to msg.
func (p *Player) Received(msg string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, m := range p.Messages {
		if m == msg {
			return true
		}
	}
	return false
}

// LastMessage returns the most recent message, or "".
func (p *Player) LastMessage() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.Messages) == 0 {
		return ""
	}
	return p.Messages[len(p.Messages)-1]
}

// Roster is a fixed fake roster.
type Roster struct {
	Players []*Player
}

func (r *Roster) Online() []auth.Player {
	out := make([]auth.Player, 0, len(r.Players))
	for _, p := range r.Players {
		if p.Online() {
			out = append(out, p)
		}
	}
	return out
}

func (r *Roster) Lookup(id uuid.UUID) (auth.Player, bool) {
	for _, p := range r.Players {
		if p.ID == id && p.Online() {
			return p, true
		}
	}
	return nil, false
}

func (r *Roster) LookupName(name string) (auth.Player, bool) {
	for _, p := range r.Players {
		if strings.EqualFold(p.PName, name) && p.Online() {
			return p, true
		}
	}
	return nil, false
}

// Console records dispatched console commands.
type Console struct {
	mu       sync.Mutex
	Commands []string
	Err      error
}

func (c *Console) DispatchCommand(cmd string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Commands = append(c.Commands, cmd)
	return c.Err
}

// Dispatched returns a copy of the recorded commands.
func (c *Console) Dispatched() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.Commands))
	copy(out, c.Commands)
	return out
}

// MemStore is an in-memory CredentialStore.
type MemStore struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*auth.Credential

	// Err, when set, is returned by every operation. Simulates storage
	// outage.
	Err error
}

// NewMemStore creates an empty in-memory credential store.
func NewMemStore() *MemStore {
	return &MemStore{rows: make(map[uuid.UUID]*auth.Credential)}
}

func (s *MemStore) Search(_ context.Context, id uuid.UUID) (*auth.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	row, ok := s.rows[id]
	if !ok {
		return nil, auth.ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (s *MemStore) Insert(_ context.Context, cred *auth.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.rows[cred.Identity]; ok {
		return auth.ErrAlreadyRegistered
	}
	cp := *cred
	s.rows[cred.Identity] = &cp
	return nil
}

func (s *MemStore) UpdateColumn(_ context.Context, id uuid.UUID, column auth.CredentialColumn, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	row, ok := s.rows[id]
	if !ok {
		return auth.ErrNotFound
	}
	switch column {
	case auth.ColumnPassword:
		row.PasswordHash = value.(string)
	case auth.ColumnSalt:
		row.PasswordSalt = value.(string)
	case auth.ColumnEmail:
		v := value.(string)
		row.Email = &v
	case auth.ColumnLastLogin:
		row.LastLogin = value.(int64)
	case auth.ColumnLastAddress:
		row.LastAddress = value.(int64)
	}
	return nil
}

func (s *MemStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.rows[id]; !ok {
		return auth.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

// Row returns a copy of the stored credential, if present.
func (s *MemStore) Row(id uuid.UUID) (*auth.Credential, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[id]
	if !ok {
		return nil, false
	}
	cp := *row
	return &cp, true
}

// Put stores a credential, overwriting any existing row.
func (s *MemStore) Put(cred *auth.Credential) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *cred
	s.rows[cred.Identity] = &cp
}

// Hasher is a fast deterministic PasswordHasher for tests. Do not use
// outside tests.
type Hasher struct{}

func (Hasher) Hash(password string, salt []byte) string {
	return password + ":" + hex.EncodeToString(salt)
}

func (Hasher) GenerateSalt(n int) ([]byte, error) {
	salt := make([]byte, n)
	for i := range salt {
		salt[i] = byte(i)
	}
	return salt, nil
}

func (Hasher) Verify(password string, salt []byte, encodedHash string) bool {
	return Hasher{}.Hash(password, salt) == encodedHash
}

// Seed stores a credential row for id with the given password, hashed with
// the test Hasher, and returns it.
func Seed(store *MemStore, id uuid.UUID, password string, address int64, lastLogin int64) *auth.Credential {
	salt, _ := Hasher{}.GenerateSalt(auth.SaltLength)
	row := auth.NewCredential(id, Hasher{}.Hash(password, salt), base64.StdEncoding.EncodeToString(salt), address)
	row.LastLogin = lastLogin
	store.Put(row)
	return row
}

var (
	_ auth.Player            = (*Player)(nil)
	_ auth.Roster            = (*Roster)(nil)
	_ auth.ConsoleDispatcher = (*Console)(nil)
	_ auth.CredentialStore   = (*MemStore)(nil)
	_ auth.PasswordHasher    = (Hasher{})
)
