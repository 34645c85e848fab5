package tables

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/threecushion/backend/internal/game"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidPassphrase = errors.New("invalid passphrase")
	ErrInvalidToken      = errors.New("invalid token")
)

// Snapshot is what clients see of a table: the balls, their projected
// paths and a version that grows with every accepted change.
type Snapshot struct {
	TableID      string            `json:"table_id"`
	Balls        game.Layout       `json:"balls"`
	Trajectories []game.Trajectory `json:"trajectories"`
	Version      int64             `json:"version"`
}

// Manager owns table sessions. Changes are serialized through one mutex so
// that load, edit and save never interleave within a process.
type Manager struct {
	store    Store
	policy   game.Policy
	secret   []byte
	tokenTTL time.Duration

	mu sync.Mutex

	lmu       sync.RWMutex
	listeners []func(Snapshot)
}

func NewManager(store Store, policy game.Policy, jwtSecret string, tokenTTL time.Duration) *Manager {
	if tokenTTL <= 0 {
		tokenTTL = 12 * time.Hour
	}
	return &Manager{
		store:    store,
		policy:   policy,
		secret:   []byte(jwtSecret),
		tokenTTL: tokenTTL,
	}
}

func (m *Manager) Policy() game.Policy {
	return m.policy
}

// OnChange registers fn to receive the snapshot after every change.
func (m *Manager) OnChange(fn func(Snapshot)) {
	m.lmu.Lock()
	defer m.lmu.Unlock()
	m.listeners = append(m.listeners, fn)
}

func (m *Manager) notify(s Snapshot) {
	m.lmu.RLock()
	listeners := append([]func(Snapshot){}, m.listeners...)
	m.lmu.RUnlock()
	for _, fn := range listeners {
		fn(s)
	}
}

// generateToken generates a secure random token
func generateToken(length int) string {
	bytes := make([]byte, length)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// Create starts a table at the initial layout and returns it with an edit
// token. An empty passphrase leaves the table open to anyone.
func (m *Manager) Create(ctx context.Context, passphrase string) (*Session, string, error) {
	now := time.Now()
	s := &Session{
		ID:        generateToken(8),
		Layout:    game.InitialLayout(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if passphrase != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
		if err != nil {
			return nil, "", fmt.Errorf("hash passphrase: %w", err)
		}
		s.PassphraseHash = string(hash)
	}
	if err := m.store.Save(ctx, s); err != nil {
		return nil, "", fmt.Errorf("save table: %w", err)
	}
	token, err := m.signToken(s.ID)
	if err != nil {
		return nil, "", err
	}
	log.Printf("[TABLES] Created table %s (protected=%v)", s.ID, s.PassphraseHash != "")
	return s, token, nil
}

// IssueToken checks the passphrase and returns a fresh edit token.
func (m *Manager) IssueToken(ctx context.Context, id, passphrase string) (string, error) {
	s, err := m.store.Load(ctx, id)
	if err != nil {
		return "", err
	}
	if s.PassphraseHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(s.PassphraseHash), []byte(passphrase)); err != nil {
			return "", ErrInvalidPassphrase
		}
	}
	return m.signToken(id)
}

func (m *Manager) signToken(id string) (string, error) {
	claims := jwt.MapClaims{
		"table_id": id,
		"exp":      time.Now().Add(m.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates an edit token and returns the table id it grants.
func (m *Manager) ParseToken(token string) (string, error) {
	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	id, ok := claims["table_id"].(string)
	if !ok || id == "" {
		return "", ErrInvalidToken
	}
	return id, nil
}

func (m *Manager) snapshot(s *Session) Snapshot {
	return Snapshot{
		TableID:      s.ID,
		Balls:        s.Layout,
		Trajectories: s.Layout.Trajectories(m.policy),
		Version:      s.Version,
	}
}

// Snapshot returns the current state of a table.
func (m *Manager) Snapshot(ctx context.Context, id string) (Snapshot, error) {
	s, err := m.store.Load(ctx, id)
	if err != nil {
		return Snapshot{}, err
	}
	return m.snapshot(s), nil
}

// Apply applies edits in order. If any edit fails, none are kept.
func (m *Manager) Apply(ctx context.Context, id string, edits ...game.Edit) (Snapshot, error) {
	return m.update(ctx, id, func(l game.Layout) (game.Layout, error) {
		for _, e := range edits {
			next, err := l.Apply(e, m.policy.MaxVelocity)
			if err != nil {
				return l, err
			}
			l = next
		}
		return l, nil
	})
}

// Reset puts every ball back on its starting spot, at rest.
func (m *Manager) Reset(ctx context.Context, id string) (Snapshot, error) {
	return m.update(ctx, id, func(game.Layout) (game.Layout, error) {
		return game.InitialLayout(), nil
	})
}

// LoadLayout replaces the whole layout, clamping velocities.
func (m *Manager) LoadLayout(ctx context.Context, id string, layout game.Layout) (Snapshot, error) {
	return m.update(ctx, id, func(game.Layout) (game.Layout, error) {
		return layout.Clamped(m.policy.MaxVelocity), nil
	})
}

func (m *Manager) update(ctx context.Context, id string, fn func(game.Layout) (game.Layout, error)) (Snapshot, error) {
	m.mu.Lock()
	s, err := m.store.Load(ctx, id)
	if err != nil {
		m.mu.Unlock()
		return Snapshot{}, err
	}
	next, err := fn(s.Layout)
	if err != nil {
		m.mu.Unlock()
		return Snapshot{}, err
	}
	s.Layout = next
	s.Version++
	s.UpdatedAt = time.Now()
	if err := m.store.Save(ctx, s); err != nil {
		m.mu.Unlock()
		return Snapshot{}, fmt.Errorf("save table: %w", err)
	}
	snap := m.snapshot(s)
	m.mu.Unlock()

	m.notify(snap)
	return snap, nil
}

// Delete removes a table.
func (m *Manager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("[TABLES] Deleted table %s", id)
	return nil
}
