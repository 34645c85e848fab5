package tables

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/threecushion/backend/internal/game"
	tcredis "github.com/threecushion/backend/internal/redis"
)

func newTestManager() *Manager {
	return NewManager(NewMemoryStore(), game.DefaultPolicy(), "test-secret", time.Hour)
}

func TestCreateOpenTable(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	s, token, err := m.Create(ctx, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(s.ID) != 16 {
		t.Errorf("table id %q should be 16 hex chars", s.ID)
	}
	id, err := m.ParseToken(token)
	if err != nil || id != s.ID {
		t.Errorf("ParseToken = %q, %v; want %q", id, err, s.ID)
	}

	// Open tables hand out tokens for any passphrase.
	if _, err := m.IssueToken(ctx, s.ID, "whatever"); err != nil {
		t.Errorf("IssueToken on open table: %v", err)
	}

	snap, err := m.Snapshot(ctx, s.ID)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.Version != 0 || len(snap.Trajectories) != 3 {
		t.Errorf("fresh snapshot = %+v", snap)
	}
}

func TestProtectedTable(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	s, _, err := m.Create(ctx, "chalk")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s.PassphraseHash == "" || s.PassphraseHash == "chalk" {
		t.Errorf("passphrase should be stored hashed")
	}
	if _, err := m.IssueToken(ctx, s.ID, "cue"); !errors.Is(err, ErrInvalidPassphrase) {
		t.Errorf("wrong passphrase: got %v", err)
	}
	if _, err := m.IssueToken(ctx, s.ID, "chalk"); err != nil {
		t.Errorf("right passphrase: %v", err)
	}
	if _, err := m.IssueToken(ctx, "missing", "chalk"); !errors.Is(err, ErrTableNotFound) {
		t.Errorf("unknown table: got %v", err)
	}
}

func TestParseTokenRejectsForeignAndExpired(t *testing.T) {
	m := newTestManager()
	other := NewManager(NewMemoryStore(), game.DefaultPolicy(), "other-secret", time.Hour)
	ctx := context.Background()

	_, foreign, _ := other.Create(ctx, "")
	if _, err := m.ParseToken(foreign); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("foreign token: got %v", err)
	}

	s, _, _ := m.Create(ctx, "")
	old, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"table_id": s.ID,
		"exp":      time.Now().Add(-time.Minute).Unix(),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := m.ParseToken(old); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired token: got %v", err)
	}
	if _, err := m.ParseToken("not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("garbage token: got %v", err)
	}
}

func TestApplyBumpsVersionAndNotifies(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()
	s, _, _ := m.Create(ctx, "")

	var seen []Snapshot
	m.OnChange(func(snap Snapshot) { seen = append(seen, snap) })

	snap, err := m.Apply(ctx, s.ID,
		game.Edit{Ball: game.Red, Field: game.FieldVX, Value: 25},
		game.Edit{Ball: game.Red, Field: game.FieldVY, Value: -3},
	)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	red, _ := snap.Balls.Ball(game.Red)
	if red.VX != 10 || red.VY != -3 {
		t.Errorf("red velocity = (%v,%v), want (10,-3)", red.VX, red.VY)
	}
	if snap.Version != 1 {
		t.Errorf("version = %d, want 1", snap.Version)
	}
	if len(seen) != 1 || seen[0].Version != 1 {
		t.Errorf("listener calls = %+v", seen)
	}
	if snap.Trajectories[2].Color != game.Red || snap.Trajectories[2].Bounces == 0 {
		t.Errorf("red trajectory = %+v", snap.Trajectories[2])
	}
}

func TestApplyIsAllOrNothing(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()
	s, _, _ := m.Create(ctx, "")

	_, err := m.Apply(ctx, s.ID,
		game.Edit{Ball: game.White, Field: game.FieldX, Value: 50},
		game.Edit{Ball: "green", Field: game.FieldX, Value: 50},
	)
	if !errors.Is(err, game.ErrUnknownBall) {
		t.Fatalf("expected ErrUnknownBall, got %v", err)
	}
	snap, _ := m.Snapshot(ctx, s.ID)
	white, _ := snap.Balls.Ball(game.White)
	if white.X != game.TableWidth/4 || snap.Version != 0 {
		t.Errorf("failed batch leaked: white.X=%v version=%d", white.X, snap.Version)
	}
}

func TestResetAndLoadLayout(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()
	s, _, _ := m.Create(ctx, "")

	wild, _ := game.InitialLayout().Replace(game.Ball{Color: game.Yellow, X: 10, Y: 10, VX: 99, VY: -99})
	snap, err := m.LoadLayout(ctx, s.ID, wild)
	if err != nil {
		t.Fatalf("LoadLayout: %v", err)
	}
	yellow, _ := snap.Balls.Ball(game.Yellow)
	if yellow.VX != 10 || yellow.VY != -10 || yellow.X != 10 {
		t.Errorf("loaded yellow = %+v", yellow)
	}

	snap, err = m.Reset(ctx, s.ID)
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	yellow, _ = snap.Balls.Ball(game.Yellow)
	if yellow.X != game.TableWidth/2 || yellow.VX != 0 {
		t.Errorf("reset yellow = %+v", yellow)
	}
	if snap.Version != 2 {
		t.Errorf("version = %d, want 2", snap.Version)
	}
}

func TestUnknownTable(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()
	if _, err := m.Snapshot(ctx, "nope"); !errors.Is(err, ErrTableNotFound) {
		t.Errorf("Snapshot: %v", err)
	}
	if _, err := m.Reset(ctx, "nope"); !errors.Is(err, ErrTableNotFound) {
		t.Errorf("Reset: %v", err)
	}
	if err := m.Delete(ctx, "nope"); !errors.Is(err, ErrTableNotFound) {
		t.Errorf("Delete: %v", err)
	}
}

// TestRedisStore needs a live Redis; set TEST_REDIS_URL to run it.
func TestRedisStore(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	rdb, err := tcredis.Connect(url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer rdb.Close()

	m := NewManager(NewRedisStore(rdb, time.Minute), game.DefaultPolicy(), "test-secret", time.Hour)
	ctx := context.Background()
	s, _, err := m.Create(ctx, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer m.Delete(ctx, s.ID)

	if _, err := m.Apply(ctx, s.ID, game.Edit{Ball: game.White, Field: game.FieldVY, Value: 4}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	snap, err := m.Snapshot(ctx, s.ID)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	white, _ := snap.Balls.Ball(game.White)
	if white.VY != 4 || snap.Version != 1 {
		t.Errorf("round trip through redis lost state: %+v v%d", white, snap.Version)
	}
}

func TestNewManagerDefaultsTokenTTL(t *testing.T) {
	m := NewManager(NewMemoryStore(), game.DefaultPolicy(), "test-secret", -time.Minute)
	if m.tokenTTL != 12*time.Hour {
		t.Errorf("tokenTTL = %v, want 12h", m.tokenTTL)
	}
	token, err := m.signToken("abc")
	if err != nil {
		t.Fatalf("signToken: %v", err)
	}
	if id, err := m.ParseToken(token); err != nil || id != "abc" {
		t.Errorf("ParseToken = %q, %v", id, err)
	}
}
