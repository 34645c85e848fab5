package presets

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/threecushion/backend/internal/database"
	"github.com/threecushion/backend/internal/game"
)

func TestDrillsAreValid(t *testing.T) {
	seen := map[string]bool{}
	for _, d := range Drills() {
		if seen[d.Name] {
			t.Errorf("duplicate drill name %q", d.Name)
		}
		seen[d.Name] = true

		layout, err := d.Layout()
		if err != nil {
			t.Fatalf("drill %q: %v", d.Name, err)
		}
		for _, b := range layout.Balls() {
			if b.X < 0 || b.X > game.TableWidth || b.Y < 0 || b.Y > game.TableHeight {
				t.Errorf("drill %q: %s ball off the cloth at (%.0f,%.0f)", d.Name, b.Color, b.X, b.Y)
			}
			if game.ClampVelocity(b.VX, game.DefaultMaxVelocity) != b.VX || game.ClampVelocity(b.VY, game.DefaultMaxVelocity) != b.VY {
				t.Errorf("drill %q: %s velocity exceeds the default limit", d.Name, b.Color)
			}
		}
	}
}

func TestDrillLayoutRejectsUnknownBall(t *testing.T) {
	d := Drill{Name: "bad", Balls: []game.Ball{{Color: "green"}}}
	if _, err := d.Layout(); !errors.Is(err, game.ErrUnknownBall) {
		t.Errorf("expected ErrUnknownBall, got %v", err)
	}
}

// TestRepositoryRoundTrip needs a migrated Postgres; set TEST_DATABASE_URL to run it.
func TestSaveRejectsBlankName(t *testing.T) {
	repo := &Repository{}
	err := repo.Save(context.Background(), " \t ", "", nil, game.InitialLayout())
	if !errors.Is(err, ErrInvalidPresetName) {
		t.Errorf("blank name: got %v", err)
	}
}

func TestRepositoryRoundTrip(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := database.Connect(url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	layout, _ := game.InitialLayout().Apply(game.Edit{Ball: game.Red, Field: game.FieldVX, Value: 4}, game.DefaultMaxVelocity)

	if err := repo.Save(ctx, "test-roundtrip", "round trip", []string{"test"}, layout); err != nil {
		t.Fatalf("Save: %v", err)
	}
	defer repo.Delete(ctx, "test-roundtrip")

	p, err := repo.Get(ctx, "test-roundtrip")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	got, err := DecodeLayout(p)
	if err != nil {
		t.Fatalf("DecodeLayout: %v", err)
	}
	if red, _ := got.Ball(game.Red); red.VX != 4 {
		t.Errorf("red vx = %v, want 4", red.VX)
	}

	list, err := repo.List(ctx, "test")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) == 0 {
		t.Error("expected tagged preset in list")
	}

	if err := repo.Delete(ctx, "test-roundtrip"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get(ctx, "test-roundtrip"); !errors.Is(err, ErrPresetNotFound) {
		t.Errorf("expected ErrPresetNotFound after delete, got %v", err)
	}
}
