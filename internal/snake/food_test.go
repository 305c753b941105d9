package snake

import (
	"testing"

	"golang.org/x/exp/rand"
)

func TestPlaceFood_AvoidsOccupied(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const dim = 6
	occupied := make(map[Cell]struct{})
	// Fill all but a handful of cells so random draws collide often.
	for y := 0; y < dim; y++ {
		for x := 0; x < dim; x++ {
			if x+y < 2*dim-4 {
				occupied[Cell{X: x, Y: y}] = struct{}{}
			}
		}
	}
	for i := 0; i < 200; i++ {
		c, ok := PlaceFood(rng, dim, occupied)
		if !ok {
			t.Fatal("PlaceFood reported a full board")
		}
		if _, taken := occupied[c]; taken {
			t.Fatalf("food placed on occupied cell %v", c)
		}
		if c.X < 0 || c.X >= dim || c.Y < 0 || c.Y >= dim {
			t.Fatalf("food placed off the board at %v", c)
		}
	}
}

func TestPlaceFood_SingleFreeCell(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	const dim = 5
	free := Cell{X: 3, Y: 1}
	occupied := make(map[Cell]struct{})
	for y := 0; y < dim; y++ {
		for x := 0; x < dim; x++ {
			if c := (Cell{X: x, Y: y}); c != free {
				occupied[c] = struct{}{}
			}
		}
	}
	c, ok := PlaceFood(rng, dim, occupied)
	if !ok || c != free {
		t.Errorf("PlaceFood = %v, %t; want %v, true", c, ok, free)
	}
}

func TestPlaceFood_FullBoard(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	occupied := map[Cell]struct{}{{0, 0}: {}, {1, 0}: {}, {0, 1}: {}, {1, 1}: {}}
	if _, ok := PlaceFood(rng, 2, occupied); ok {
		t.Error("PlaceFood on a full board should fail")
	}
	if _, ok := PlaceFood(rng, 0, nil); ok {
		t.Error("PlaceFood on an empty board should fail")
	}
}

func TestPlaceFood_CoversBoard(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	seen := make(map[Cell]bool)
	for i := 0; i < 2000; i++ {
		c, _ := PlaceFood(rng, 4, nil)
		seen[c] = true
	}
	if len(seen) != 16 {
		t.Errorf("saw %d distinct cells, want 16", len(seen))
	}
}
