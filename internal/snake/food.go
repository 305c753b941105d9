package snake

import "golang.org/x/exp/rand"

// randomDraws bounds the rejection-sampling phase of PlaceFood, in multiples of the board size.
const randomDraws = 4

// PlaceFood picks a uniformly random cell on a dimension x dimension board that is not in occupied.
// It draws random cells first and, if those keep landing on occupied cells, picks among the free
// cells directly. ok is false only when no free cell exists.
func PlaceFood(rng *rand.Rand, dimension int, occupied map[Cell]struct{}) (Cell, bool) {
	if dimension <= 0 {
		return Cell{}, false
	}
	capacity := dimension * dimension
	for i := 0; i < randomDraws*capacity; i++ {
		c := Cell{X: rng.Intn(dimension), Y: rng.Intn(dimension)}
		if _, taken := occupied[c]; !taken {
			return c, true
		}
	}

	free := make([]Cell, 0, capacity)
	for y := 0; y < dimension; y++ {
		for x := 0; x < dimension; x++ {
			c := Cell{X: x, Y: y}
			if _, taken := occupied[c]; !taken {
				free = append(free, c)
			}
		}
	}
	if len(free) == 0 {
		return Cell{}, false
	}
	return free[rng.Intn(len(free))], true
}
