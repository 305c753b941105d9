package snake

// Snake is the ordered list of occupied cells, head first, plus the direction it
// moved last tick and the direction requested for the next one.
type Snake struct {
	body    []Cell
	current Direction
	pending Direction
}

// NewSnake builds a snake from body cells (head first) heading in dir.
func NewSnake(body []Cell, dir Direction) *Snake {
	cells := make([]Cell, len(body))
	copy(cells, body)
	return &Snake{
		body:    cells,
		current: dir,
		pending: dir,
	}
}

// ProposeDirection records d for the next tick unless it reverses the current direction.
func (s *Snake) ProposeDirection(d Direction) bool {
	if !d.Valid() || d == s.current.Opposite() {
		return false
	}
	s.pending = d
	return true
}

// Advance commits the pending direction and returns where the head would move.
// The body is left untouched; Session.Step decides whether the move happens.
func (s *Snake) Advance() Cell {
	s.current = s.pending
	return s.Head().Move(s.current)
}

// Head returns the first body cell.
func (s *Snake) Head() Cell {
	return s.body[0]
}

// Len returns the number of body cells.
func (s *Snake) Len() int {
	return len(s.body)
}

// Direction returns the direction applied on the last tick.
func (s *Snake) Direction() Direction {
	return s.current
}

// Pending returns the direction that the next tick will apply.
func (s *Snake) Pending() Direction {
	return s.pending
}

// Contains reports whether any body cell, tail included, equals c.
func (s *Snake) Contains(c Cell) bool {
	for _, part := range s.body {
		if part == c {
			return true
		}
	}
	return false
}

// Cells returns a copy of the body, head first.
func (s *Snake) Cells() []Cell {
	out := make([]Cell, len(s.body))
	copy(out, s.body)
	return out
}

func (s *Snake) occupied() map[Cell]struct{} {
	set := make(map[Cell]struct{}, len(s.body))
	for _, part := range s.body {
		set[part] = struct{}{}
	}
	return set
}

// push prepends head and drops the tail unless grow is set.
func (s *Snake) push(head Cell, grow bool) {
	if grow {
		s.body = append(s.body, Cell{})
	}
	copy(s.body[1:], s.body[:len(s.body)-1])
	s.body[0] = head
}
