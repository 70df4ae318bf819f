package game

// sampleFactor bounds rejection sampling to sampleFactor*W*H draws before
// falling back to enumerating the free cells.
const sampleFactor = 4

// placeFood picks a random cell not covered by the snake. It returns false
// when the snake covers the whole board.
func (s *State) placeFood() (Position, bool) {
	cells := s.width * s.height
	if len(s.snake) >= cells {
		return Position{}, false
	}
	for i := 0; i < sampleFactor*cells; i++ {
		p := Position{s.rng.Intn(s.width), s.rng.Intn(s.height)}
		if !s.Occupied(p) {
			return p, true
		}
	}
	// Crowded board: pick uniformly among what is left.
	taken := make(map[Position]struct{}, len(s.snake))
	for _, p := range s.snake {
		taken[p] = struct{}{}
	}
	free := make([]Position, 0, cells-len(taken))
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			p := Position{x, y}
			if _, ok := taken[p]; !ok {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		return Position{}, false
	}
	return free[s.rng.Intn(len(free))], true
}
