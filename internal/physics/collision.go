package physics

import "gonum.org/v1/gonum/spatial/r2"

// ResolveCollisions pushes every overlapping pair apart along the line of
// centres, half the penetration depth each. Pairs are visited with i < j in
// ascending order, so corrections compound within one pass. It returns the
// number of pairs that were overlapping.
func ResolveCollisions(s *Store) int {
	n := len(s.bodies)
	contacts := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a, b := s.Pair(i, j)
			if separate(a, b) {
				contacts++
			}
		}
	}
	return contacts
}

func separate(a, b *Body) bool {
	minDist := a.Radius + b.Radius
	axis := r2.Sub(a.Current, b.Current)
	normal, dist, ok := unit(axis)
	if dist >= minDist {
		return false
	}
	if !ok {
		normal = FallbackAxis
	}
	displacement := r2.Scale(0.5*(minDist-dist), normal)
	a.Current = r2.Add(a.Current, displacement)
	b.Current = r2.Sub(b.Current, displacement)
	return true
}
