package gen

import "strconv"

// stems hands out local variable names for one generated file. Each prefix
// counts on its own and skips names already taken in the file, such as the
// adapter parameters and the import aliases.
type stems struct {
	taken map[string]struct{}
	last  map[string]int
}

func newStems(taken ...string) *stems {
	s := &stems{
		taken: make(map[string]struct{}, len(taken)),
		last:  make(map[string]int),
	}

	s.take(taken...)

	return s
}

func (s *stems) take(names ...string) {
	for _, name := range names {
		s.taken[name] = struct{}{}
	}
}

// next returns prefix followed by the lowest free number, starting from 0.
func (s *stems) next(prefix string) string {
	for {
		name := prefix + strconv.Itoa(s.last[prefix])
		s.last[prefix]++

		if _, ok := s.taken[name]; !ok {
			s.taken[name] = struct{}{}
			return name
		}
	}
}
