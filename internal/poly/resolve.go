package poly

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"xmlbind-generator/internal/model"
)

var (
	// ErrAmbiguousPolymorphicMapping indicates the matchers cannot be totally ordered
	// by specificity (cyclic or inconsistent subtype data).
	ErrAmbiguousPolymorphicMapping = errors.New("ambiguous or incomplete polymorphic mapping")

	// ErrDuplicateMatcher indicates two matchers share a tag or a concrete type.
	ErrDuplicateMatcher = errors.New("duplicate polymorphic matcher")
)

// Validate checks that the tag to type mapping is injective and no type repeats.
func Validate(matchers []model.Matcher) error {
	tags := make(map[string]bool, len(matchers))
	types := make(map[model.TypeID]bool, len(matchers))

	for _, m := range matchers {
		if tags[m.Tag] {
			return fmt.Errorf("%w: tag %q", ErrDuplicateMatcher, m.Tag)
		}

		if types[m.Type] {
			return fmt.Errorf("%w: type %s", ErrDuplicateMatcher, m.Type)
		}

		tags[m.Tag] = true
		types[m.Type] = true
	}

	return nil
}

// Order returns matchers sorted so that whenever A's type is a strict subtype of B's
// type, A precedes B. Unrelated types keep their declaration order.
func Order(matchers []model.Matcher, h model.Hierarchy) ([]model.Matcher, error) {
	if err := Validate(matchers); err != nil {
		return nil, err
	}

	order, err := topoSort(len(matchers), func(i int) []int {
		// i must come after every matcher whose type is a strict subtype of i's type.
		var deps []int

		for j := range matchers {
			if j != i && h.IsSubtype(matchers[j].Type, matchers[i].Type) {
				deps = append(deps, j)
			}
		}

		return deps
	})
	if err != nil || len(order) != len(matchers) {
		return nil, fmt.Errorf("%w: ordered %d of %d matchers [%s]",
			ErrAmbiguousPolymorphicMapping, len(order), len(matchers), describe(matchers))
	}

	out := make([]model.Matcher, 0, len(order))
	for _, i := range order {
		out = append(out, matchers[i])
	}

	return out, nil
}

func describe(matchers []model.Matcher) string {
	parts := make([]string, 0, len(matchers))
	for _, m := range matchers {
		parts = append(parts, m.Tag+"="+m.Type.String())
	}

	return strings.Join(parts, ", ")
}

// topoSort returns indices in dependency order.
//
// depsFn(i) yields indices that must precede i. When multiple nodes are available
// the smallest index is picked, so the result is deterministic.
func topoSort(n int, depsFn func(i int) []int) ([]int, error) {
	if n <= 0 {
		return nil, nil
	}

	indeg := make([]int, n)
	out := make([][]int, n)

	for i := range n {
		for _, d := range depsFn(i) {
			if d < 0 || d >= n {
				return nil, fmt.Errorf("dependency index out of range: %d depends on %d", i, d)
			}

			indeg[i]++
			out[d] = append(out[d], i)
		}
	}

	for i := range out {
		sort.Ints(out[i])
	}

	var ready []int

	for i := range n {
		if indeg[i] == 0 {
			ready = append(ready, i)
		}
	}

	order := make([]int, 0, n)

	for len(ready) > 0 {
		i := ready[0]
		ready = ready[1:]

		order = append(order, i)

		for _, j := range out[i] {
			indeg[j]--
			if indeg[j] == 0 {
				k := sort.SearchInts(ready, j)
				ready = append(ready, 0)
				copy(ready[k+1:], ready[k:])
				ready[k] = j
			}
		}
	}

	if len(order) != n {
		return order, errors.New("cycle detected")
	}

	return order, nil
}
