package suite

import (
	"fmt"
	"sort"
	"strings"
)

// DependencyOrder returns the cases grouped in waves: every case
// of a wave depends only on cases of earlier waves. Cases within
// a wave are sorted by ID.
func (b *Bank) DependencyOrder() ([][]*Case, error) {
	if err := b.ValidateDependencies(); err != nil {
		return nil, err
	}
	cases := make(map[string]*Case, b.Count())
	for _, c := range b.All() {
		cases[c.ID] = c
	}
	return waves(cases)
}

// waves orders cases with Kahn's algorithm, one wave per round.
// It returns an error if a cycle is detected.
func waves(cases map[string]*Case) ([][]*Case, error) {
	inDegree := make(map[string]int, len(cases))
	dependents := make(map[string][]string, len(cases))

	for id, c := range cases {
		if _, exists := inDegree[id]; !exists {
			inDegree[id] = 0
		}
		for _, dep := range c.DependsOn {
			inDegree[id]++
			dependents[dep] = append(dependents[dep], id)
		}
	}

	var current []string
	for id, degree := range inDegree {
		if degree == 0 {
			current = append(current, id)
		}
	}

	var out [][]*Case
	placed := 0
	for len(current) > 0 {
		sort.Strings(current)
		wave := make([]*Case, 0, len(current))
		var next []string
		for _, id := range current {
			wave = append(wave, cases[id])
			for _, dep := range dependents[id] {
				inDegree[dep]--
				if inDegree[dep] == 0 {
					next = append(next, dep)
				}
			}
		}
		placed += len(wave)
		out = append(out, wave)
		current = next
	}

	if placed != len(cases) {
		return nil, fmt.Errorf(
			"circular dependency detected: %s", detectCycle(cases),
		)
	}
	return out, nil
}

// detectCycle returns a human-readable description of a
// dependency cycle. It uses iterative DFS with three colouring
// states.
func detectCycle(cases map[string]*Case) string {
	const (
		white = 0 // unvisited
		gray  = 1 // in current path
		black = 2 // finished
	)

	colour := make(map[string]int, len(cases))

	ids := make([]string, 0, len(cases))
	for id := range cases {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	type frame struct {
		id    string
		deps  []string
		index int
	}

	for _, startID := range ids {
		if colour[startID] != white {
			continue
		}

		stack := []frame{{id: startID, deps: sortedDeps(cases, startID)}}
		colour[startID] = gray

		for len(stack) > 0 {
			top := &stack[len(stack)-1]

			if top.index >= len(top.deps) {
				colour[top.id] = black
				stack = stack[:len(stack)-1]
				continue
			}

			dep := top.deps[top.index]
			top.index++

			switch colour[dep] {
			case gray:
				var path []string
				for i := len(stack) - 1; i >= 0; i-- {
					path = append(path, stack[i].id)
					if stack[i].id == dep {
						break
					}
				}
				path = append([]string{dep}, path...)
				return strings.Join(path, " -> ")
			case white:
				colour[dep] = gray
				stack = append(stack, frame{
					id:   dep,
					deps: sortedDeps(cases, dep),
				})
			}
		}
	}

	return "unknown cycle"
}

func sortedDeps(cases map[string]*Case, id string) []string {
	c, ok := cases[id]
	if !ok {
		return nil
	}
	deps := append([]string(nil), c.DependsOn...)
	sort.Strings(deps)
	return deps
}
