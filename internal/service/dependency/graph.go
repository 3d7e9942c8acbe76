package dependency

import (
	"errors"
	"strings"

	"github.com/Ph2006/sistema-orbit-sub006/internal/storage"
)

var (
	ErrDependencyCycle    = errors.New("dependency cycle")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrInvalidDuration    = errors.New("duration must be positive and at most 3650 days")
	ErrSelfDependency     = errors.New("assignment cannot depend on itself")
)

// MaxDuration is the longest assignment, in days, the calendar will walk.
const MaxDuration = 3650

// ValidDuration reports whether duration is in (0, MaxDuration]. NaN is rejected.
func ValidDuration(duration float64) bool {
	return duration > 0 && duration <= MaxDuration
}

// CycleError carries the ids forming the cycle, first id repeated at the end.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return "dependency cycle: " + strings.Join(e.Path, " -> ")
}

func (e *CycleError) Unwrap() error {
	return ErrDependencyCycle
}

// graph maps a predecessor id to its dependents, in input order.
type graph struct {
	index      map[string]int
	dependents map[string][]string
}

func buildGraph(assignments []storage.TaskAssignment) graph {
	g := graph{
		index:      make(map[string]int, len(assignments)),
		dependents: make(map[string][]string),
	}
	for i, a := range assignments {
		g.index[a.ID] = i
	}

	for _, a := range assignments {
		seen := make(map[string]bool, len(a.DependsOn))
		for _, pred := range a.DependsOn {
			if pred == a.ID || seen[pred] {
				continue
			}
			// dangling ids are treated as no dependency at all
			if _, ok := g.index[pred]; !ok {
				continue
			}
			seen[pred] = true
			g.dependents[pred] = append(g.dependents[pred], a.ID)
		}
	}

	return g
}

// cycleFrom returns the first cycle reachable from start, or nil.
func (g graph) cycleFrom(start string, state map[string]int) []string {
	const (
		visiting = 1
		done     = 2
	)

	var stack []string
	var walk func(id string) []string
	walk = func(id string) []string {
		state[id] = visiting
		stack = append(stack, id)
		for _, next := range g.dependents[id] {
			switch state[next] {
			case visiting:
				for i, s := range stack {
					if s == next {
						path := append([]string(nil), stack[i:]...)
						return append(path, next)
					}
				}
			case done:
				continue
			default:
				if path := walk(next); path != nil {
					return path
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[id] = done
		return nil
	}

	if state[start] != 0 {
		return nil
	}
	return walk(start)
}

// reaches reports whether to is downstream of from, returning the path.
func (g graph) reaches(from, to string) []string {
	prev := map[string]string{from: ""}
	queue := []string{from}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if id == to {
			var path []string
			for cur := to; cur != ""; cur = prev[cur] {
				path = append([]string{cur}, path...)
			}
			return path
		}
		for _, next := range g.dependents[id] {
			if _, ok := prev[next]; ok {
				continue
			}
			prev[next] = id
			queue = append(queue, next)
		}
	}
	return nil
}

// DetectCycle returns the first dependency cycle in assignments, or nil.
func DetectCycle(assignments []storage.TaskAssignment) []string {
	g := buildGraph(assignments)
	state := make(map[string]int, len(assignments))
	for _, a := range assignments {
		if path := g.cycleFrom(a.ID, state); path != nil {
			return path
		}
	}
	return nil
}

// ValidateDependency checks that dependentID may start depending on predecessorID.
func ValidateDependency(assignments []storage.TaskAssignment, dependentID, predecessorID string) error {
	if dependentID == predecessorID {
		return ErrSelfDependency
	}

	g := buildGraph(assignments)
	if _, ok := g.index[dependentID]; !ok {
		return ErrAssignmentNotFound
	}
	if _, ok := g.index[predecessorID]; !ok {
		return ErrAssignmentNotFound
	}

	if path := g.reaches(dependentID, predecessorID); path != nil {
		return &CycleError{Path: append(path, dependentID)}
	}

	return nil
}

// DanglingDependencies lists, per assignment id, the dependsOn ids that match no assignment.
func DanglingDependencies(assignments []storage.TaskAssignment) map[string][]string {
	ids := make(map[string]bool, len(assignments))
	for _, a := range assignments {
		ids[a.ID] = true
	}

	out := map[string][]string{}
	for _, a := range assignments {
		for _, pred := range a.DependsOn {
			if !ids[pred] {
				out[a.ID] = append(out[a.ID], pred)
			}
		}
	}
	return out
}
