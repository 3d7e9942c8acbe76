package dependency

import (
	"fmt"
	"slices"
	"time"

	"github.com/Ph2006/sistema-orbit-sub006/internal/storage"
)

// WorkingDays computes an end date from a start and a duration in working days.
type WorkingDays interface {
	AddWorkingDays(start time.Time, duration float64) time.Time
}

func cloneAll(assignments []storage.TaskAssignment) []storage.TaskAssignment {
	out := make([]storage.TaskAssignment, len(assignments))
	for i, a := range assignments {
		out[i] = a.Clone()
	}
	return out
}

// UpdateDependentDates moves every assignment downstream of changedID so that it starts
// exactly when its predecessor ends, recomputing its end date. The input is not modified.
//
// Each assignment is moved at most once per call: when two paths reach the same
// assignment, the first one walked wins.
func UpdateDependentDates(assignments []storage.TaskAssignment, changedID string, cal WorkingDays) ([]storage.TaskAssignment, error) {
	const op = "service.dependency.UpdateDependentDates"

	out := cloneAll(assignments)
	g := buildGraph(out)

	if _, ok := g.index[changedID]; !ok {
		return nil, fmt.Errorf("%s: id=%s: %w", op, changedID, ErrAssignmentNotFound)
	}

	if path := g.cycleFrom(changedID, map[string]int{}); path != nil {
		return nil, fmt.Errorf("%s: %w", op, &CycleError{Path: path})
	}

	visited := map[string]bool{changedID: true}

	var propagate func(id string)
	propagate = func(id string) {
		for _, depID := range g.dependents[id] {
			if visited[depID] {
				continue
			}
			visited[depID] = true

			pred := out[g.index[id]]
			dep := &out[g.index[depID]]
			dep.StartDate = pred.EndDate
			dep.EndDate = cal.AddWorkingDays(dep.StartDate, dep.Duration)

			propagate(depID)
		}
	}
	propagate(changedID)

	return out, nil
}

// Reschedule sets a new start and duration on one assignment and propagates the change.
func Reschedule(assignments []storage.TaskAssignment, id string, start time.Time, duration float64, cal WorkingDays) ([]storage.TaskAssignment, error) {
	const op = "service.dependency.Reschedule"

	if !ValidDuration(duration) {
		return nil, fmt.Errorf("%s: duration=%v: %w", op, duration, ErrInvalidDuration)
	}

	out := cloneAll(assignments)
	found := false
	for i := range out {
		if out[i].ID != id {
			continue
		}
		out[i].StartDate = start
		out[i].Duration = duration
		out[i].EndDate = cal.AddWorkingDays(start, duration)
		found = true
		break
	}
	if !found {
		return nil, fmt.Errorf("%s: id=%s: %w", op, id, ErrAssignmentNotFound)
	}

	return UpdateDependentDates(out, id, cal)
}

// ToggleDependency adds or removes predecessorID from the dependsOn list of dependentID.
//
// Enabling snaps the dependent's start to the predecessor's current end and propagates
// from the dependent. Disabling only drops the link; dates stay as last computed.
func ToggleDependency(assignments []storage.TaskAssignment, dependentID, predecessorID string, enabled bool, cal WorkingDays) ([]storage.TaskAssignment, error) {
	const op = "service.dependency.ToggleDependency"

	out := cloneAll(assignments)
	g := buildGraph(out)

	di, ok := g.index[dependentID]
	if !ok {
		return nil, fmt.Errorf("%s: dependent id=%s: %w", op, dependentID, ErrAssignmentNotFound)
	}

	if !enabled {
		kept := out[di].DependsOn[:0]
		for _, pred := range out[di].DependsOn {
			if pred != predecessorID {
				kept = append(kept, pred)
			}
		}
		out[di].DependsOn = kept
		return out, nil
	}

	if err := ValidateDependency(out, dependentID, predecessorID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	dep := &out[di]
	if !slices.Contains(dep.DependsOn, predecessorID) {
		dep.DependsOn = append(dep.DependsOn, predecessorID)
	}
	dep.StartDate = out[g.index[predecessorID]].EndDate
	dep.EndDate = cal.AddWorkingDays(dep.StartDate, dep.Duration)

	return UpdateDependentDates(out, dependentID, cal)
}

// ChangedAssignments returns the assignments of after whose schedule or links differ from before.
// Assignments absent from before are included.
func ChangedAssignments(before, after []storage.TaskAssignment) []storage.TaskAssignment {
	prev := make(map[string]storage.TaskAssignment, len(before))
	for _, a := range before {
		prev[a.ID] = a
	}

	var changed []storage.TaskAssignment
	for _, a := range after {
		p, ok := prev[a.ID]
		if !ok ||
			!p.StartDate.Equal(a.StartDate) ||
			!p.EndDate.Equal(a.EndDate) ||
			p.Duration != a.Duration ||
			!slices.Equal(p.DependsOn, a.DependsOn) {
			changed = append(changed, a)
		}
	}
	return changed
}
