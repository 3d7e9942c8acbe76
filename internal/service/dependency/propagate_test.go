package dependency

import (
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ph2006/sistema-orbit-sub006/internal/service/calendar"
	"github.com/Ph2006/sistema-orbit-sub006/internal/storage"
)

func day(m time.Month, d int) time.Time {
	return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC)
}

func weekdays(t *testing.T) *calendar.Calendar {
	t.Helper()
	c, err := calendar.New(calendar.DefaultCalendar(), calendar.NewHolidaySet(), slog.Default())
	require.NoError(t, err)
	return c
}

func byID(t *testing.T, list []storage.TaskAssignment, id string) storage.TaskAssignment {
	t.Helper()
	for _, a := range list {
		if a.ID == id {
			return a
		}
	}
	t.Fatalf("assignment %s not found", id)
	return storage.TaskAssignment{}
}

func TestUpdateDependentDates_SameInstantStart(t *testing.T) {
	cal := weekdays(t)
	list := []storage.TaskAssignment{
		{ID: "A", Duration: 2, StartDate: day(time.March, 6), EndDate: day(time.March, 10)},
		{ID: "B", Duration: 3, DependsOn: []string{"A"}, StartDate: day(time.March, 1), EndDate: day(time.March, 6)},
	}

	out, err := UpdateDependentDates(list, "A", cal)
	require.NoError(t, err)

	b := byID(t, out, "B")
	assert.Equal(t, day(time.March, 10), b.StartDate)
	assert.Equal(t, cal.AddWorkingDays(day(time.March, 10), 3), b.EndDate)
	assert.Equal(t, day(time.March, 14), b.EndDate)
}

func TestUpdateDependentDates_Transitive(t *testing.T) {
	cal := weekdays(t)
	list := []storage.TaskAssignment{
		{ID: "C", Duration: 1, DependsOn: []string{"B"}},
		{ID: "A", Duration: 5, StartDate: day(time.March, 4), EndDate: day(time.March, 11)},
		{ID: "B", Duration: 2, DependsOn: []string{"A"}},
		{ID: "X", Duration: 1, StartDate: day(time.February, 1), EndDate: day(time.February, 2)},
	}

	out, err := UpdateDependentDates(list, "A", cal)
	require.NoError(t, err)

	b := byID(t, out, "B")
	c := byID(t, out, "C")
	assert.Equal(t, day(time.March, 11), b.StartDate)
	assert.Equal(t, day(time.March, 13), b.EndDate)
	assert.Equal(t, b.EndDate, c.StartDate)
	assert.Equal(t, day(time.March, 14), c.EndDate)
	assert.Equal(t, day(time.February, 1), byID(t, out, "X").StartDate)
}

func TestUpdateDependentDates_DiamondFirstPathWins(t *testing.T) {
	cal := weekdays(t)
	list := []storage.TaskAssignment{
		{ID: "A", Duration: 1, EndDate: day(time.March, 11)},
		{ID: "B", Duration: 1, DependsOn: []string{"A"}},
		{ID: "C", Duration: 4, DependsOn: []string{"A"}},
		{ID: "D", Duration: 1, DependsOn: []string{"B", "C"}},
	}

	out, err := UpdateDependentDates(list, "A", cal)
	require.NoError(t, err)

	assert.Equal(t, day(time.March, 12), byID(t, out, "B").EndDate)
	assert.Equal(t, day(time.March, 15), byID(t, out, "C").EndDate)
	d := byID(t, out, "D")
	assert.Equal(t, day(time.March, 12), d.StartDate)
	assert.Equal(t, day(time.March, 13), d.EndDate)
}

func TestUpdateDependentDates_DoesNotMutateInput(t *testing.T) {
	cal := weekdays(t)
	list := []storage.TaskAssignment{
		{ID: "A", Duration: 1, EndDate: day(time.March, 11)},
		{ID: "B", Duration: 2, DependsOn: []string{"A"}, StartDate: day(time.January, 2), EndDate: day(time.January, 4)},
	}

	out, err := UpdateDependentDates(list, "A", cal)
	require.NoError(t, err)

	assert.Equal(t, day(time.January, 2), list[1].StartDate)
	out[1].DependsOn[0] = "Z"
	assert.Equal(t, "A", list[1].DependsOn[0])
}

func TestUpdateDependentDates_DanglingReferenceIgnored(t *testing.T) {
	cal := weekdays(t)
	list := []storage.TaskAssignment{
		{ID: "A", Duration: 1, EndDate: day(time.March, 11)},
		{ID: "B", Duration: 1, DependsOn: []string{"deleted", "A"}},
		{ID: "C", Duration: 1, DependsOn: []string{"deleted"}, StartDate: day(time.January, 2), EndDate: day(time.January, 3)},
	}

	out, err := UpdateDependentDates(list, "A", cal)
	require.NoError(t, err)

	assert.Equal(t, day(time.March, 11), byID(t, out, "B").StartDate)
	assert.Equal(t, day(time.January, 2), byID(t, out, "C").StartDate)
	assert.Equal(t, map[string][]string{"B": {"deleted"}, "C": {"deleted"}}, DanglingDependencies(list))
}

func TestUpdateDependentDates_CycleRejected(t *testing.T) {
	cal := weekdays(t)
	list := []storage.TaskAssignment{
		{ID: "A", Duration: 1, EndDate: day(time.March, 11)},
		{ID: "B", Duration: 1, DependsOn: []string{"A", "C"}},
		{ID: "C", Duration: 1, DependsOn: []string{"B"}},
	}

	_, err := UpdateDependentDates(list, "A", cal)
	require.ErrorIs(t, err, ErrDependencyCycle)

	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, []string{"B", "C", "B"}, cycleErr.Path)
}

func TestUpdateDependentDates_UnreachableCycleIgnored(t *testing.T) {
	cal := weekdays(t)
	list := []storage.TaskAssignment{
		{ID: "A", Duration: 1, EndDate: day(time.March, 11)},
		{ID: "B", Duration: 1, DependsOn: []string{"A"}},
		{ID: "X", Duration: 1, DependsOn: []string{"Y"}},
		{ID: "Y", Duration: 1, DependsOn: []string{"X"}},
	}

	out, err := UpdateDependentDates(list, "A", cal)
	require.NoError(t, err)
	assert.Equal(t, day(time.March, 11), byID(t, out, "B").StartDate)

	assert.Equal(t, []string{"X", "Y", "X"}, DetectCycle(list))
}

func TestUpdateDependentDates_UnknownID(t *testing.T) {
	_, err := UpdateDependentDates([]storage.TaskAssignment{{ID: "A", Duration: 1}}, "nope", weekdays(t))
	assert.ErrorIs(t, err, ErrAssignmentNotFound)
}

func TestReschedule(t *testing.T) {
	cal := weekdays(t)
	list := []storage.TaskAssignment{
		{ID: "A", Duration: 1, StartDate: day(time.March, 1), EndDate: day(time.March, 4)},
		{ID: "B", Duration: 1, DependsOn: []string{"A"}, StartDate: day(time.March, 4), EndDate: day(time.March, 5)},
	}

	out, err := Reschedule(list, "A", day(time.March, 11), 2, cal)
	require.NoError(t, err)

	a := byID(t, out, "A")
	assert.Equal(t, 2.0, a.Duration)
	assert.Equal(t, day(time.March, 13), a.EndDate)
	assert.Equal(t, day(time.March, 13), byID(t, out, "B").StartDate)

	changed := ChangedAssignments(list, out)
	assert.Len(t, changed, 2)

	_, err = Reschedule(list, "A", day(time.March, 11), 0, cal)
	assert.ErrorIs(t, err, ErrInvalidDuration)
	_, err = Reschedule(list, "A", day(time.March, 11), -2, cal)
	assert.ErrorIs(t, err, ErrInvalidDuration)
	_, err = Reschedule(list, "A", day(time.March, 11), 1e12, cal)
	assert.ErrorIs(t, err, ErrInvalidDuration)
	_, err = Reschedule(list, "A", day(time.March, 11), math.NaN(), cal)
	assert.ErrorIs(t, err, ErrInvalidDuration)
	_, err = Reschedule(list, "Z", day(time.March, 11), 1, cal)
	assert.ErrorIs(t, err, ErrAssignmentNotFound)
}

func TestToggleDependency_Enable(t *testing.T) {
	cal := weekdays(t)
	list := []storage.TaskAssignment{
		{ID: "A", Duration: 5, EndDate: day(time.March, 11)},
		{ID: "B", Duration: 2, StartDate: day(time.March, 1), EndDate: day(time.March, 5)},
		{ID: "C", Duration: 1, DependsOn: []string{"B"}, StartDate: day(time.March, 5), EndDate: day(time.March, 6)},
	}

	out, err := ToggleDependency(list, "B", "A", true, cal)
	require.NoError(t, err)

	b := byID(t, out, "B")
	assert.Equal(t, []string{"A"}, b.DependsOn)
	assert.Equal(t, day(time.March, 11), b.StartDate)
	assert.Equal(t, day(time.March, 13), b.EndDate)

	c := byID(t, out, "C")
	assert.Equal(t, day(time.March, 13), c.StartDate)
	assert.Equal(t, day(time.March, 14), c.EndDate)

	again, err := ToggleDependency(out, "B", "A", true, cal)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, byID(t, again, "B").DependsOn)
}

func TestToggleDependency_DisableKeepsDates(t *testing.T) {
	cal := weekdays(t)
	list := []storage.TaskAssignment{
		{ID: "A", Duration: 5, EndDate: day(time.March, 11)},
		{ID: "B", Duration: 2, DependsOn: []string{"A"}, StartDate: day(time.March, 11), EndDate: day(time.March, 13)},
	}

	out, err := ToggleDependency(list, "B", "A", false, cal)
	require.NoError(t, err)

	b := byID(t, out, "B")
	assert.Empty(t, b.DependsOn)
	assert.Equal(t, day(time.March, 11), b.StartDate)
	assert.Equal(t, day(time.March, 13), b.EndDate)
	assert.Equal(t, []string{"A"}, list[1].DependsOn)
}

func TestToggleDependency_Rejections(t *testing.T) {
	cal := weekdays(t)
	list := []storage.TaskAssignment{
		{ID: "A", Duration: 1, DependsOn: []string{"B"}},
		{ID: "B", Duration: 1},
	}

	_, err := ToggleDependency(list, "B", "A", true, cal)
	assert.ErrorIs(t, err, ErrDependencyCycle)

	_, err = ToggleDependency(list, "B", "B", true, cal)
	assert.ErrorIs(t, err, ErrSelfDependency)

	_, err = ToggleDependency(list, "B", "ghost", true, cal)
	assert.ErrorIs(t, err, ErrAssignmentNotFound)

	_, err = ToggleDependency(list, "ghost", "A", false, cal)
	assert.ErrorIs(t, err, ErrAssignmentNotFound)
}

func TestValidateDependency(t *testing.T) {
	list := []storage.TaskAssignment{
		{ID: "A"},
		{ID: "B", DependsOn: []string{"A"}},
		{ID: "C", DependsOn: []string{"B"}},
	}

	assert.NoError(t, ValidateDependency(list, "C", "A"))

	err := ValidateDependency(list, "A", "C")
	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, []string{"A", "B", "C", "A"}, cycleErr.Path)

	assert.Nil(t, DetectCycle(list))
}

func TestChangedAssignments(t *testing.T) {
	before := []storage.TaskAssignment{
		{ID: "A", StartDate: day(time.March, 1)},
		{ID: "B", StartDate: day(time.March, 1)},
	}
	after := []storage.TaskAssignment{
		{ID: "A", StartDate: day(time.March, 1)},
		{ID: "B", StartDate: day(time.March, 2)},
		{ID: "N"},
	}

	changed := ChangedAssignments(before, after)
	require.Len(t, changed, 2)
	assert.Equal(t, "B", changed[0].ID)
	assert.Equal(t, "N", changed[1].ID)
}
