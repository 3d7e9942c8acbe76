package report

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Ph2006/sistema-orbit-sub006/internal/service/feasibility"
	"github.com/Ph2006/sistema-orbit-sub006/internal/storage"
)

type MockScheduleStorage struct {
	mock.Mock
}

func (m *MockScheduleStorage) GetOrderAssignments(ctx context.Context, orderID string) ([]storage.TaskAssignment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.TaskAssignment), args.Error(1)
}

func (m *MockScheduleStorage) GetTasks(ctx context.Context) ([]storage.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.Task), args.Error(1)
}

func open(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func cell(t *testing.T, f *excelize.File, sheet, name string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, name)
	require.NoError(t, err)
	return v
}

func TestFeasibilityExcel(t *testing.T) {
	res := feasibility.Result{
		IsViable:              false,
		SuggestedDate:         time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		TotalAdjustedLeadTime: 30,
		Confidence:            18,
		AvailableDays:         61,
		Analysis: []feasibility.StageAnalysis{
			{StageName: "Solda", OriginalDuration: 10, AdjustedDuration: 30, Workload: 0.95, Factor: 3, Band: feasibility.BandCritical, Bottleneck: true},
			{StageName: "Pintura", OriginalDuration: 2, AdjustedDuration: 2, Workload: 0.5, Factor: 1, Band: feasibility.BandNormal},
		},
	}

	data, err := FeasibilityExcel(res, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	f := open(t, data)
	assert.Equal(t, []string{feasibilitySheet}, f.GetSheetList())

	assert.Equal(t, "Etapa", cell(t, f, feasibilitySheet, "A1"))
	assert.Equal(t, "Gargalo", cell(t, f, feasibilitySheet, "G1"))
	assert.Equal(t, "Solda", cell(t, f, feasibilitySheet, "A2"))
	assert.Equal(t, "30", cell(t, f, feasibilitySheet, "F2"))
	assert.Equal(t, "Sim", cell(t, f, feasibilitySheet, "G2"))
	assert.Equal(t, "Pintura", cell(t, f, feasibilitySheet, "A3"))
	assert.Equal(t, "Não", cell(t, f, feasibilitySheet, "G3"))

	assert.Equal(t, "Viável", cell(t, f, feasibilitySheet, "A5"))
	assert.Equal(t, "Não", cell(t, f, feasibilitySheet, "B5"))
	assert.Equal(t, "18", cell(t, f, feasibilitySheet, "B10"))

	hot, err := f.GetCellStyle(feasibilitySheet, "A2")
	require.NoError(t, err)
	plain, err := f.GetCellStyle(feasibilitySheet, "A3")
	require.NoError(t, err)
	assert.NotEqual(t, hot, plain)
}

func TestFeasibilityExcel_Empty(t *testing.T) {
	data, err := FeasibilityExcel(feasibility.Result{IsViable: true, Confidence: 90}, time.Now())
	require.NoError(t, err)

	f := open(t, data)
	assert.Equal(t, "Viável", cell(t, f, feasibilitySheet, "A3"))
	assert.Equal(t, "Sim", cell(t, f, feasibilitySheet, "B3"))
}

func TestScheduleExcel(t *testing.T) {
	st := new(MockScheduleStorage)
	st.On("GetOrderAssignments", mock.Anything, "O-1").Return([]storage.TaskAssignment{
		{ID: "A", TaskID: "cut", Duration: 2, StartDate: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC), Progress: 40},
		{ID: "B", TaskID: "weld", Duration: 1, DependsOn: []string{"A"}, ResponsibleEmail: "b@orbit.io"},
	}, nil)
	st.On("GetTasks", mock.Anything).Return([]storage.Task{{ID: "cut", Name: "Corte"}}, nil)

	data, err := NewService(st).ScheduleExcel(context.Background(), "O-1")
	require.NoError(t, err)

	f := open(t, data)
	assert.Equal(t, "Pedido", cell(t, f, scheduleSheet, "A1"))
	assert.Equal(t, "O-1", cell(t, f, scheduleSheet, "A2"))
	assert.Equal(t, "Corte", cell(t, f, scheduleSheet, "C2"))
	assert.Equal(t, "40", cell(t, f, scheduleSheet, "G2"))
	assert.Equal(t, "weld", cell(t, f, scheduleSheet, "C3"))
	assert.Equal(t, "A", cell(t, f, scheduleSheet, "H3"))
	assert.Equal(t, "b@orbit.io", cell(t, f, scheduleSheet, "I3"))
}

func TestScheduleExcel_StorageError(t *testing.T) {
	st := new(MockScheduleStorage)
	st.On("GetOrderAssignments", mock.Anything, "O-1").Return(nil, errors.New("gone"))
	st.On("GetTasks", mock.Anything).Return([]storage.Task{}, nil)

	_, err := NewService(st).ScheduleExcel(context.Background(), "O-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "assignments: gone")
}
