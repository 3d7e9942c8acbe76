package feasibility

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Ph2006/sistema-orbit-sub006/internal/service/calendar"
)

type MockWorkloadProvider struct {
	mock.Mock
}

func (m *MockWorkloadProvider) SectorWorkload(ctx context.Context, stages []string) (map[string]float64, error) {
	args := m.Called(ctx, stages)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]float64), args.Error(1)
}

func fixedClock() time.Time {
	return today
}

func TestEstimator_AsksProviderForConsolidatedStages(t *testing.T) {
	provider := new(MockWorkloadProvider)
	provider.On("SectorWorkload", mock.Anything, []string{"Solda"}).Return(map[string]float64{"Solda": 0.95}, nil)

	e := NewEstimator(provider, WithClock(fixedClock))
	res, err := e.Estimate(context.Background(), single("Solda", 10), on(time.May, 1))
	require.NoError(t, err)

	assert.Equal(t, 30, res.TotalAdjustedLeadTime)
	provider.AssertExpectations(t)
}

func TestEstimator_EmptyItemsSkipProvider(t *testing.T) {
	provider := new(MockWorkloadProvider)

	e := NewEstimator(provider, WithClock(fixedClock))
	res, err := e.Estimate(context.Background(), nil, on(time.May, 1))
	require.NoError(t, err)

	assert.True(t, res.IsViable)
	provider.AssertNotCalled(t, "SectorWorkload")
}

func TestEstimator_ProviderError(t *testing.T) {
	provider := new(MockWorkloadProvider)
	provider.On("SectorWorkload", mock.Anything, mock.Anything).Return(nil, errors.New("redis down"))

	e := NewEstimator(provider, WithClock(fixedClock))
	_, err := e.Estimate(context.Background(), single("Solda", 10), on(time.May, 1))
	assert.ErrorContains(t, err, "redis down")
}

func TestEstimator_BusinessDaySuggestion(t *testing.T) {
	cal, err := calendar.New(calendar.DefaultCalendar(), calendar.NewHolidaySet(), slog.Default())
	require.NoError(t, err)

	e := NewEstimator(StaticWorkload{"Montagem": 0.5}, WithClock(fixedClock), WithBusinessDays(cal))

	res, err := e.Estimate(context.Background(), single("Montagem", 10), on(time.March, 14))
	require.NoError(t, err)
	assert.Equal(t, on(time.March, 15), res.SuggestedDate)
	assert.Equal(t, 10, res.TotalAdjustedLeadTime)
	assert.False(t, res.IsViable)

	res, err = e.Estimate(context.Background(), single("Montagem", 10), on(time.March, 15))
	require.NoError(t, err)
	assert.True(t, res.IsViable)
}

func TestSimulatedWorkload(t *testing.T) {
	stages := []string{"Corte", "Solda", "Pintura"}

	a, err := NewSimulatedWorkload(42).SectorWorkload(context.Background(), stages)
	require.NoError(t, err)
	b, err := NewSimulatedWorkload(42).SectorWorkload(context.Background(), stages)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	for _, s := range stages {
		assert.GreaterOrEqual(t, a[s], 0.3)
		assert.LessOrEqual(t, a[s], 0.95)
	}
}

func TestStaticWorkload(t *testing.T) {
	w, err := StaticWorkload{"Corte": 0.4}.SectorWorkload(context.Background(), []string{"Corte", "Solda"})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"Corte": 0.4}, w)
}
