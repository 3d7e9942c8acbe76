package leadtime

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ph2006/sistema-orbit-sub006/internal/storage"
)

func TestCalculate(t *testing.T) {
	plan := []storage.Stage{
		{StageName: "Corte", DurationDays: 2},
		{StageName: "Solda", DurationDays: 3},
		{StageName: "Pintura", DurationDays: 1},
	}

	days := Calculate(plan)
	assert.Equal(t, 6, days)

	badge := Classify(days)
	assert.Equal(t, LevelShort, badge.Level)
	assert.Equal(t, "green", badge.Color)
	assert.Equal(t, "6 dias", badge.Label)
}

func TestCalculate_EmptyAndMissing(t *testing.T) {
	assert.Equal(t, 0, Calculate(nil))
	assert.Equal(t, 0, Calculate([]storage.Stage{}))
	assert.Equal(t, 2, Calculate([]storage.Stage{{StageName: "Corte"}, {StageName: "Solda", DurationDays: 2}}))
}

func TestCalculate_Rounding(t *testing.T) {
	assert.Equal(t, 1, Calculate([]storage.Stage{{StageName: "a", DurationDays: 0.1}, {StageName: "b", DurationDays: 0.2}, {StageName: "c", DurationDays: 0.7}}))
	assert.Equal(t, 3, Calculate([]storage.Stage{{StageName: "a", DurationDays: 1.25}, {StageName: "b", DurationDays: 1.25}}))
	assert.Equal(t, 2, Calculate([]storage.Stage{{StageName: "a", DurationDays: 1.2}, {StageName: "b", DurationDays: 1.2}}))
}

func TestCalculate_Additive(t *testing.T) {
	planA := []storage.Stage{{StageName: "Corte", DurationDays: 2}, {StageName: "Dobra", DurationDays: 4}}
	planB := []storage.Stage{{StageName: "Solda", DurationDays: 3}, {StageName: "Pintura", DurationDays: 11}}

	joined := append(append([]storage.Stage{}, planA...), planB...)
	assert.Equal(t, Calculate(planA)+Calculate(planB), Calculate(joined))
}

func TestClassify_Thresholds(t *testing.T) {
	tests := []struct {
		days  int
		level string
		color string
	}{
		{0, LevelUndefined, "gray"},
		{1, LevelShort, "green"},
		{7, LevelShort, "green"},
		{8, LevelMedium, "yellow"},
		{21, LevelMedium, "yellow"},
		{22, LevelLong, "red"},
		{90, LevelLong, "red"},
	}

	for _, tt := range tests {
		b := Classify(tt.days)
		assert.Equal(t, tt.level, b.Level, "days=%d", tt.days)
		assert.Equal(t, tt.color, b.Color, "days=%d", tt.days)
	}

	assert.Equal(t, "1 dia", Classify(1).Label)
}
