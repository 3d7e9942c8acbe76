package feasibility

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Ph2006/sistema-orbit-sub006/internal/service/feasibility"
	"github.com/Ph2006/sistema-orbit-sub006/internal/service/planning"
	"github.com/Ph2006/sistema-orbit-sub006/internal/storage"
)

type MockCalculator struct {
	mock.Mock
}

func (m *MockCalculator) Feasibility(ctx context.Context, items []storage.CalculatorItem, requested time.Time) (feasibility.Result, error) {
	args := m.Called(ctx, items, requested)
	return args.Get(0).(feasibility.Result), args.Error(1)
}

func post(m *MockCalculator, body string) *httptest.ResponseRecorder {
	handler := CalculateFeasibility(slog.New(slog.NewTextHandler(io.Discard, nil)), m)

	req := httptest.NewRequest(http.MethodPost, "/api/feasibility", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestCalculateFeasibility(t *testing.T) {
	m := new(MockCalculator)
	requested := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	m.On("Feasibility", mock.Anything, mock.MatchedBy(func(items []storage.CalculatorItem) bool {
		return len(items) == 1 && items[0].ProductID == "P-1" && items[0].Quantity == 2
	}), requested).Return(feasibility.Result{
		IsViable:              true,
		TotalAdjustedLeadTime: 30,
		Confidence:            18,
		Analysis: []feasibility.StageAnalysis{
			{StageName: "Solda", AdjustedDuration: 30, Band: feasibility.BandCritical, Bottleneck: true},
			{StageName: "Pintura", AdjustedDuration: 2, Band: feasibility.BandNormal},
		},
	}, nil)

	rr := post(m, `{"items":[{"product_id":"P-1","quantity":2}],"requested_date":"2024-05-01"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp Response
	require.NoError(t, render.DecodeJSON(rr.Body, &resp))
	assert.True(t, resp.IsViable)
	assert.Equal(t, 30, resp.TotalAdjustedLeadTime)
	assert.Equal(t, []string{"Solda"}, resp.Bottlenecks)
	require.Len(t, resp.Analysis, 2)
	m.AssertExpectations(t)
}

func TestCalculateFeasibility_EmptyItems(t *testing.T) {
	m := new(MockCalculator)
	m.On("Feasibility", mock.Anything, mock.Anything, mock.Anything).
		Return(feasibility.Result{IsViable: true, Confidence: 90}, nil)

	rr := post(m, `{"items":[],"requested_date":"2024-05-01"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"analysis":[]`)
	assert.Contains(t, rr.Body.String(), `"bottlenecks":[]`)
}

func TestCalculateFeasibility_BadRequests(t *testing.T) {
	m := new(MockCalculator)

	assert.Equal(t, http.StatusBadRequest, post(m, `{"items":`).Code)
	assert.Equal(t, http.StatusBadRequest, post(m, `{"items":[],"requested_date":"soon"}`).Code)
	m.AssertNotCalled(t, "Feasibility", mock.Anything, mock.Anything, mock.Anything)
}

func TestCalculateFeasibility_InvalidQuantity(t *testing.T) {
	m := new(MockCalculator)
	m.On("Feasibility", mock.Anything, mock.Anything, mock.Anything).
		Return(feasibility.Result{}, fmt.Errorf("svc: %w", planning.ErrInvalidQuantity))

	rr := post(m, `{"items":[{"product_id":"P-1","quantity":0}],"requested_date":"2024-05-01"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCalculateFeasibility_UnknownProduct(t *testing.T) {
	m := new(MockCalculator)
	m.On("Feasibility", mock.Anything, mock.Anything, mock.Anything).
		Return(feasibility.Result{}, fmt.Errorf("svc: plan of P-9: no stages: %w", storage.ErrNotFound))

	rr := post(m, `{"items":[{"product_id":"P-9","quantity":1}],"requested_date":"2024-05-01"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "P-9")
}
