package surveyapi

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miradorhq/mirador/pkg/api"
)

func dashboardMux(t *testing.T, satisfactionStatus int) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/statistics/kpis", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"total_responses": 10})
	})
	mux.HandleFunc("/statistics/responses-per-program", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]api.ProgramResponses{{Programa: "ATI", Responses: 10}})
	})
	mux.HandleFunc("/statistics/programs", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]string{"ATI", "TURISMO"})
	})
	mux.HandleFunc("/statistics/satisfaction-analysis", func(w http.ResponseWriter, r *http.Request) {
		if satisfactionStatus != http.StatusOK {
			w.WriteHeader(satisfactionStatus)
			json.NewEncoder(w).Encode(map[string]string{"detail": "satisfaction data unavailable"})
			return
		}
		json.NewEncoder(w).Encode(api.SatisfactionAnalysis{Dataset: "egresados", Average: 4.2})
	})
	return mux
}

func TestFetchDashboard(t *testing.T) {
	client, _ := newTestClient(t, dashboardMux(t, http.StatusOK))
	stats := NewStatisticsAPI(client)

	d, err := stats.FetchDashboard(context.Background(), "egresados", api.StatsFilters{})
	require.NoError(t, err)
	assert.Equal(t, 10, d.KPIs.TotalResponses)
	assert.Len(t, d.Responses, 1)
	assert.Equal(t, []string{"ATI", "TURISMO"}, d.Programs)
	require.True(t, d.Satisfaction.Ok())
	assert.Equal(t, 4.2, d.Satisfaction.Value.Average)
}

func TestFetchDashboardSatisfactionMayFail(t *testing.T) {
	client, _ := newTestClient(t, dashboardMux(t, http.StatusServiceUnavailable))
	stats := NewStatisticsAPI(client)

	// the optional section fails on its own, the batch still succeeds
	d, err := stats.FetchDashboard(context.Background(), "egresados", api.StatsFilters{})
	require.NoError(t, err)
	assert.False(t, d.Satisfaction.Ok())
	assert.Equal(t, "satisfaction data unavailable", d.Satisfaction.Err.Error())
	assert.Equal(t, 10, d.KPIs.TotalResponses)
}

func TestFetchDashboardRequiredFailureAborts(t *testing.T) {
	mux := dashboardMux(t, http.StatusOK)
	failing := http.NewServeMux()
	failing.HandleFunc("/statistics/kpis", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"detail": "warehouse down"})
	})
	failing.Handle("/", mux)

	client, _ := newTestClient(t, failing)
	stats := NewStatisticsAPI(client)

	_, err := stats.FetchDashboard(context.Background(), "egresados", api.StatsFilters{})
	require.Error(t, err)
	assert.Equal(t, "warehouse down", err.Error())
}
