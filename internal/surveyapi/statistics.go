package surveyapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mitchellh/mapstructure"

	"github.com/miradorhq/mirador/internal/common/httpclient"
	"github.com/miradorhq/mirador/pkg/api"
)

// StatisticsAPI wraps the read-only statistics endpoints of the primary
// backend. All queries accept optional programa/version filters.
type StatisticsAPI struct {
	client httpclient.ClientInterface
}

// NewStatisticsAPI creates a statistics facade over the given client.
func NewStatisticsAPI(client httpclient.ClientInterface) *StatisticsAPI {
	return &StatisticsAPI{client: client}
}

func statsQuery(filters api.StatsFilters) url.Values {
	q := url.Values{}
	if filters.Programa != "" {
		q.Set("programa", filters.Programa)
	}
	if filters.Version != "" {
		q.Set("version", filters.Version)
	}
	return q
}

// KPIs returns the general KPI aggregate. The backend's KPI payload is
// loosely shaped (keys vary with which datasets exist), so it is decoded
// leniently instead of failing on unknown numeric widths.
func (s *StatisticsAPI) KPIs(ctx context.Context, filters api.StatsFilters) (*api.KPIReport, error) {
	body, err := s.client.DoRequest(ctx, httpclient.RequestOptions{
		Method:      http.MethodGet,
		Path:        "statistics/kpis",
		QueryParams: statsQuery(filters),
	})
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse KPI report: %w", err)
	}

	var report api.KPIReport
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &report,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse KPI report: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to parse KPI report: %w", err)
	}
	return &report, nil
}

// ResponsesPerProgram returns response counts per program for a dataset.
func (s *StatisticsAPI) ResponsesPerProgram(ctx context.Context, dataset string, filters api.StatsFilters) ([]api.ProgramResponses, error) {
	q := statsQuery(filters)
	q.Set("dataset", dataset)

	body, err := s.client.DoRequest(ctx, httpclient.RequestOptions{
		Method:      http.MethodGet,
		Path:        "statistics/responses-per-program",
		QueryParams: q,
	})
	if err != nil {
		return nil, err
	}

	var responses []api.ProgramResponses
	if err := json.Unmarshal(body, &responses); err != nil {
		return nil, fmt.Errorf("failed to parse program responses: %w", err)
	}
	return responses, nil
}

// QuestionAnalysis returns the answer distribution for one question column.
func (s *StatisticsAPI) QuestionAnalysis(ctx context.Context, dataset, column string, filters api.StatsFilters) (*api.QuestionAnalysis, error) {
	q := statsQuery(filters)
	q.Set("dataset", dataset)
	q.Set("question_column", column)

	body, err := s.client.DoRequest(ctx, httpclient.RequestOptions{
		Method:      http.MethodGet,
		Path:        "statistics/question-analysis",
		QueryParams: q,
	})
	if err != nil {
		return nil, err
	}

	var analysis api.QuestionAnalysis
	if err := json.Unmarshal(body, &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse question analysis: %w", err)
	}
	return &analysis, nil
}

// QuestionsBatch analyzes several question columns in one call. The
// columns travel as repeated question_columns query parameters.
func (s *StatisticsAPI) QuestionsBatch(ctx context.Context, dataset string, columns []string, filters api.StatsFilters) ([]api.QuestionAnalysis, error) {
	q := statsQuery(filters)
	q.Set("dataset", dataset)
	for _, col := range columns {
		q.Add("question_columns", col)
	}

	body, err := s.client.DoRequest(ctx, httpclient.RequestOptions{
		Method:      http.MethodPost,
		Path:        "statistics/questions-batch-analysis",
		QueryParams: q,
	})
	if err != nil {
		return nil, err
	}

	var analyses []api.QuestionAnalysis
	if err := json.Unmarshal(body, &analyses); err != nil {
		return nil, fmt.Errorf("failed to parse batch analysis: %w", err)
	}
	return analyses, nil
}

// AvailableColumns lists the question columns of a dataset.
func (s *StatisticsAPI) AvailableColumns(ctx context.Context, dataset string) ([]string, error) {
	q := url.Values{}
	q.Set("dataset", dataset)

	body, err := s.client.DoRequest(ctx, httpclient.RequestOptions{
		Method:      http.MethodGet,
		Path:        "statistics/available-columns",
		QueryParams: q,
	})
	if err != nil {
		return nil, err
	}

	var columns []string
	if err := json.Unmarshal(body, &columns); err != nil {
		return nil, fmt.Errorf("failed to parse column list: %w", err)
	}
	return columns, nil
}

// SatisfactionAnalysis returns the satisfaction aggregate for a dataset.
func (s *StatisticsAPI) SatisfactionAnalysis(ctx context.Context, dataset string, filters api.StatsFilters) (*api.SatisfactionAnalysis, error) {
	q := statsQuery(filters)
	q.Set("dataset", dataset)

	body, err := s.client.DoRequest(ctx, httpclient.RequestOptions{
		Method:      http.MethodGet,
		Path:        "statistics/satisfaction-analysis",
		QueryParams: q,
	})
	if err != nil {
		return nil, err
	}

	var analysis api.SatisfactionAnalysis
	if err := json.Unmarshal(body, &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse satisfaction analysis: %w", err)
	}
	return &analysis, nil
}

// Programs lists the programs present in the data.
func (s *StatisticsAPI) Programs(ctx context.Context) ([]string, error) {
	body, err := s.client.DoRequest(ctx, httpclient.RequestOptions{
		Method: http.MethodGet,
		Path:   "statistics/programs",
	})
	if err != nil {
		return nil, err
	}

	var programs []string
	if err := json.Unmarshal(body, &programs); err != nil {
		return nil, fmt.Errorf("failed to parse program list: %w", err)
	}
	return programs, nil
}
