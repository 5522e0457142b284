package surveyapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/miradorhq/mirador/internal/common/httpclient"
	"github.com/miradorhq/mirador/pkg/api"
)

// AgentAPI wraps the analytics agent backend: heavier analytic
// computations, narrative generation, and ETL loads from object storage.
// Every call routes to the agent root, not the primary backend.
type AgentAPI struct {
	client httpclient.ClientInterface
}

// NewAgentAPI creates an agent facade over the given client.
func NewAgentAPI(client httpclient.ClientInterface) *AgentAPI {
	return &AgentAPI{client: client}
}

// RunAnalytics executes an analytics computation over the requested
// population and distributions.
func (a *AgentAPI) RunAnalytics(ctx context.Context, req api.AnalyticsRequest) (*api.AnalyticsResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid analytics request: %w", err)
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode analytics request: %w", err)
	}

	body, err := a.client.DoRequest(ctx, httpclient.RequestOptions{
		Method: http.MethodPost,
		Root:   httpclient.RootAgent,
		Path:   "agente/resultados",
		Body:   payload,
	})
	if err != nil {
		return nil, err
	}

	var result api.AnalyticsResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse analytics result: %w", err)
	}
	return &result, nil
}

// GenerateNarrative asks the agent to write narrative text for a computed
// result.
func (a *AgentAPI) GenerateNarrative(ctx context.Context, req api.NarrativeRequest) (*api.NarrativeResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid narrative request: %w", err)
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode narrative request: %w", err)
	}

	body, err := a.client.DoRequest(ctx, httpclient.RequestOptions{
		Method: http.MethodPost,
		Root:   httpclient.RootAgent,
		Path:   "agente/redactar",
		Body:   payload,
	})
	if err != nil {
		return nil, err
	}

	var resp api.NarrativeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse narrative response: %w", err)
	}
	return &resp, nil
}

// LoadFromObjectStorage triggers an ETL load of a dataset already staged in
// object storage. The parameters travel as multipart form fields; version
// and filename are optional.
func (a *AgentAPI) LoadFromObjectStorage(ctx context.Context, dataset, programa, version, filename string) (*api.ETLLoadResult, error) {
	if dataset == "" || programa == "" {
		return nil, fmt.Errorf("dataset and programa are required")
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("programa", programa)
	if version != "" {
		mw.WriteField("version", version)
	}
	if filename != "" {
		mw.WriteField("filename", filename)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to build load form: %w", err)
	}

	body, err := a.client.DoRequest(ctx, httpclient.RequestOptions{
		Method:      http.MethodPost,
		Root:        httpclient.RootAgent,
		Path:        fmt.Sprintf("carga/%s/minio", dataset),
		Body:        buf.Bytes(),
		ContentType: mw.FormDataContentType(),
	})
	if err != nil {
		return nil, err
	}

	var result api.ETLLoadResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse load result: %w", err)
	}
	return &result, nil
}

// ProgramCatalog lists postgraduate program metadata known to the agent.
func (a *AgentAPI) ProgramCatalog(ctx context.Context, programa string) ([]api.ProgramInfo, error) {
	q := url.Values{}
	if programa != "" {
		q.Set("programa", programa)
	}

	body, err := a.client.DoRequest(ctx, httpclient.RequestOptions{
		Method:      http.MethodGet,
		Root:        httpclient.RootAgent,
		Path:        "analisis/posgrados",
		QueryParams: q,
	})
	if err != nil {
		return nil, err
	}

	var programs []api.ProgramInfo
	if err := json.Unmarshal(body, &programs); err != nil {
		return nil, fmt.Errorf("failed to parse program catalog: %w", err)
	}
	return programs, nil
}
