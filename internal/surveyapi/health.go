package surveyapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/miradorhq/mirador/internal/common/httpclient"
	"github.com/miradorhq/mirador/pkg/api"
)

// HealthAPI wraps the backend health probes.
type HealthAPI struct {
	client httpclient.ClientInterface
}

// NewHealthAPI creates a health facade over the given client.
func NewHealthAPI(client httpclient.ClientInterface) *HealthAPI {
	return &HealthAPI{client: client}
}

func (h *HealthAPI) probe(ctx context.Context, path string) (*api.HealthStatus, error) {
	body, err := h.client.DoRequest(ctx, httpclient.RequestOptions{
		Method: http.MethodGet,
		Path:   path,
	})
	if err != nil {
		return nil, err
	}

	var status api.HealthStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, fmt.Errorf("failed to parse health status: %w", err)
	}
	return &status, nil
}

// Database probes the primary user/process database.
func (h *HealthAPI) Database(ctx context.Context) (*api.HealthStatus, error) {
	return h.probe(ctx, "health/db")
}

// DatabaseETL probes the survey data warehouse.
func (h *HealthAPI) DatabaseETL(ctx context.Context) (*api.HealthStatus, error) {
	return h.probe(ctx, "health/db_etl")
}

// ObjectStore probes the MinIO object storage backing file uploads.
func (h *HealthAPI) ObjectStore(ctx context.Context) (*api.HealthStatus, error) {
	return h.probe(ctx, "health/minio")
}
