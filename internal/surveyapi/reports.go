package surveyapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/miradorhq/mirador/internal/common/httpclient"
	"github.com/miradorhq/mirador/pkg/api"
)

// ReportsAPI wraps the PDF report generation endpoint. The backend renders
// the document; the client only posts the bundle and streams bytes back.
type ReportsAPI struct {
	client httpclient.ClientInterface
}

// NewReportsAPI creates a reports facade over the given client.
func NewReportsAPI(client httpclient.ClientInterface) *ReportsAPI {
	return &ReportsAPI{client: client}
}

// GeneratePDF posts an analysis bundle and returns the PDF stream. The
// caller owns the returned reader and must close it.
func (r *ReportsAPI) GeneratePDF(ctx context.Context, bundle api.ReportBundle) (io.ReadCloser, error) {
	if bundle.Resultado == nil && len(bundle.Conjuntos) == 0 {
		return nil, fmt.Errorf("report bundle is empty")
	}

	payload, err := json.Marshal(bundle)
	if err != nil {
		return nil, fmt.Errorf("failed to encode report bundle: %w", err)
	}

	return r.client.StreamRequest(ctx, httpclient.RequestOptions{
		Method: http.MethodPost,
		Path:   "reports/pdf",
		Body:   payload,
	})
}
