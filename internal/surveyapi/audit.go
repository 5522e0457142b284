package surveyapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/miradorhq/mirador/internal/common/httpclient"
	"github.com/miradorhq/mirador/pkg/api"
)

// AuditAPI wraps the audit trail endpoints. Reads serve the audit pages;
// writes are normally reached through the audit emitter rather than called
// directly, so a failed write here still surfaces as a plain error.
type AuditAPI struct {
	client httpclient.ClientInterface
}

// NewAuditAPI creates an audit facade over the given client.
func NewAuditAPI(client httpclient.ClientInterface) *AuditAPI {
	return &AuditAPI{client: client}
}

// List returns the full audit trail.
func (a *AuditAPI) List(ctx context.Context) ([]api.AuditRecord, error) {
	body, err := a.client.DoRequest(ctx, httpclient.RequestOptions{
		Method: http.MethodGet,
		Path:   "audit/all",
	})
	if err != nil {
		return nil, err
	}

	var records []api.AuditRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("failed to parse audit records: %w", err)
	}
	return records, nil
}

// ListByUser returns the audit trail entries for one user.
func (a *AuditAPI) ListByUser(ctx context.Context, userID int) ([]api.AuditRecord, error) {
	body, err := a.client.DoRequest(ctx, httpclient.RequestOptions{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("audit/%d", userID),
	})
	if err != nil {
		return nil, err
	}

	var records []api.AuditRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("failed to parse audit records: %w", err)
	}
	return records, nil
}

// Log writes an audit record by explicit IDs.
func (a *AuditAPI) Log(ctx context.Context, record api.AuditCreate) (*api.AuditRecord, error) {
	payload, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to encode audit record: %w", err)
	}

	body, err := a.client.DoRequest(ctx, httpclient.RequestOptions{
		Method: http.MethodPost,
		Path:   "audit/log",
		Body:   payload,
	})
	if err != nil {
		return nil, err
	}

	var created api.AuditRecord
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("failed to parse audit record: %w", err)
	}
	return &created, nil
}

// LogByName writes an audit record identified by action type name. The
// user is resolved server-side from the bearer token.
func (a *AuditAPI) LogByName(ctx context.Context, entry api.AuditLogByName) (*api.AuditRecord, error) {
	if err := validate.Struct(entry); err != nil {
		return nil, fmt.Errorf("invalid audit entry: %w", err)
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to encode audit entry: %w", err)
	}

	body, err := a.client.DoRequest(ctx, httpclient.RequestOptions{
		Method: http.MethodPost,
		Path:   "audit/log-by-name",
		Body:   payload,
	})
	if err != nil {
		return nil, err
	}

	var created api.AuditRecord
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("failed to parse audit record: %w", err)
	}
	return &created, nil
}

// ActionTypes lists the audit action types the backend recognizes.
func (a *AuditAPI) ActionTypes(ctx context.Context) ([]api.ActionType, error) {
	body, err := a.client.DoRequest(ctx, httpclient.RequestOptions{
		Method: http.MethodGet,
		Path:   "audit/action-types",
	})
	if err != nil {
		return nil, err
	}

	var actionTypes []api.ActionType
	if err := json.Unmarshal(body, &actionTypes); err != nil {
		return nil, fmt.Errorf("failed to parse action types: %w", err)
	}
	return actionTypes, nil
}
