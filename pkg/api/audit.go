package api

import (
	"time"

	"github.com/miradorhq/mirador/pkg/types"
)

// Audit action type names recognized by the backend. LogByName requests
// must use one of these.
const (
	ActionCreate  = "Create"
	ActionUpdate  = "Update"
	ActionDelete  = "Delete"
	ActionRead    = "Read"
	ActionApprove = "Approve"
	ActionReject  = "Reject"
	ActionSubmit  = "Submit"
	ActionReview  = "Review"
)

// ActionType is a backend-defined audit action type from /audit/action-types.
type ActionType struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// AuditRecord is an audit trail entry from /audit/all and /audit/{userId}.
// Responsible and Unit are joined server-side and arrive as null when the
// referenced user or school has been removed.
type AuditRecord struct {
	ID           int                  `json:"id"`
	UserID       types.NullableInt64  `json:"user_id"`
	ActionTypeID types.NullableInt64  `json:"action_type_id"`
	SchoolID     types.NullableInt64  `json:"school_id"`
	Description  string               `json:"description,omitempty"`
	Responsible  types.NullableString `json:"responsible"`
	Unit         types.NullableString `json:"unit"`
	Action       string               `json:"action,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
}

// AuditCreate is the payload for POST /audit/log.
type AuditCreate struct {
	UserID       types.NullableInt64 `json:"user_id"`
	ActionTypeID types.NullableInt64 `json:"action_type_id"`
	SchoolID     types.NullableInt64 `json:"school_id"`
	Description  string              `json:"description,omitempty"`
}

// AuditLogByName is the payload for POST /audit/log-by-name. SchoolID is
// serialized as null when absent, matching what the backend expects.
type AuditLogByName struct {
	ActionTypeName string              `json:"action_type_name" validate:"required"`
	Description    string              `json:"description" validate:"required"`
	SchoolID       types.NullableInt64 `json:"school_id"`
}
