package api

import "time"

// Process is a survey-loading process record from /process/all.
// "Encargado" is the responsible user, "Unidad" the owning school unit;
// the backend serializes both pre-joined.
type Process struct {
	ID          int        `json:"id"`
	ProcessName string     `json:"process_name"`
	Estado      string     `json:"estado"`
	Encargado   string     `json:"encargado,omitempty"`
	Unidad      string     `json:"unidad,omitempty"`
	SchoolID    *int       `json:"school_id,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// ProcessUpdate is the payload for PUT /process/id/{id}.
type ProcessUpdate struct {
	ProcessName string `json:"process_name,omitempty"`
	Estado      string `json:"estado,omitempty"`
	EncargadoID *int   `json:"encargado_id,omitempty"`
	SchoolID    *int   `json:"school_id,omitempty"`
}

// ProcessFile is a stored file reference from /process/id/{id}/files.
// Path is the object-storage key used with the download endpoint.
type ProcessFile struct {
	Name         string     `json:"name"`
	Path         string     `json:"path"`
	Size         int64      `json:"size,omitempty"`
	LastModified *time.Time `json:"last_modified,omitempty"`
}

// HealthStatus is the payload of the /health/* probes. The database probe
// additionally reports the oldest client version the backend still
// supports.
type HealthStatus struct {
	Status           string `json:"status"`
	Detail           string `json:"detail,omitempty"`
	MinClientVersion string `json:"min_client_version,omitempty"`
}
