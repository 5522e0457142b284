package audit

import (
	"fmt"

	"github.com/miradorhq/mirador/pkg/api"
)

// Convenience wrappers for the actions the application logs. Each is pure
// string formatting over Log.

func (e *Emitter) Create(description string, schoolID *int) {
	e.Log(api.ActionCreate, description, schoolID)
}

func (e *Emitter) Update(description string, schoolID *int) {
	e.Log(api.ActionUpdate, description, schoolID)
}

func (e *Emitter) Delete(description string, schoolID *int) {
	e.Log(api.ActionDelete, description, schoolID)
}

func (e *Emitter) Read(description string, schoolID *int) {
	e.Log(api.ActionRead, description, schoolID)
}

func (e *Emitter) Approve(description string, schoolID *int) {
	e.Log(api.ActionApprove, description, schoolID)
}

func (e *Emitter) Reject(description string, schoolID *int) {
	e.Log(api.ActionReject, description, schoolID)
}

func (e *Emitter) Submit(description string, schoolID *int) {
	e.Log(api.ActionSubmit, description, schoolID)
}

func (e *Emitter) Review(description string, schoolID *int) {
	e.Log(api.ActionReview, description, schoolID)
}

// ETLLoad records a dataset load into the warehouse.
func (e *Emitter) ETLLoad(dataset, programa string, schoolID *int) {
	e.Log(api.ActionCreate, fmt.Sprintf("ETL load: %s data for %s", dataset, programa), schoolID)
}

// FileUpload records a file stored against a project.
func (e *Emitter) FileUpload(filename, projectName string, schoolID *int) {
	e.Log(api.ActionCreate, fmt.Sprintf("File uploaded: %s to project %s", filename, projectName), schoolID)
}

// FileDownload records a file fetched from a project.
func (e *Emitter) FileDownload(filename, projectName string, schoolID *int) {
	e.Log(api.ActionRead, fmt.Sprintf("File downloaded: %s from project %s", filename, projectName), schoolID)
}

// AnalyticsRun records an analytics execution.
func (e *Emitter) AnalyticsRun(analysisType, dataset string, schoolID *int) {
	e.Log(api.ActionReview, fmt.Sprintf("Analytics executed: %s on %s", analysisType, dataset), schoolID)
}

// UserLogin records a successful login.
func (e *Emitter) UserLogin(username string) {
	e.Log(api.ActionRead, fmt.Sprintf("User logged in: %s", username), nil)
}

// UserLogout records a logout.
func (e *Emitter) UserLogout(username string) {
	e.Log(api.ActionRead, fmt.Sprintf("User logged out: %s", username), nil)
}

// ProjectCreate records a project creation.
func (e *Emitter) ProjectCreate(projectName string, schoolID *int) {
	e.Log(api.ActionCreate, fmt.Sprintf("Project created: %s", projectName), schoolID)
}

// ProjectView records a project being opened.
func (e *Emitter) ProjectView(projectName string, schoolID *int) {
	e.Log(api.ActionRead, fmt.Sprintf("Project viewed: %s", projectName), schoolID)
}

// ProjectUpdate records a project modification.
func (e *Emitter) ProjectUpdate(projectName string, schoolID *int) {
	e.Log(api.ActionUpdate, fmt.Sprintf("Project updated: %s", projectName), schoolID)
}

// ProcessCreate records a process creation.
func (e *Emitter) ProcessCreate(processName string, schoolID *int) {
	e.Log(api.ActionCreate, fmt.Sprintf("Process created: %s", processName), schoolID)
}

// ProcessUpdate records a process modification.
func (e *Emitter) ProcessUpdate(processName string, schoolID *int) {
	e.Log(api.ActionUpdate, fmt.Sprintf("Process updated: %s", processName), schoolID)
}
