package surveyapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"

	"github.com/miradorhq/mirador/internal/common/httpclient"
	"github.com/miradorhq/mirador/pkg/api"
)

// ProcessAPI wraps the process lifecycle and file management endpoints.
// Uploads go through multipart forms; downloads stream straight from
// object storage via the backend.
type ProcessAPI struct {
	client httpclient.ClientInterface
}

// NewProcessAPI creates a process facade over the given client.
func NewProcessAPI(client httpclient.ClientInterface) *ProcessAPI {
	return &ProcessAPI{client: client}
}

// ProcessCreate describes a new process and its initial data file.
type ProcessCreate struct {
	ProcessName string `validate:"required"`
	SchoolID    int    `validate:"required"`
	EncargadoID int
	Filename    string `validate:"required"`
	File        io.Reader
}

// List returns all processes visible to the caller.
func (p *ProcessAPI) List(ctx context.Context) ([]api.Process, error) {
	body, err := p.client.DoRequest(ctx, httpclient.RequestOptions{
		Method: http.MethodGet,
		Path:   "process/all",
	})
	if err != nil {
		return nil, err
	}

	var processes []api.Process
	if err := json.Unmarshal(body, &processes); err != nil {
		return nil, fmt.Errorf("failed to parse process list: %w", err)
	}
	return processes, nil
}

// Get returns a single process by ID.
func (p *ProcessAPI) Get(ctx context.Context, id int) (*api.Process, error) {
	body, err := p.client.DoRequest(ctx, httpclient.RequestOptions{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("process/id/%d", id),
	})
	if err != nil {
		return nil, err
	}

	var process api.Process
	if err := json.Unmarshal(body, &process); err != nil {
		return nil, fmt.Errorf("failed to parse process: %w", err)
	}
	return &process, nil
}

// Update modifies an existing process.
func (p *ProcessAPI) Update(ctx context.Context, id int, data api.ProcessUpdate) (*api.Process, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode process update: %w", err)
	}

	body, err := p.client.DoRequest(ctx, httpclient.RequestOptions{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("process/id/%d", id),
		Body:   payload,
	})
	if err != nil {
		return nil, err
	}

	var updated api.Process
	if err := json.Unmarshal(body, &updated); err != nil {
		return nil, fmt.Errorf("failed to parse updated process: %w", err)
	}
	return &updated, nil
}

// Create registers a new process together with its data file, as a
// multipart form. The file content is sniffed and rejected unless it looks
// like survey data (CSV or spreadsheet).
func (p *ProcessAPI) Create(ctx context.Context, data ProcessCreate) (*api.Process, error) {
	if err := validate.Struct(data); err != nil {
		return nil, fmt.Errorf("invalid process: %w", err)
	}

	content, err := io.ReadAll(data.File)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}
	if err := sniffDataFile(data.Filename, content); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("process_name", data.ProcessName)
	mw.WriteField("school_id", strconv.Itoa(data.SchoolID))
	if data.EncargadoID != 0 {
		mw.WriteField("encargado_id", strconv.Itoa(data.EncargadoID))
	}
	fw, err := mw.CreateFormFile("file", filepath.Base(data.Filename))
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := fw.Write(content); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}

	body, err := p.client.DoRequest(ctx, httpclient.RequestOptions{
		Method:      http.MethodPost,
		Path:        "process/create",
		Body:        buf.Bytes(),
		ContentType: mw.FormDataContentType(),
	})
	if err != nil {
		return nil, err
	}

	var created api.Process
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("failed to parse created process: %w", err)
	}
	return &created, nil
}

// Files lists the files stored for a process.
func (p *ProcessAPI) Files(ctx context.Context, id int) ([]api.ProcessFile, error) {
	body, err := p.client.DoRequest(ctx, httpclient.RequestOptions{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("process/id/%d/files", id),
	})
	if err != nil {
		return nil, err
	}

	var files []api.ProcessFile
	if err := json.Unmarshal(body, &files); err != nil {
		return nil, fmt.Errorf("failed to parse file list: %w", err)
	}
	return files, nil
}

// UploadFile stores a single file against object storage via the backend.
func (p *ProcessAPI) UploadFile(ctx context.Context, filename string, file io.Reader) error {
	content, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	if err := sniffDataFile(filename, content); err != nil {
		return err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := fw.Write(content); err != nil {
		return fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("failed to build upload form: %w", err)
	}

	_, err = p.client.DoRequest(ctx, httpclient.RequestOptions{
		Method:      http.MethodPost,
		Path:        "process/upload-file",
		Body:        buf.Bytes(),
		ContentType: mw.FormDataContentType(),
	})
	return err
}

// DownloadFile streams the file at the given object-storage path. The
// caller owns the returned reader and must close it.
func (p *ProcessAPI) DownloadFile(ctx context.Context, path string) (io.ReadCloser, error) {
	return p.client.StreamRequest(ctx, httpclient.RequestOptions{
		Method: http.MethodGet,
		Path:   "process/" + strings.TrimPrefix(path, "/"),
	})
}

// sniffDataFile rejects uploads that are neither CSV nor a spreadsheet.
// CSV is plain text and has no magic bytes, so an unrecognized type with a
// .csv extension is accepted; recognized binary types must be xlsx (which
// sniffs as xlsx or plain zip depending on the writer).
func sniffDataFile(filename string, content []byte) error {
	kind, _ := filetype.Match(content)
	if kind == filetype.Unknown {
		if strings.EqualFold(filepath.Ext(filename), ".csv") {
			return nil
		}
		return fmt.Errorf("unsupported file type for %s: expected CSV or XLSX", filename)
	}
	if kind == matchers.TypeXlsx || kind == matchers.TypeZip {
		return nil
	}
	return fmt.Errorf("unsupported file type %s for %s: expected CSV or XLSX", kind.Extension, filename)
}
