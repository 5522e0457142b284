package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miradorhq/mirador/internal/common/session"
)

type capturedRequest struct {
	method      string
	path        string
	query       url.Values
	headers     http.Header
	body        []byte
	hasAuth     bool
	contentType string
}

func newCaptureServer(t *testing.T, status int, respBody []byte) (*httptest.Server, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.method = r.Method
		captured.path = r.URL.Path
		captured.query = r.URL.Query()
		captured.headers = r.Header.Clone()
		captured.body, _ = io.ReadAll(r.Body)
		captured.hasAuth = r.Header.Get("Authorization") != ""
		captured.contentType = r.Header.Get("Content-Type")
		w.WriteHeader(status)
		w.Write(respBody)
	}))
	t.Cleanup(srv.Close)
	return srv, captured
}

func TestBearerTokenInjection(t *testing.T) {
	srv, captured := newCaptureServer(t, http.StatusOK, []byte(`{}`))
	store := session.NewMemStore()
	store.SetToken("tok123")
	client := NewClient(Endpoints{Primary: srv.URL}, store)

	_, err := client.DoRequest(context.Background(), RequestOptions{
		Method: http.MethodGet,
		Path:   "users/me",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok123", captured.headers.Get("Authorization"))
	assert.Equal(t, "/users/me", captured.path)
}

func TestNoTokenNoAuthHeader(t *testing.T) {
	srv, captured := newCaptureServer(t, http.StatusOK, []byte(`{}`))
	client := NewClient(Endpoints{Primary: srv.URL}, session.NewMemStore())

	_, err := client.DoRequest(context.Background(), RequestOptions{
		Method: http.MethodGet,
		Path:   "statistics/kpis",
	})
	require.NoError(t, err)
	assert.False(t, captured.hasAuth)
}

func TestCallerHeadersCannotOverrideAuthorization(t *testing.T) {
	srv, captured := newCaptureServer(t, http.StatusOK, []byte(`{}`))
	store := session.NewMemStore()
	store.SetToken("tok123")
	client := NewClient(Endpoints{Primary: srv.URL}, store)

	_, err := client.DoRequest(context.Background(), RequestOptions{
		Method: http.MethodGet,
		Path:   "users/me",
		Headers: map[string]string{
			"Authorization": "Bearer forged",
			"X-Custom":      "value",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok123", captured.headers.Get("Authorization"))
	assert.Equal(t, "value", captured.headers.Get("X-Custom"))
}

func TestJSONBodyContentType(t *testing.T) {
	srv, captured := newCaptureServer(t, http.StatusOK, []byte(`{}`))
	client := NewClient(Endpoints{Primary: srv.URL}, session.NewMemStore())

	payload, _ := json.Marshal(map[string]string{"username": "bob"})
	_, err := client.DoRequest(context.Background(), RequestOptions{
		Method: http.MethodPost,
		Path:   "users/create",
		Body:   payload,
	})
	require.NoError(t, err)
	assert.Equal(t, "application/json", captured.contentType)
	assert.JSONEq(t, `{"username":"bob"}`, string(captured.body))
}

func TestMultipartBodyKeepsEncoderContentType(t *testing.T) {
	srv, captured := newCaptureServer(t, http.StatusOK, []byte(`{}`))
	client := NewClient(Endpoints{Primary: srv.URL}, session.NewMemStore())

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "data.csv")
	require.NoError(t, err)
	fw.Write([]byte("a,b\n1,2\n"))
	require.NoError(t, mw.Close())

	_, err = client.DoRequest(context.Background(), RequestOptions{
		Method:      http.MethodPost,
		Path:        "process/upload-file",
		Body:        buf.Bytes(),
		ContentType: mw.FormDataContentType(),
	})
	require.NoError(t, err)

	// the multipart writer's boundary must survive; the client must not
	// force application/json over it
	assert.True(t, strings.HasPrefix(captured.contentType, "multipart/form-data"))
	assert.NotContains(t, captured.contentType, "application/json")
}

func TestFormURLEncodedBody(t *testing.T) {
	srv, captured := newCaptureServer(t, http.StatusOK, []byte(`{"access_token":"tok"}`))
	client := NewClient(Endpoints{Primary: srv.URL}, session.NewMemStore())

	form := url.Values{}
	form.Set("username", "alice")
	form.Set("password", "secret")
	_, err := client.DoRequest(context.Background(), RequestOptions{
		Method:      http.MethodPost,
		Path:        "auth/login",
		Body:        []byte(form.Encode()),
		ContentType: "application/x-www-form-urlencoded",
	})
	require.NoError(t, err)
	assert.Equal(t, "application/x-www-form-urlencoded", captured.contentType)
	assert.Equal(t, "password=secret&username=alice", string(captured.body))
}

func TestUnauthorizedClearsSessionAndFiresHandler(t *testing.T) {
	srv, _ := newCaptureServer(t, http.StatusUnauthorized, []byte(`{"detail":"Could not validate credentials"}`))
	store := session.NewMemStore()
	store.SetToken("stale")
	client := NewClient(Endpoints{Primary: srv.URL}, store)

	fired := 0
	client.OnAuthExpired(func() { fired++ })

	_, err := client.DoRequest(context.Background(), RequestOptions{
		Method: http.MethodGet,
		Path:   "users/me",
	})
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.False(t, store.IsAuthenticated())
	assert.Equal(t, 1, fired)
}

func TestUnauthorizedWithoutTokenKeepsDetail(t *testing.T) {
	srv, _ := newCaptureServer(t, http.StatusUnauthorized, []byte(`{"detail":"Invalid credentials"}`))
	client := NewClient(Endpoints{Primary: srv.URL}, session.NewMemStore())

	fired := 0
	client.OnAuthExpired(func() { fired++ })

	_, err := client.DoRequest(context.Background(), RequestOptions{
		Method: http.MethodPost,
		Path:   "auth/login",
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, "Invalid credentials", err.Error())
	assert.Equal(t, 0, fired)
}

func TestSkipAuthExpiryPreservesSession(t *testing.T) {
	srv, _ := newCaptureServer(t, http.StatusUnauthorized, []byte(`{"detail":"Invalid credentials"}`))
	store := session.NewMemStore()
	store.SetToken("still-good")
	client := NewClient(Endpoints{Primary: srv.URL}, store)

	fired := 0
	client.OnAuthExpired(func() { fired++ })

	_, err := client.DoRequest(context.Background(), RequestOptions{
		Method:         http.MethodPost,
		Path:           "auth/login",
		SkipAuthExpiry: true,
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, "Invalid credentials", err.Error())
	assert.Equal(t, 0, fired)
	assert.Equal(t, "still-good", store.Token())
}

func TestErrorDetailExtraction(t *testing.T) {
	srv, _ := newCaptureServer(t, http.StatusBadRequest, []byte(`{"detail":"X"}`))
	client := NewClient(Endpoints{Primary: srv.URL}, session.NewMemStore())

	_, err := client.DoRequest(context.Background(), RequestOptions{
		Method: http.MethodPost,
		Path:   "users/create",
	})
	require.Error(t, err)
	httpErr := &HTTPError{}
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "X", httpErr.Message)
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
}

func TestErrorGenericMessageOnNonJSONBody(t *testing.T) {
	srv, _ := newCaptureServer(t, http.StatusInternalServerError, []byte("<html>boom</html>"))
	client := NewClient(Endpoints{Primary: srv.URL}, session.NewMemStore())

	_, err := client.DoRequest(context.Background(), RequestOptions{
		Method: http.MethodGet,
		Path:   "statistics/kpis",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestTransportFailure(t *testing.T) {
	// a closed server forces a connection error
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	client := NewClient(Endpoints{Primary: srv.URL}, session.NewMemStore())

	_, err := client.DoRequest(context.Background(), RequestOptions{
		Method: http.MethodGet,
		Path:   "health/db",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request failed")
}

func TestStreamRequestReturnsRawBody(t *testing.T) {
	pdf := []byte("%PDF-1.7 raw bytes, not json")
	srv, _ := newCaptureServer(t, http.StatusOK, pdf)
	client := NewClient(Endpoints{Primary: srv.URL}, session.NewMemStore())

	rc, err := client.StreamRequest(context.Background(), RequestOptions{
		Method: http.MethodPost,
		Path:   "reports/pdf",
	})
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, pdf, got)
}

func TestStreamRequestErrorDetail(t *testing.T) {
	srv, _ := newCaptureServer(t, http.StatusNotFound, []byte(`{"detail":"file not found"}`))
	client := NewClient(Endpoints{Primary: srv.URL}, session.NewMemStore())

	_, err := client.StreamRequest(context.Background(), RequestOptions{
		Method: http.MethodGet,
		Path:   "process/some/file.csv",
	})
	require.Error(t, err)
	assert.Equal(t, "file not found", err.Error())
}

func TestAgentRootSelection(t *testing.T) {
	primary, _ := newCaptureServer(t, http.StatusOK, []byte(`{}`))
	agent, agentCaptured := newCaptureServer(t, http.StatusOK, []byte(`{}`))
	client := NewClient(Endpoints{Primary: primary.URL, Agent: agent.URL}, session.NewMemStore())

	_, err := client.DoRequest(context.Background(), RequestOptions{
		Method: http.MethodPost,
		Path:   "agente/resultados",
		Root:   RootAgent,
	})
	require.NoError(t, err)
	assert.Equal(t, "/agente/resultados", agentCaptured.path)
}

func TestQueryParamsEncoding(t *testing.T) {
	srv, captured := newCaptureServer(t, http.StatusOK, []byte(`{}`))
	client := NewClient(Endpoints{Primary: srv.URL}, session.NewMemStore())

	q := url.Values{}
	q.Set("dataset", "egresados")
	q.Add("question_columns", "p1")
	q.Add("question_columns", "p2")
	_, err := client.DoRequest(context.Background(), RequestOptions{
		Method:      http.MethodPost,
		Path:        "statistics/questions-batch-analysis",
		QueryParams: q,
	})
	require.NoError(t, err)
	assert.Equal(t, "egresados", captured.query.Get("dataset"))
	assert.Equal(t, []string{"p1", "p2"}, captured.query["question_columns"])
}

func TestTrailingSlashPreserved(t *testing.T) {
	srv, captured := newCaptureServer(t, http.StatusOK, []byte(`[]`))
	client := NewClient(Endpoints{Primary: srv.URL}, session.NewMemStore())

	_, err := client.DoRequest(context.Background(), RequestOptions{
		Method: http.MethodGet,
		Path:   "users/",
	})
	require.NoError(t, err)
	assert.Equal(t, "/users/", captured.path)
}

func TestRequestIDAttached(t *testing.T) {
	srv, captured := newCaptureServer(t, http.StatusOK, []byte(`{}`))
	client := NewClient(Endpoints{Primary: srv.URL}, session.NewMemStore())

	_, err := client.DoRequest(context.Background(), RequestOptions{
		Method: http.MethodGet,
		Path:   "health/db",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, captured.headers.Get("X-Request-ID"))
}
