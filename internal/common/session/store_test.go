package session

import (
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStore(t *testing.T) {
	s := NewMemStore()
	assert.False(t, s.IsAuthenticated())
	assert.Equal(t, "", s.Token())

	require.NoError(t, s.SetToken("tok123"))
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "tok123", s.Token())

	// overwrite
	require.NoError(t, s.SetToken("tok456"))
	assert.Equal(t, "tok456", s.Token())

	require.NoError(t, s.Clear())
	assert.False(t, s.IsAuthenticated())

	// clearing an empty store is a no-op
	require.NoError(t, s.Clear())
	assert.Equal(t, "", s.Token())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	s, err := NewFileStore(path)
	require.NoError(t, err)

	assert.False(t, s.IsAuthenticated())

	require.NoError(t, s.SetToken("tok123"))
	assert.Equal(t, "tok123", s.Token())

	// a second store over the same file sees the token
	s2, err := NewFileStore(path)
	require.NoError(t, err)
	assert.Equal(t, "tok123", s2.Token())
	assert.True(t, s2.IsAuthenticated())

	require.NoError(t, s.Clear())
	assert.Equal(t, "", s2.Token())
}

func TestFileStoreUnreadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte("\tnot yaml: ["), 0600))

	s, err := NewFileStore(path)
	require.NoError(t, err)

	// malformed session file degrades to unauthenticated
	assert.False(t, s.IsAuthenticated())
	assert.Equal(t, "", s.Token())
}

func TestFileStoreClearMissingFile(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.NoError(t, s.Clear())
}

func TestDecodeClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()
	payload, err := json.Marshal(map[string]any{
		"sub": "alice",
		"exp": exp,
	})
	require.NoError(t, err)

	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	body := base64.RawURLEncoding.EncodeToString(payload)
	token := header + "." + body + ".signature-not-checked"

	claims, err := DecodeClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, exp, claims.ExpiresAt.Unix())

	_, err = DecodeClaims("not-a-jwt")
	assert.Error(t, err)
}
