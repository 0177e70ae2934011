package notebooklm

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/crosszan/nlm/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddSourceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("alpha beta"), 0o644))

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	var uploaded []byte
	mux.HandleFunc("POST /{$}", func(w http.ResponseWriter, r *http.Request) {
		params := requestParams(t, r)
		assert.Equal(t, "notes.txt", rpc.Str(params, 0, 0, 0))
		assert.Equal(t, "nb_1", rpc.Str(params, 1))
		fmt.Fprint(w, batchBody(t, "o4cbdc", []any{
			[]any{"3f2504e0-4f89-4ed3-9a0c-0305e82c3301"},
		}))
	})
	mux.HandleFunc("POST /upload", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "start", r.Header.Get("x-goog-upload-command"))
		assert.Equal(t, "resumable", r.Header.Get("x-goog-upload-protocol"))
		assert.Equal(t, "10", r.Header.Get("x-goog-upload-header-content-length"))
		assert.Contains(t, r.Header.Get("Cookie"), "SID=test-sid")

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), `"PROJECT_ID":"nb_1"`)
		assert.Contains(t, string(body), `"SOURCE_NAME":"notes.txt"`)
		assert.Contains(t, string(body), `"SOURCE_ID":"3f2504e0-4f89-4ed3-9a0c-0305e82c3301"`)

		w.Header().Set("x-goog-upload-url", server.URL+"/session")
	})
	mux.HandleFunc("POST /session", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "upload, finalize", r.Header.Get("x-goog-upload-command"))
		assert.Equal(t, "0", r.Header.Get("x-goog-upload-offset"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		uploaded = body
	})

	c := testClient(server.URL)
	c.uploadEndpoint = server.URL + "/upload"

	source, err := c.AddSourceFile(context.Background(), "nb_1", path)
	require.NoError(t, err)
	assert.Equal(t, "3f2504e0-4f89-4ed3-9a0c-0305e82c3301", source.ID)
	assert.Equal(t, "notes.txt", source.Title)
	assert.Equal(t, "text_file", source.SourceType)
	assert.True(t, source.Uploaded)
	assert.Equal(t, "alpha beta", string(uploaded))
}

func TestAddSourceFileNoSessionURL(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("POST /{$}", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, batchBody(t, "o4cbdc", []any{
			[]any{"3f2504e0-4f89-4ed3-9a0c-0305e82c3301"},
		}))
	})
	// the start handler never sets x-goog-upload-url
	mux.HandleFunc("POST /upload", func(w http.ResponseWriter, r *http.Request) {})

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	c := testClient(server.URL)
	c.uploadEndpoint = server.URL + "/upload"

	_, err := c.AddSourceFile(context.Background(), "nb_1", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no upload URL")
}

func TestAddSourceFileRejectsDirectory(t *testing.T) {
	c := testClient("http://unused")
	_, err := c.AddSourceFile(context.Background(), "nb_1", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "directory")
}
