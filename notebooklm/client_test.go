package notebooklm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/crosszan/nlm/rpc"
	vo "github.com/crosszan/nlm/vo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func testClient(serverURL string) *Client {
	c := NewClient(&vo.AuthTokens{
		Cookies:   []vo.Cookie{{Name: "SID", Value: "test-sid", Domain: ".google.com"}},
		CSRFToken: "test-csrf",
		SessionID: "test-session",
	})
	c.rpcEndpoint = serverURL
	c.chatEndpoint = serverURL
	return c
}

// batchBody renders a batchexecute response carrying one result payload.
func batchBody(t *testing.T, rpcID string, tree any) string {
	t.Helper()
	var payload string
	if tree == nil {
		line, err := json.Marshal([]any{[]any{"wrb.fr", rpcID, nil, nil, nil}})
		require.NoError(t, err)
		return fmt.Sprintf(")]}'\n%d\n%s\n", len(line), line)
	}
	raw, err := json.Marshal(tree)
	require.NoError(t, err)
	payload = string(raw)
	line, err := json.Marshal([]any{[]any{"wrb.fr", rpcID, payload, nil, nil}})
	require.NoError(t, err)
	return fmt.Sprintf(")]}'\n%d\n%s\n", len(line), line)
}

// requestParams pulls the inner positional params back out of a request.
func requestParams(t *testing.T, r *http.Request) []any {
	t.Helper()
	require.NoError(t, r.ParseForm())
	var envelope []any
	require.NoError(t, json.Unmarshal([]byte(r.PostForm.Get("f.req")), &envelope))
	inner, ok := rpc.Index(envelope, 0, 0, 1).(string)
	require.True(t, ok)
	var params []any
	require.NoError(t, json.Unmarshal([]byte(inner), &params))
	return params
}

func TestListNotebooks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "wXbhsf", r.URL.Query().Get("rpcids"))
		assert.Equal(t, "c", r.URL.Query().Get("rt"))
		assert.Equal(t, "/", r.URL.Query().Get("source-path"))
		assert.Equal(t, "test-session", r.URL.Query().Get("f.sid"))
		assert.Contains(t, r.Header.Get("Cookie"), "SID=test-sid")

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "test-csrf", r.PostForm.Get("at"))

		fmt.Fprint(w, batchBody(t, "wXbhsf", []any{[]any{
			[]any{"Notebook A", []any{}, "nb_1"},
		}}))
	}))
	defer server.Close()

	notebooks, err := testClient(server.URL).ListNotebooks(context.Background())
	require.NoError(t, err)
	require.Len(t, notebooks, 1)
	assert.Equal(t, "nb_1", notebooks[0].ID)
	assert.Equal(t, "Notebook A", notebooks[0].Title)
}

func TestCreateNotebook(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		params := requestParams(t, r)
		assert.Equal(t, "My Research", params[0])
		fmt.Fprint(w, batchBody(t, "CCqFvf", []any{"My Research", []any{}, "nb_new"}))
	}))
	defer server.Close()

	nb, err := testClient(server.URL).CreateNotebook(context.Background(), "My Research")
	require.NoError(t, err)
	assert.Equal(t, "nb_new", nb.ID)
	assert.Equal(t, "My Research", nb.Title)
}

func TestGetNotebook(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/notebook/nb_1", r.URL.Query().Get("source-path"))
		fmt.Fprint(w, batchBody(t, "rLM1Ne", []any{
			[]any{"Notebook A", []any{[]any{"s1"}}, "nb_1"},
		}))
	}))
	defer server.Close()

	nb, err := testClient(server.URL).GetNotebook(context.Background(), "nb_1")
	require.NoError(t, err)
	assert.Equal(t, "nb_1", nb.ID)
	assert.Equal(t, 1, nb.SourceCount)
}

func TestRPCErrorSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, ")]}'\n"+`[["er","wXbhsf","something broke"]]`)
	}))
	defer server.Close()

	_, err := testClient(server.URL).ListNotebooks(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, rpc.ErrRPCError)
}

func TestAuthErrorOnForbidden(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := testClient(server.URL).ListNotebooks(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, rpc.ErrAuthError)
	assert.True(t, rpc.IsAuthError(err))
}

func TestStatusErrorOnServerFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := testClient(server.URL).ListNotebooks(context.Background())
	require.Error(t, err)

	var statusErr *rpc.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.Status)
}

func TestDeleteNotebook(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		params := requestParams(t, r)
		assert.Equal(t, "nb_1", rpc.Str(params, 0, 0), "delete wraps the id in a list")
		fmt.Fprint(w, batchBody(t, "WWINqb", nil))
	}))
	defer server.Close()

	err := testClient(server.URL).DeleteNotebook(context.Background(), "nb_1")
	assert.NoError(t, err)
}

func TestGetNotebookDescription(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, batchBody(t, "VfAZjd", []any{
			"Sources cover distributed consensus.",
			[]any{[]any{"Paxos"}, []any{"Raft"}},
		}))
	}))
	defer server.Close()

	desc, err := testClient(server.URL).GetNotebookDescription(context.Background(), "nb_1")
	require.NoError(t, err)
	assert.Equal(t, "Sources cover distributed consensus.", desc.Summary)
	assert.Equal(t, []string{"Paxos", "Raft"}, desc.SuggestedTopics)
}

func TestListSources(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, batchBody(t, "rLM1Ne", []any{
			[]any{"Notebook A", []any{
				[]any{"src_1", "First source"},
				[]any{"src_2", "Second source"},
			}, "nb_1"},
		}))
	}))
	defer server.Close()

	sources, err := testClient(server.URL).ListSources(context.Background(), "nb_1")
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, "src_1", sources[0].ID)
	assert.Equal(t, "nb_1", sources[0].NotebookID)
}

func TestConcurrentCallsShareOneRefresh(t *testing.T) {
	var refreshes atomic.Int32
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		refreshes.Add(1)
		fmt.Fprint(w, `{"SNlM0e":"fresh-csrf","FdrFJe":"fresh-session"}`)
	})
	mux.HandleFunc("POST /", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "fresh-csrf", r.PostForm.Get("at"))
		fmt.Fprint(w, batchBody(t, "wXbhsf", []any{[]any{
			[]any{"Notebook A", []any{}, "nb_1"},
		}}))
	})

	// No CSRF token yet, so every call wants a refresh.
	c := NewClient(&vo.AuthTokens{
		Cookies: []vo.Cookie{{Name: "SID", Value: "test-sid", Domain: ".google.com"}},
	})
	c.rpcEndpoint = server.URL
	c.authEndpoint = server.URL

	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < 4; i++ {
		g.Go(func() error {
			_, err := c.ListNotebooks(ctx)
			return err
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int32(1), refreshes.Load())
	assert.Equal(t, "fresh-csrf", c.auth.CSRFToken)
	assert.Equal(t, "fresh-session", c.auth.SessionID)
}

func TestIsRetryableError(t *testing.T) {
	assert.False(t, isRetryableError(nil))
	assert.True(t, isRetryableError(fmt.Errorf("dial tcp: connection refused")))
	assert.True(t, isRetryableError(fmt.Errorf("net/http: TLS handshake timeout")))
	assert.True(t, isRetryableError(fmt.Errorf("unexpected EOF")))
	assert.False(t, isRetryableError(fmt.Errorf("invalid notebook response")))
	assert.False(t, isRetryableError(rpc.ErrRPCError))
}
