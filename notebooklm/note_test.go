package notebooklm

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/crosszan/nlm/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListNotes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "cFji9", r.URL.Query().Get("rpcids"))
		fmt.Fprint(w, batchBody(t, "cFji9", []any{[]any{
			[]any{"note_1", "Reading list", "paper one, paper two"},
		}}))
	}))
	defer server.Close()

	notes, err := testClient(server.URL).ListNotes(context.Background(), "nb_1")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "note_1", notes[0].ID)
	assert.Equal(t, "Reading list", notes[0].Title)
}

func TestCreateNote(t *testing.T) {
	noteID := "7f3a2b10-9c4d-4e5f-8a6b-1c2d3e4f5a6b"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		params := requestParams(t, r)
		assert.Equal(t, "nb_1", params[0])
		assert.Equal(t, "note body", params[1])
		assert.Equal(t, "Title", params[4])

		// The response buries the fresh id at an unstable depth.
		fmt.Fprint(w, batchBody(t, "CYK0Xb", []any{[]any{nil, []any{noteID}}}))
	}))
	defer server.Close()

	note, err := testClient(server.URL).CreateNote(context.Background(), "nb_1", "Title", "note body")
	require.NoError(t, err)
	assert.Equal(t, noteID, note.ID)
	assert.Equal(t, "Title", note.Title)
	assert.Equal(t, "note body", note.Content)
}

func TestUpdateNote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		params := requestParams(t, r)
		assert.Equal(t, "note_1", params[1])
		assert.Equal(t, "new body", rpc.Str(params, 2, 0, 0))
		assert.Equal(t, "new title", rpc.Str(params, 2, 0, 1))
		fmt.Fprint(w, batchBody(t, "cYAfTb", nil))
	}))
	defer server.Close()

	err := testClient(server.URL).UpdateNote(context.Background(), "nb_1", "note_1", "new title", "new body")
	assert.NoError(t, err)
}

func TestDeleteNote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		params := requestParams(t, r)
		assert.Equal(t, "note_1", rpc.Str(params, 1, 0))
		fmt.Fprint(w, batchBody(t, "AH0mwd", nil))
	}))
	defer server.Close()

	err := testClient(server.URL).DeleteNote(context.Background(), "nb_1", "note_1")
	assert.NoError(t, err)
}
