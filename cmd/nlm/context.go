package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/crosszan/nlm/notebooklm"
)

// cliContext is the persisted CLI state: which notebook and conversation
// commands operate on when no identifier is given.
type cliContext struct {
	CurrentNotebook     string `json:"current_notebook,omitempty"`
	CurrentConversation string `json:"current_conversation,omitempty"`
}

func contextPath() string {
	return filepath.Join(notebooklm.GetStorageDir(), "context.json")
}

func loadContext() *cliContext {
	cc := &cliContext{}
	data, err := os.ReadFile(contextPath())
	if err != nil {
		return cc
	}
	_ = json.Unmarshal(data, cc)
	return cc
}

func saveContext(cc *cliContext) error {
	if err := os.MkdirAll(notebooklm.GetStorageDir(), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(contextPath(), data, 0600)
}

func newClient() (*notebooklm.Client, error) {
	client, err := notebooklm.NewClientFromStorage(flagStorage)
	if err != nil {
		return nil, fmt.Errorf("not logged in (run 'nlm login'): %w", err)
	}
	return client, nil
}

// notebookArg resolves the notebook to operate on: explicit argument first,
// current-notebook context otherwise.
func notebookArg(ctx context.Context, client *notebooklm.Client, args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return resolveNotebookID(ctx, client, args[0])
	}
	if cc := loadContext(); cc.CurrentNotebook != "" {
		return cc.CurrentNotebook, nil
	}
	return "", fmt.Errorf("no notebook given and no current notebook set (run 'nlm notebook use <id>')")
}

// resolveNotebookID accepts a full notebook ID, a unique ID prefix, or an
// exact title.
func resolveNotebookID(ctx context.Context, client *notebooklm.Client, ref string) (string, error) {
	notebooks, err := client.ListNotebooks(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(notebooks))
	for i, nb := range notebooks {
		if nb.Title == ref {
			return nb.ID, nil
		}
		ids[i] = nb.ID
	}
	return resolvePrefix(ref, ids, "notebook")
}

// resolveArtifactID accepts a full artifact ID or a unique ID prefix.
func resolveArtifactID(ctx context.Context, client *notebooklm.Client, notebookID, ref string) (string, error) {
	artifacts, err := client.ListArtifacts(ctx, notebookID)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(artifacts))
	for i, a := range artifacts {
		ids[i] = a.ID
	}
	return resolvePrefix(ref, ids, "artifact")
}

// resolvePrefix matches ref against ids: exact match wins, otherwise a
// unique prefix; ambiguous or unknown prefixes are errors.
func resolvePrefix(ref string, ids []string, kind string) (string, error) {
	var matches []string
	for _, id := range ids {
		if id == ref {
			return id, nil
		}
		if strings.HasPrefix(id, ref) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("no %s matches %q", kind, ref)
	default:
		return "", fmt.Errorf("%s %q is ambiguous (%d matches)", kind, ref, len(matches))
	}
}

// printJSON writes v as indented JSON to stdout
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// statusGlyph renders an artifact or task status for table output
func statusGlyph(status string) string {
	switch status {
	case "completed":
		return "done"
	case "in_progress":
		return "working"
	case "failed":
		return "failed"
	default:
		return "pending"
	}
}
