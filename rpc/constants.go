// Package rpc implements Google's batchexecute RPC transport as used by the
// NotebookLM web frontend: the double-JSON envelope, the form-encoded request
// body, and the length-prefixed chunked response format.
package rpc

const (
	// BatchExecuteURL is the main RPC endpoint
	BatchExecuteURL = "https://notebooklm.google.com/_/LabsTailwindUi/data/batchexecute"

	// QueryURL is the streaming endpoint for chat
	QueryURL = "https://notebooklm.google.com/_/LabsTailwindUi/data/google.internal.labs.tailwind.orchestration.v1.LabsTailwindOrchestrationService/GenerateFreeFormStreamed"

	// UploadURL is for resumable file uploads
	UploadURL = "https://notebooklm.google.com/upload/_/"

	// BaseURL is the NotebookLM homepage, scraped for auth tokens
	BaseURL = "https://notebooklm.google.com/"

	// responseMarker tags the response-bearing element within a chunk
	responseMarker = "wrb.fr"

	// errorMarker tags a per-method error element within a chunk
	errorMarker = "er"
)
