package rpc

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strconv"

	vo "github.com/crosszan/nlm/vo"
)

// marshalCompact serializes a parameter tree to compact JSON with HTML
// escaping disabled. The server is sensitive to exact framing: nulls must
// survive as-is and no incidental whitespace or < escapes may appear.
func marshalCompact(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	// Encode appends a newline
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// EncodeRPCRequest builds the triple-nested array structure for batchexecute.
// Format: [[[rpc_id, json_params, null, "generic"]]]
func EncodeRPCRequest(method vo.RPCMethod, params []any) ([]any, error) {
	if params == nil {
		params = []any{}
	}
	paramsJSON, err := marshalCompact(params)
	if err != nil {
		return nil, err
	}

	inner := []any{string(method), paramsJSON, nil, "generic"}
	return []any{[]any{inner}}, nil
}

// BuildRequestBody creates the form-encoded request body:
// f.req=<pct-encoded envelope>&at=<pct-encoded CSRF token>&
// The trailing & is part of the observed wire format.
func BuildRequestBody(rpcRequest []any, csrfToken string) (string, error) {
	fReq, err := marshalCompact(rpcRequest)
	if err != nil {
		return "", err
	}

	body := "f.req=" + url.QueryEscape(fReq) + "&"
	if csrfToken != "" {
		body += "at=" + url.QueryEscape(csrfToken) + "&"
	}

	return body, nil
}

// BuildURL constructs the batchexecute URL with query parameters
func BuildURL(method vo.RPCMethod, sessionID string, sourcePath string) string {
	params := url.Values{}
	params.Set("rpcids", string(method))
	params.Set("source-path", sourcePath)
	if sessionID != "" {
		params.Set("f.sid", sessionID)
	}
	params.Set("rt", "c") // chunked response mode

	return BatchExecuteURL + "?" + params.Encode()
}

// BuildChatURL constructs the streamed chat endpoint URL
func BuildChatURL(sessionID string, reqID int) string {
	params := url.Values{}
	params.Set("bl", "boq_labs-tailwind-frontend_20241209.08_p1")
	params.Set("hl", "en")
	params.Set("_reqid", strconv.Itoa(reqID))
	params.Set("rt", "c")
	if sessionID != "" {
		params.Set("f.sid", sessionID)
	}

	return QueryURL + "?" + params.Encode()
}

// EncodeChatRequest builds the chat request body. History is the prior
// turns of the conversation replayed client-side; the server keeps no
// usable transcript for this endpoint.
func EncodeChatRequest(question string, sourceIDs []string, conversationID string, history []any, csrfToken string) (string, error) {
	// Source array shape: [[[sid]] for each source]
	sources := make([]any, len(sourceIDs))
	for i, sid := range sourceIDs {
		sources[i] = []any{[]any{[]any{sid}}}
	}
	if history == nil {
		history = []any{}
	}

	params := []any{
		sources,
		question,
		history,
		[]any{2, nil, []any{1}},
		conversationID,
	}

	paramsJSON, err := marshalCompact(params)
	if err != nil {
		return "", err
	}

	fReq := []any{nil, paramsJSON}
	fReqJSON, err := marshalCompact(fReq)
	if err != nil {
		return "", err
	}

	body := "f.req=" + url.QueryEscape(fReqJSON) + "&"
	if csrfToken != "" {
		body += "at=" + url.QueryEscape(csrfToken) + "&"
	}
	return body, nil
}
