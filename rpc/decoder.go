package rpc

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	vo "github.com/crosszan/nlm/vo"
)

// DecodeResponse parses a batchexecute response body and returns the payload
// tree for the given RPC method. When allowNull is true, a missing or null
// payload yields (nil, nil): many NotebookLM RPCs legitimately return null
// for "no content yet" (e.g. polling an artifact that has not started).
//
// The tree comes back exactly as the embedded JSON parses, outer wrapper
// included; list-shaped RPCs keep their enclosing list and the mappers take
// the payload[0] step themselves.
func DecodeResponse(response string, rpcID vo.RPCMethod, allowNull bool) (any, error) {
	chunks, err := parseChunkedResponse(stripAntiXSSI(response))
	if err != nil {
		return nil, fmt.Errorf("failed to parse chunked response: %w", err)
	}

	return extractRPCResult(chunks, string(rpcID), allowNull)
}

// stripAntiXSSI removes Google's XSS-prevention prefix
func stripAntiXSSI(response string) string {
	for _, prefix := range []string{")]}'\n", ")]}'"} {
		if strings.HasPrefix(response, prefix) {
			return strings.TrimPrefix(response, prefix)
		}
	}
	return response
}

// parseChunkedResponse splits the streaming format: lines that parse as a
// bare integer are byte-length markers for the chunk that follows and must
// be skipped without being treated as content.
func parseChunkedResponse(response string) ([]any, error) {
	var chunks []any
	lines := strings.Split(strings.TrimSpace(response), "\n")

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if _, err := strconv.Atoi(line); err == nil {
			// length marker
			continue
		}
		var chunk any
		if err := json.Unmarshal([]byte(line), &chunk); err == nil {
			chunks = append(chunks, chunk)
		}
	}

	return chunks, nil
}

// extractRPCResult finds the wrb.fr-marked element for the method and parses
// its embedded second-layer JSON string into the payload tree.
func extractRPCResult(chunks []any, rpcID string, allowNull bool) (any, error) {
	var foundIDs []string

	for _, chunk := range chunks {
		arr, ok := chunk.([]any)
		if !ok {
			continue
		}

		for _, item := range arr {
			itemArr, ok := item.([]any)
			if !ok || len(itemArr) < 2 {
				continue
			}

			itemType, _ := itemArr[0].(string)
			itemID, _ := itemArr[1].(string)

			if itemID != "" {
				foundIDs = append(foundIDs, itemID)
			}

			if itemType == errorMarker && itemID == rpcID {
				if len(itemArr) > 2 {
					return nil, fmt.Errorf("%w: %v", ErrRPCError, itemArr[2])
				}
				return nil, ErrRPCError
			}

			if itemType == responseMarker && itemID == rpcID {
				if len(itemArr) < 3 || itemArr[2] == nil {
					if allowNull {
						return nil, nil
					}
					return nil, fmt.Errorf("%w: null payload for %s", ErrRPCError, rpcID)
				}

				// The payload is itself a JSON-encoded string that must be
				// parsed a second time.
				if strResult, ok := itemArr[2].(string); ok {
					var parsed any
					if err := json.Unmarshal([]byte(strResult), &parsed); err == nil {
						return parsed, nil
					}
					return strResult, nil
				}

				return itemArr[2], nil
			}
		}
	}

	if allowNull {
		return nil, nil
	}
	return nil, fmt.Errorf("%w: %s (found IDs: %v)", ErrNoResult, rpcID, foundIDs)
}

// answerFinalMarker trails the payload of chunks carrying a finalized
// answer. Chunks without it are intermediate completions.
const answerFinalMarker = 1

// DecodeStreamedAnswer extracts the answer text from a GenerateFreeFormStreamed
// response. Partial chunks can be longer in visible characters than the true
// final chunk, so selection is: longest finalized answer if any chunk carries
// the final marker, otherwise longest answer overall. This heuristic mirrors
// the live service; do not generalize it without new captures.
func DecodeStreamedAnswer(response string) (string, error) {
	chunks, err := parseChunkedResponse(stripAntiXSSI(response))
	if err != nil {
		return "", err
	}

	var longestFinal, longestAny string

	for _, chunk := range chunks {
		arr, ok := chunk.([]any)
		if !ok {
			continue
		}

		for _, item := range arr {
			itemArr, ok := item.([]any)
			if !ok || len(itemArr) < 3 {
				continue
			}

			marker, _ := itemArr[0].(string)
			if marker != responseMarker {
				continue
			}

			innerJSON, ok := itemArr[2].(string)
			if !ok {
				continue
			}

			var payload []any
			if err := json.Unmarshal([]byte(innerJSON), &payload); err != nil {
				continue
			}

			text := answerText(payload)
			if text == "" {
				continue
			}
			if len(text) > len(longestAny) {
				longestAny = text
			}
			if isFinalAnswer(payload) && len(text) > len(longestFinal) {
				longestFinal = text
			}
		}
	}

	if longestFinal != "" {
		return longestFinal, nil
	}
	if longestAny != "" {
		return longestAny, nil
	}
	return "", fmt.Errorf("%w: no answer found in response", ErrInvalidFormat)
}

// answerText pulls the answer string out of a streamed payload.
// Structure: [[answer_text, null, [ids], ...], ..., type_marker]
func answerText(payload []any) string {
	return Str(payload, 0, 0)
}

// isFinalAnswer checks the trailing type marker of a streamed payload.
func isFinalAnswer(payload []any) bool {
	if len(payload) == 0 {
		return false
	}
	last, ok := payload[len(payload)-1].(float64)
	return ok && int(last) == answerFinalMarker
}
