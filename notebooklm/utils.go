package notebooklm

// extractUUID recursively finds the first UUID-shaped string in a tree.
// Used where a response buries a fresh ID at an unstable depth.
func extractUUID(data any) string {
	switch v := data.(type) {
	case string:
		if isUUIDFormat(v) {
			return v
		}
	case []any:
		for _, item := range v {
			if id := extractUUID(item); id != "" {
				return id
			}
		}
	}
	return ""
}

// isUUIDFormat checks if string is UUID format
func isUUIDFormat(s string) bool {
	if len(s) != 36 {
		return false
	}
	for i, c := range s {
		if i == 8 || i == 13 || i == 18 || i == 23 {
			if c != '-' {
				return false
			}
		} else {
			if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
				return false
			}
		}
	}
	return true
}
