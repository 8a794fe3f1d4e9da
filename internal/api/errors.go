package api

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// ConnectionError means the request never produced a usable response: the
// transport failed, or the service answered with a non-success status whose
// body carried no decodable detail.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	if e.Err == nil {
		return "connection error"
	}
	return fmt.Sprintf("connection error: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// Error is an application-level failure: the service answered with a
// non-success status and a detail message, normalized to one display string.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	return fmt.Sprintf("electrostock api: %d: %s", e.StatusCode, e.Detail)
}

// normalizeDetail folds the service's "detail" field into a single string.
// Observed shapes: a plain string, a list of field issues ([{loc, msg}]),
// or an arbitrary object. Returns "" when the body has no usable detail.
func normalizeDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(envelope.Detail, &s); err == nil {
		return s
	}

	var issues []struct {
		Loc []any  `json:"loc"`
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &issues); err == nil && len(issues) > 0 {
		parts := make([]string, 0, len(issues))
		for _, issue := range issues {
			if field := lastLoc(issue.Loc); field != "" && issue.Msg != "" {
				parts = append(parts, fmt.Sprintf("%s: %s", field, issue.Msg))
			} else if issue.Msg != "" {
				parts = append(parts, issue.Msg)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, "; ")
		}
	}

	var obj map[string]any
	if err := json.Unmarshal(envelope.Detail, &obj); err == nil && len(obj) > 0 {
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s: %v", k, obj[k]))
		}
		return strings.Join(parts, "; ")
	}

	return ""
}

func lastLoc(loc []any) string {
	for i := len(loc) - 1; i >= 0; i-- {
		if s, ok := loc[i].(string); ok && s != "body" {
			return s
		}
	}
	return ""
}
