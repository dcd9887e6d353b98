package handlers

import (
	"fmt"
	"net/http"
	"strconv"
)

// getParam returns a path or query parameter value regardless of whether
// the router stores it with a leading colon or not. It also supports the
// standard net/http PathValue API available in recent Go versions.
func getParam(r *http.Request, name string) string {
	if r == nil {
		return ""
	}

	if val := r.URL.Query().Get(":" + name); val != "" {
		return val
	}

	if val := r.URL.Query().Get(name); val != "" {
		return val
	}

	return r.PathValue(name)
}

// intParam parses a required positive integer parameter.
func intParam(r *http.Request, name string) (int, error) {
	raw := getParam(r, name)
	if raw == "" {
		return 0, fmt.Errorf("missing %s", name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return v, nil
}

// optionalInt parses an optional integer query value, 0 when absent.
func optionalInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return v, nil
}
