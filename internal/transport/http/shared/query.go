package shared

import (
	"net/http"
	"strconv"
)

// QueryInt reads a positive integer query parameter, falling back to def
// when it is absent or malformed.
func QueryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}
