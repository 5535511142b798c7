package graphql

import (
	"context"
	"encoding/json"
	"net/http"
)

// Context keys for resolver injection (avoids circular imports).
type contextKey string

const CtxKeyLocation contextKey = "location"

// LocationFromContext returns the venue location code for the current request.
func LocationFromContext(ctx context.Context) string {
	if v := ctx.Value(CtxKeyLocation); v != nil {
		if loc, ok := v.(string); ok {
			return loc
		}
	}
	return ""
}

// WithLocation attaches a location code to context.
func WithLocation(ctx context.Context, location string) context.Context {
	return context.WithValue(ctx, CtxKeyLocation, location)
}

// Location is resolved from: Location header > __Location query param >
// JSON variables.__Location
const (
	HeaderLocation     = "Location"
	QueryParamLocation = "__Location"
	VarLocation        = "__Location"
)

// GetLocation extracts the location code from the request header or query
// param. Body variables are handled separately by the handler.
func GetLocation(r *http.Request) string {
	if h := r.Header.Get(HeaderLocation); h != "" {
		return h
	}
	if q := r.URL.Query().Get(QueryParamLocation); q != "" {
		return q
	}
	return ""
}

// ParseLocationFromVariables parses variables from a JSON body for __Location.
func ParseLocationFromVariables(body []byte) (string, bool) {
	var payload struct {
		Variables map[string]interface{} `json:"variables"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Variables == nil {
		return "", false
	}
	if v, ok := payload.Variables[VarLocation]; ok {
		if s, ok := v.(string); ok {
			return s, true
		}
	}
	return "", false
}
