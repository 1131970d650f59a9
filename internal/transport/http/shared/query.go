package shared

import (
	"net/http"
	"strconv"
	"time"

	"hrms/internal/domain/apperror"
)

// Query wraps the request query string with an allow-list. Filters are
// typed on the way in: an unknown key is a validation error, never a
// silently ignored parameter.
type Query struct {
	values  map[string][]string
	allowed map[string]bool
}

var pagingKeys = []string{"page", "limit"}

// ParseQuery validates the query string against the allowed keys.
// Paging keys are always accepted.
func ParseQuery(r *http.Request, allowed ...string) (Query, error) {
	q := Query{values: r.URL.Query(), allowed: make(map[string]bool, len(allowed)+len(pagingKeys))}
	for _, key := range allowed {
		q.allowed[key] = true
	}
	for _, key := range pagingKeys {
		q.allowed[key] = true
	}
	var issues []apperror.FieldIssue
	for key := range q.values {
		if !q.allowed[key] {
			issues = append(issues, apperror.FieldIssue{Field: key, Reason: "is not a recognized filter"})
		}
	}
	if err := apperror.ValidationIssues(issues); err != nil {
		return Query{}, err
	}
	return q, nil
}

func (q Query) Get(key string) string {
	vals := q.values[key]
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}

func (q Query) Date(key string) (*time.Time, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return nil, apperror.Validation(key, "must be a valid date in YYYY-MM-DD format")
	}
	return &parsed, nil
}

func (q Query) Bool(key string) (*bool, error) {
	switch q.Get(key) {
	case "":
		return nil, nil
	case "true":
		v := true
		return &v, nil
	case "false":
		v := false
		return &v, nil
	default:
		return nil, apperror.Validation(key, "must be true or false")
	}
}

func (q Query) Int(key string, fallback int) int {
	raw := q.Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
