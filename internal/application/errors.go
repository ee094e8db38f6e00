package application

import (
	"errors"
	"sort"
	"strings"
)

// Request-terminal errors. Whatever a repository or hashing primitive
// reports internally is translated into one of these before it leaves the
// service layer; handlers map them onto HTTP statuses.
var (
	// ErrInvalidCredentials covers both unknown-username and wrong-password
	// so the response never reveals which check failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrDenied means an operation is forbidden for the caller by policy.
	ErrDenied = errors.New("operation not permitted")

	// ErrPostNotFound means the referenced post does not exist.
	ErrPostNotFound = errors.New("post not found")
)

// ValidationError reports per-field problems with a create request.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}
