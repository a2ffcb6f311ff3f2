package sanity

import (
	"errors"
	"fmt"
)

var (
	ErrProjectIDRequired = errors.New("sanity: project id is required")
	ErrDatasetRequired   = errors.New("sanity: dataset is required")
	ErrInvalidImageRef   = errors.New("sanity: invalid image asset reference")
	ErrUnexpectedResult  = errors.New("sanity: unexpected query result")
)

// QueryError reports a non-2xx response from the query API.
type QueryError struct {
	StatusCode  int
	Type        string
	Description string
}

func (e *QueryError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Description == "" {
		return fmt.Sprintf("sanity: query failed with status %d", e.StatusCode)
	}
	if e.Type == "" {
		return fmt.Sprintf("sanity: query failed with status %d: %s", e.StatusCode, e.Description)
	}
	return fmt.Sprintf("sanity: query failed with status %d (%s): %s", e.StatusCode, e.Type, e.Description)
}

// IsQueryError reports whether err carries a QueryError.
func IsQueryError(err error) bool {
	var target *QueryError
	return errors.As(err, &target)
}
