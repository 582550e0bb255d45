package group

import (
	"errors"
	"net/http"
)

var (
	ErrGroupNotFound = errors.New("group not found")
	ErrDuplicateSlug = errors.New("group with this slug already exists")
)

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrGroupNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateSlug):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
