package post

import (
	"errors"
	"strings"
)

var ErrPostNotFound = errors.New("post not found")

// Field error kinds
const (
	KindRequired         = "required"
	KindInvalidReference = "invalid_reference"
)

// FieldError mô tả một lỗi trên một field của form
type FieldError struct {
	Field   string `json:"field"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// ValidationError được trả về khi input create/edit không hợp lệ.
// Input giữ lại giá trị đã submit để client render lại form.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
	Input  RawInput     `json:"input"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "invalid post input: " + strings.Join(parts, "; ")
}

// Has reports whether field failed with the given kind.
func (e *ValidationError) Has(field, kind string) bool {
	for _, f := range e.Fields {
		if f.Field == field && f.Kind == kind {
			return true
		}
	}
	return false
}
