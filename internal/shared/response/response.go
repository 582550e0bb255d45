package response

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Response là envelope chung cho mọi JSON response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody là phần "error" trong envelope
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Success responses
func Success(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error responses. Code is derived from the status ("NOT_FOUND", "BAD_REQUEST", ...).
func Error(c *gin.Context, statusCode int, message string, details interface{}) {
	ErrorWithCode(c, statusCode, codeFromStatus(statusCode), message, details)
}

func ErrorWithCode(c *gin.Context, statusCode int, code, message string, details interface{}) {
	if err, ok := details.(error); ok {
		details = err.Error()
	}

	c.JSON(statusCode, Response{
		Success: false,
		Error: &ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// AbortWithError dùng trong middleware: ghi response rồi dừng chain
func AbortWithError(c *gin.Context, statusCode int, message string) {
	Error(c, statusCode, message, nil)
	c.Abort()
}

func codeFromStatus(statusCode int) string {
	text := http.StatusText(statusCode)
	if text == "" {
		return "UNKNOWN_ERROR"
	}
	return strings.ToUpper(strings.ReplaceAll(text, " ", "_"))
}
