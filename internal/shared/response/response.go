package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response là envelope chung cho mọi API response.
// Error là string (not found, upstream, auth) hoặc *ErrorDetail (authorization denied).
type Response struct {
	Status  int         `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   interface{} `json:"error,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

type ErrorDetail struct {
	Message string `json:"message"`
}

// Success responses
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Status: statusCode,
		Data:   data,
	})
}

func Message(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Status:  statusCode,
		Message: message,
	})
}

// Error responses
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Status: statusCode,
		Error:  message,
	})
}

// Forbidden dùng shape lồng {error:{message}}
func Forbidden(c *gin.Context, message string) {
	c.JSON(http.StatusForbidden, Response{
		Status: http.StatusForbidden,
		Error:  &ErrorDetail{Message: message},
	})
}

// ValidationFailed trả 400 với danh sách lỗi từng field
func ValidationFailed(c *gin.Context, errs []string) {
	c.JSON(http.StatusBadRequest, Response{
		Status: http.StatusBadRequest,
		Errors: errs,
	})
}

// Common error responses
func Unauthorized(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusUnauthorized, message)
}

func NotFound(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, message)
}

func Conflict(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusConflict, message)
}

func BadGateway(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadGateway, message)
}

func InternalServerError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, message)
}
