package model

import (
	"errors"
	"fmt"
	"net/http"

	"propertypro-backend/internal/shared/authz"
)

// PropertyError định nghĩa base error cho property domain
type PropertyError struct {
	Code    string // Error code duy nhất (VD: "PROPERTY_NOT_FOUND")
	Message string // Message trả nguyên văn cho client
	Err     error  // Underlying error
}

func (e *PropertyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *PropertyError) Unwrap() error {
	return e.Err
}

const (
	CodePropertyNotFound  = "PROPERTY_NOT_FOUND"
	CodeTypeNotFound      = "PROPERTY_TYPE_NOT_FOUND"
	CodeImageRequired     = "IMAGE_REQUIRED"
	CodeInvalidImage      = "INVALID_IMAGE"
	CodeImageUploadFailed = "IMAGE_UPLOAD_FAILED"
)

// Not found message khác nhau theo operation
const (
	MsgNotFound          = "No property found"
	MsgUpdateNotFound    = "property your are trying to update is not available!"
	MsgDeleteNotFound    = "no property found!"
	MsgTypeNotFound      = "No available properties of such a type"
	MsgImageRequired     = `"image" is required`
	MsgImageUploadFailed = "Image upload failed"
)

// ============================================
// ERROR FACTORY FUNCTIONS
// ============================================

func NewPropertyNotFound(message string) *PropertyError {
	return &PropertyError{Code: CodePropertyNotFound, Message: message}
}

func NewTypeNotFound(propertyType string) *PropertyError {
	return &PropertyError{
		Code:    CodeTypeNotFound,
		Message: MsgTypeNotFound,
		Err:     fmt.Errorf("type %q", propertyType),
	}
}

func NewImageRequired() *PropertyError {
	return &PropertyError{Code: CodeImageRequired, Message: MsgImageRequired}
}

func NewInvalidImage(err error) *PropertyError {
	return &PropertyError{
		Code:    CodeInvalidImage,
		Message: `"image" must be a valid jpeg or png image`,
		Err:     err,
	}
}

// NewImageUploadFailed: lỗi từ image host, không retry
func NewImageUploadFailed(err error) *PropertyError {
	return &PropertyError{Code: CodeImageUploadFailed, Message: MsgImageUploadFailed, Err: err}
}

// ============================================
// ERROR CHECKING FUNCTIONS
// ============================================

func hasCode(err error, code string) bool {
	var propErr *PropertyError
	return errors.As(err, &propErr) && propErr.Code == code
}

func IsNotFound(err error) bool {
	return hasCode(err, CodePropertyNotFound) || hasCode(err, CodeTypeNotFound)
}

func IsUpstream(err error) bool {
	return hasCode(err, CodeImageUploadFailed)
}

// IsValidation: lỗi trả về dạng {errors:[...]}
func IsValidation(err error) bool {
	return hasCode(err, CodeImageRequired) || hasCode(err, CodeInvalidImage)
}

func GetErrorMessage(err error) string {
	var propErr *PropertyError
	if errors.As(err, &propErr) {
		return propErr.Message
	}
	return err.Error()
}

// MapErrorToHTTP chuyển error sang HTTP status + message
func MapErrorToHTTP(err error) (int, string) {
	if err == nil {
		return http.StatusOK, "Success"
	}

	if denied, ok := authz.AsDenied(err); ok {
		return http.StatusForbidden, denied.Reason
	}

	switch {
	case IsNotFound(err):
		return http.StatusNotFound, GetErrorMessage(err)
	case IsValidation(err):
		return http.StatusBadRequest, GetErrorMessage(err)
	case IsUpstream(err):
		return http.StatusBadGateway, GetErrorMessage(err)
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
