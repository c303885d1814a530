package user

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ========================================
// AUTH DTOs
// ========================================

// SignupRequest - POST /auth/signup
type SignupRequest struct {
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

var phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.EmailFormat.Error("invalid email format"),
			validation.Length(5, 255),
		),
		validation.Field(&r.FirstName,
			validation.Required.Error("first name is required"),
			validation.Length(2, 100),
		),
		validation.Field(&r.LastName,
			validation.Required.Error("last name is required"),
			validation.Length(2, 100),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be 8-128 characters"),
		),
		validation.Field(&r.PhoneNumber,
			validation.When(r.PhoneNumber != "",
				validation.Match(phonePattern).Error("phone number must contain 7-15 digits"),
			),
		),
		validation.Field(&r.Address, validation.Length(0, 255)),
	)
}

// Normalize trim khoảng trắng và lowercase email
func (r *SignupRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
	r.Address = strings.TrimSpace(r.Address)
}

// SigninRequest - POST /auth/signin
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r SigninRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Password, validation.Required),
	)
}

// AuthResponse - token trả về sau signup / signin
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserDTO   `json:"user"`
}

type UserDTO struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Address     string    `json:"address,omitempty"`
	IsAdmin     bool      `json:"is_admin"`
	CreatedAt   time.Time `json:"created_at"`
}

// ValidationMessages chuyển lỗi ozzo thành list "field: message" sort theo field
func ValidationMessages(err error) []string {
	errs, ok := err.(validation.Errors)
	if !ok {
		return []string{err.Error()}
	}

	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, fmt.Sprintf("%s: %s", k, errs[k].Error()))
	}
	return out
}

// IsValidationError: lỗi từ Validate() của DTO
func IsValidationError(err error) bool {
	_, ok := err.(validation.Errors)
	return ok
}
