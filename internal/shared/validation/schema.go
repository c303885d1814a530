package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Kind là kiểu dữ liệu của một field trong schema
type Kind int

const (
	Number Kind = iota
	String
)

// Field mô tả constraint của một field.
// Min áp dụng cho Number, MinLength/MaxLength áp dụng cho String.
// MaxLength = 0 là không giới hạn.
type Field struct {
	Kind      Kind
	Required  bool
	Min       float64
	MinLength int
	MaxLength int
}

func NumberField(min float64) Field {
	return Field{Kind: Number, Min: min}
}

func StringField(minLength int) Field {
	return Field{Kind: String, MinLength: minLength}
}

// Require trả về bản copy với Required = true
func (f Field) Require() Field {
	f.Required = true
	return f
}

// Max trả về bản copy với độ dài tối đa (khớp với cột VARCHAR)
func (f Field) Max(maxLength int) Field {
	f.MaxLength = maxLength
	return f
}

// FieldError là một vi phạm constraint trên một field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Message
}

// Messages trả về danh sách message để đưa vào response
func Messages(errs []FieldError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Message)
	}
	return out
}

// Schema: field name -> constraint. Key không khai báo sẽ bị reject.
type Schema map[string]Field

// Partial trả về schema cùng constraint nhưng mọi field đều optional (dùng cho PATCH)
func (s Schema) Partial() Schema {
	out := make(Schema, len(s))
	for name, f := range s {
		f.Required = false
		out[name] = f
	}
	return out
}

// Validate kiểm tra payload theo schema.
// Number nhận cả chuỗi số (multipart form) và được normalize về float64.
// Trả về payload đã normalize, hoặc danh sách lỗi sort theo tên field.
func (s Schema) Validate(payload map[string]any) (map[string]any, []FieldError) {
	if payload == nil {
		payload = map[string]any{}
	}

	normalized := make(map[string]any, len(payload))
	for key, value := range payload {
		if f, ok := s[key]; ok && f.Kind == Number {
			if n, ok := toNumber(value); ok {
				normalized[key] = n
				continue
			}
		}
		normalized[key] = value
	}

	keys := make([]*validation.KeyRules, 0, len(s))
	for name, f := range s {
		kr := validation.Key(name, validation.By(fieldRule(name, f)))
		if !f.Required {
			kr = kr.Optional()
		}
		keys = append(keys, kr)
	}

	err := validation.Map(keys...).Validate(normalized)
	if err == nil {
		return normalized, nil
	}

	errs, ok := err.(validation.Errors)
	if !ok {
		// internal error của ozzo (vd: payload không phải map)
		return nil, []FieldError{{Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(errs))
	for key, e := range errs {
		out = append(out, FieldError{Field: key, Message: describe(key, e)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return nil, out
}

func describe(key string, err error) string {
	if ve, ok := err.(validation.Error); ok {
		switch ve.Code() {
		case validation.ErrKeyMissing.Code():
			return fmt.Sprintf("%q is required", key)
		case validation.ErrKeyUnexpected.Code():
			return fmt.Sprintf("%q is not allowed", key)
		}
	}
	return err.Error()
}

func fieldRule(name string, f Field) validation.RuleFunc {
	return func(value interface{}) error {
		switch f.Kind {
		case Number:
			n, ok := value.(float64)
			if !ok {
				return fmt.Errorf("%q must be a number", name)
			}
			if n < f.Min {
				return fmt.Errorf("%q must be larger than or equal to %s", name, formatNumber(f.Min))
			}
		case String:
			str, ok := value.(string)
			if !ok {
				return fmt.Errorf("%q must be a string", name)
			}
			length := utf8.RuneCountInString(str)
			if length < f.MinLength {
				return fmt.Errorf("%q length must be at least %d characters long", name, f.MinLength)
			}
			if f.MaxLength > 0 && length > f.MaxLength {
				return fmt.Errorf("%q length must be less than or equal to %d characters long", name, f.MaxLength)
			}
		}
		return nil
	}
}

func toNumber(value any) (float64, bool) {
	var n float64
	switch v := value.(type) {
	case float64:
		n = v
	case float32:
		n = float64(v)
	case int:
		n = float64(v)
	case int64:
		n = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		n = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		n = f
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
