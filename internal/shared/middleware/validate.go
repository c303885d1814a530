package middleware

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"propertypro-backend/internal/shared/response"
	"propertypro-backend/internal/shared/validation"
)

const payloadKey = "payload"

// ValidateBody validate body theo schema trước khi tới handler.
// Hỗ trợ JSON, multipart/form-data và x-www-form-urlencoded; body rỗng = {}.
// Lỗi -> 400 {errors:[...]} và không gọi handler.
func ValidateBody(schema validation.Schema) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := readPayload(c)
		if err != nil {
			response.ValidationFailed(c, []string{err.Error()})
			c.Abort()
			return
		}

		normalized, errs := schema.Validate(payload)
		if len(errs) > 0 {
			response.ValidationFailed(c, validation.Messages(errs))
			c.Abort()
			return
		}

		c.Set(payloadKey, normalized)
		c.Next()
	}
}

// Payload trả về body đã validate + normalize
func Payload(c *gin.Context) map[string]any {
	v, ok := c.Get(payloadKey)
	if !ok {
		return map[string]any{}
	}
	payload, _ := v.(map[string]any)
	if payload == nil {
		return map[string]any{}
	}
	return payload
}

type bodyError string

func (e bodyError) Error() string { return string(e) }

func readPayload(c *gin.Context) (map[string]any, error) {
	payload := map[string]any{}

	switch c.ContentType() {
	case gin.MIMEMultipartPOSTForm:
		form, err := c.MultipartForm()
		if err != nil {
			return nil, bodyError("invalid multipart body")
		}
		for key, values := range form.Value {
			if len(values) > 0 {
				payload[key] = values[0]
			}
		}
		return payload, nil

	case gin.MIMEPOSTForm:
		if err := c.Request.ParseForm(); err != nil {
			return nil, bodyError("invalid form body")
		}
		for key, values := range c.Request.PostForm {
			if len(values) > 0 {
				payload[key] = values[0]
			}
		}
		return payload, nil
	}

	raw, err := c.GetRawData()
	if err != nil {
		return nil, bodyError("cannot read request body")
	}
	if len(raw) == 0 {
		return payload, nil
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, bodyError("request body must be a JSON object")
	}
	return payload, nil
}
