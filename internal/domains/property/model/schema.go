package model

import "propertypro-backend/internal/shared/validation"

// CreatePropertySchema: tất cả field bắt buộc.
// Max length theo cột trong bảng properties.
var CreatePropertySchema = validation.Schema{
	"price":   validation.NumberField(0).Require(),
	"state":   validation.StringField(2).Max(100).Require(),
	"city":    validation.StringField(2).Max(100).Require(),
	"address": validation.StringField(2).Max(255).Require(),
	"type":    validation.StringField(3).Max(100).Require(),
}

// UpdatePropertySchema: cùng constraint, mọi field optional
var UpdatePropertySchema = CreatePropertySchema.Partial()
