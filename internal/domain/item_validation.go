package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// itemValidator enforces the field rules declared on ItemInput.
var itemValidator = validator.New()

// ValidateItemPayload checks a raw item payload and returns the normalized
// input. It performs no I/O.
//
// The payload must be exactly one JSON object. name and category must be strings that
// are non-empty once trimmed. price must be a JSON number, or a string holding
// one, that is finite and not negative. Any failure is returned as a
// *ValidationError naming the offending field.
func ValidateItemPayload(raw json.RawMessage) (ItemInput, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return ItemInput{}, NewValidationError("payload", "is required", nil)
	}

	var fields map[string]any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil || fields == nil {
		return ItemInput{}, NewValidationError("payload", "must be a JSON object", ErrInvalidFormat)
	}
	// the object must be the whole payload
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return ItemInput{}, NewValidationError("payload", "must be a single JSON object", ErrInvalidFormat)
	}

	name, err := requiredString(fields, "name")
	if err != nil {
		return ItemInput{}, err
	}
	category, err := requiredString(fields, "category")
	if err != nil {
		return ItemInput{}, err
	}
	price, err := coercePrice(fields["price"])
	if err != nil {
		return ItemInput{}, err
	}

	input := ItemInput{
		Name:     name,
		Category: category,
		Price:    price,
	}
	if err := itemValidator.Struct(input); err != nil {
		return ItemInput{}, fromValidatorError(err)
	}
	return input, nil
}

// requiredString extracts a trimmed string field.
func requiredString(fields map[string]any, key string) (string, error) {
	v, ok := fields[key]
	if !ok || v == nil {
		return "", NewValidationError(key, "is required", nil)
	}
	s, ok := v.(string)
	if !ok {
		return "", NewValidationError(key, "must be a string", ErrInvalidFormat)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", NewValidationError(key, "must not be empty", nil)
	}
	return s, nil
}

// coercePrice converts a decoded JSON value into a finite price.
// Only numbers and numeric strings are accepted.
func coercePrice(v any) (float64, error) {
	var (
		price float64
		err   error
	)
	switch x := v.(type) {
	case nil:
		return 0, NewValidationError("price", "is required", nil)
	case json.Number:
		price, err = x.Float64()
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, NewValidationError("price", "must be a number", ErrInvalidFormat)
		}
		price, err = strconv.ParseFloat(s, 64)
	default:
		return 0, NewValidationError("price", "must be a number", ErrInvalidFormat)
	}
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, NewValidationError("price", "must be a finite number", ErrInvalidFormat)
	}
	if price < 0 {
		return 0, NewValidationError("price", "must be greater than or equal to 0", nil)
	}
	return price, nil
}

// fromValidatorError maps the first validator field error onto a ValidationError.
func fromValidatorError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return NewValidationError("payload", "is invalid", err)
	}

	fe := fieldErrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return NewValidationError(field, "is required", nil)
	case "gte":
		return NewValidationError(field, "must be greater than or equal to "+fe.Param(), nil)
	default:
		return NewValidationError(field, "failed on the '"+fe.Tag()+"' rule", nil)
	}
}
