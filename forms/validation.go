// Package forms validates the workshop's input forms before anything reaches the store.
package forms

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validation error codes returned to clients
const (
	CodeMissingFields   = "MISSING_FIELDS"
	CodeInvalidNumber   = "INVALID_NUMBER"
	CodeNoValidMaterial = "NO_VALID_MATERIAL"
	CodeInvalidProgress = "INVALID_PROGRESS"
)

// ValidationError is returned when a form cannot be accepted.
// Message is shown to the user as-is.
type ValidationError struct {
	Code    string
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(e.Fields, ", "))
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// missingFields runs the struct validator and lists the failing fields
func missingFields(form interface{}) ([]string, error) {
	err := validate.Struct(form)
	if err == nil {
		return nil, nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil, err
	}
	fields := make([]string, 0, len(errs))
	for _, fe := range errs {
		fields = append(fields, fe.Field())
	}
	return fields, nil
}

// Text is a form value typed into a text input. It accepts a JSON string or
// a bare JSON number, so clients may send either "10" or 10.
type Text string

// UnmarshalJSON implements json.Unmarshaler
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*t = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("text field must be a string or number: %w", err)
	}
	*t = Text(n.String())
	return nil
}

func (t Text) trimmed() string {
	return strings.TrimSpace(string(t))
}
