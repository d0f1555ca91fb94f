// Record validation: decode a payload (which runs field-level hooks such as fuzzydate.Field's
// normalization), then check the struct tags with go-playground/validator.
package validation

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"

	"fuzzydates/fuzzydate"
	"fuzzydates/oops"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

type Validator interface {
	Validate() error
}

// KeyedRecord lists payload keys that must be present and not null even when their zero value is
// valid, such as an id of 0.
type KeyedRecord interface {
	RequiredKeys() []string
}

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// Fields validate as their normalized date: "" when ongoing, so `required` rejects it.
	validate.RegisterCustomTypeFunc(func(v reflect.Value) any {
		field, ok := v.Interface().(fuzzydate.Field)
		if !ok || field.MaybeDate == nil {
			return ""
		}
		return string(*field.MaybeDate)
	}, fuzzydate.Field{})

	err := validate.RegisterValidation("calendar_date", func(fl validator.FieldLevel) bool {
		text := fl.Field().String()
		if text == "" {
			return true
		}
		_, err := fuzzydate.ParseDate(text)
		return err == nil
	})
	if err != nil {
		panic(err)
	}
}

type FieldError struct {
	Field string
	Tag   string
	Param string
}

func (e FieldError) String() string {
	switch e.Tag {
	case "required":
		return fmt.Sprintf("%s is required", e.Field)
	case "calendar_date":
		return fmt.Sprintf("%s must be a calendar date", e.Field)
	case "":
		return e.Field
	default:
		if e.Param != "" {
			return fmt.Sprintf("%s failed %s=%s", e.Field, e.Tag, e.Param)
		}
		return fmt.Sprintf("%s failed %s", e.Field, e.Tag)
	}
}

// Error lists every failed field of a record.
type Error struct {
	Record string
	Fields []FieldError
}

func (e *Error) Error() string {
	messages := make([]string, 0, len(e.Fields))
	for _, fieldErr := range e.Fields {
		messages = append(messages, fieldErr.String())
	}
	return fmt.Sprintf("invalid %s: %s", e.Record, strings.Join(messages, "; "))
}

// Struct checks the validate tags of a decoded record, then its Validate method if it has one.
func Struct(record any) error {
	err := validate.Struct(record)
	var validationErrs validator.ValidationErrors
	if ok := asValidationErrors(err, &validationErrs); ok {
		result := &Error{
			Record: recordName(record),
			Fields: nil,
		}
		for _, fieldErr := range validationErrs {
			result.Fields = append(result.Fields, FieldError{
				Field: fieldErr.Field(),
				Tag:   fieldErr.Tag(),
				Param: fieldErr.Param(),
			})
		}
		return oops.Wrap(result)
	} else if err != nil {
		return oops.Wrap(err)
	}

	if v, ok := record.(Validator); ok {
		if err := v.Validate(); err != nil {
			return oops.Wrap(err)
		}
	}
	return nil
}

// DecodeJSON is the JSON entry of the pipeline. Errors from field hooks (fuzzydate.ErrPrecondition,
// fuzzydate.ErrCalendar) come back unchanged so callers can tell them apart.
func DecodeJSON(data []byte, record any) error {
	if keyed, ok := record.(KeyedRecord); ok {
		var keys map[string]json.RawMessage
		if err := json.Unmarshal(data, &keys); err != nil {
			return oops.Wrap(err)
		}
		if err := checkKeys(record, keyed, func(key string) bool {
			raw, ok := keys[key]
			return ok && !bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
		}); err != nil {
			return err
		}
	}
	if err := json.Unmarshal(data, record); err != nil {
		return oops.Wrap(err)
	}
	return Struct(record)
}

func DecodeYAML(data []byte, record any) error {
	if keyed, ok := record.(KeyedRecord); ok {
		var keys map[string]yaml.Node
		if err := yaml.Unmarshal(data, &keys); err != nil {
			return oops.Wrap(err)
		}
		if err := checkKeys(record, keyed, func(key string) bool {
			node, ok := keys[key]
			return ok && !(node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null")
		}); err != nil {
			return err
		}
	}
	if err := yaml.Unmarshal(data, record); err != nil {
		return oops.Wrap(err)
	}
	return Struct(record)
}

// DecodeMap feeds a map literal through the same pipeline, the way a payload built in code would
// arrive over the wire.
func DecodeMap(payload map[string]any, record any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return oops.Wrap(err)
	}
	return DecodeJSON(data, record)
}

func checkKeys(record any, keyed KeyedRecord, hasKey func(key string) bool) error {
	var missing []FieldError
	for _, key := range keyed.RequiredKeys() {
		if !hasKey(key) {
			missing = append(missing, FieldError{Field: key, Tag: "required", Param: ""})
		}
	}
	if len(missing) > 0 {
		return oops.Wrap(&Error{Record: recordName(record), Fields: missing})
	}
	return nil
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	if err == nil {
		return false
	}
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return false
	}
	*target = validationErrs
	return true
}

func recordName(record any) string {
	t := reflect.TypeOf(record)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
