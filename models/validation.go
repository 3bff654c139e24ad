package models

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// FieldError describes one violated constraint.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError lists every constraint an input violated. An entity is
// never built when one is returned.
type ValidationError struct {
	Entity string       `json:"entity"`
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("invalid %s: %s", e.Entity, strings.Join(parts, "; "))
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// fieldReader pulls typed values out of a raw field map and records a
// FieldError for every missing or mistyped field instead of stopping.
type fieldReader struct {
	fields map[string]any
	errs   []FieldError
	seen   map[string]bool
}

func newFieldReader(fields map[string]any) *fieldReader {
	return &fieldReader{fields: fields, seen: make(map[string]bool)}
}

func (r *fieldReader) fail(field, rule, msg string) {
	r.errs = append(r.errs, FieldError{Field: field, Rule: rule, Message: msg})
	r.seen[field] = true
}

// lookup treats nil the same as an absent key.
func (r *fieldReader) lookup(field string, required bool) (any, bool) {
	v, ok := r.fields[field]
	if !ok || v == nil {
		if required {
			r.fail(field, "required", "field required")
		}
		return nil, false
	}
	return v, true
}

func (r *fieldReader) str(field string, required bool) (string, bool) {
	v, ok := r.lookup(field, required)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		r.fail(field, "type", fmt.Sprintf("expected text, got %T", v))
		return "", false
	}
	return s, true
}

func (r *fieldReader) optStr(field string) *string {
	s, ok := r.str(field, false)
	if !ok {
		return nil
	}
	return &s
}

func (r *fieldReader) number(field string, required bool) (float64, bool) {
	v, ok := r.lookup(field, required)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	r.fail(field, "type", fmt.Sprintf("expected number, got %T", v))
	return 0, false
}

func (r *fieldReader) optInt(field string) *int {
	if _, present := r.fields[field]; !present {
		return nil
	}
	f, ok := r.number(field, false)
	if !ok {
		return nil
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		r.fail(field, "type", "expected integer")
		return nil
	}
	i := int(f)
	return &i
}

func (r *fieldReader) boolean(field string, def bool) bool {
	v, ok := r.lookup(field, false)
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		r.fail(field, "type", fmt.Sprintf("expected boolean, got %T", v))
		return def
	}
	return b
}

// strs never returns nil so empty lists are stored as [] rather than null.
func (r *fieldReader) strs(field string) []string {
	v, ok := r.lookup(field, false)
	if !ok {
		return []string{}
	}
	switch list := v.(type) {
	case []string:
		return append([]string{}, list...)
	case []any:
		out := make([]string, 0, len(list))
		for i, item := range list {
			s, ok := item.(string)
			if !ok {
				r.fail(fmt.Sprintf("%s[%d]", field, i), "type", fmt.Sprintf("expected text, got %T", item))
				continue
			}
			out = append(out, s)
		}
		return out
	}
	r.fail(field, "type", fmt.Sprintf("expected list of text, got %T", v))
	return []string{}
}

// check runs the struct tags on entity and merges the result with the
// reader's errors. Fields the reader already rejected are not reported twice.
func (r *fieldReader) check(entity string, v any) error {
	errs := r.errs
	if err := structValidator().Struct(v); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		for _, fe := range verrs {
			field := fieldPath(fe)
			if r.seen[rootField(field)] {
				continue
			}
			errs = append(errs, FieldError{Field: field, Rule: fe.Tag(), Message: ruleMessage(fe)})
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Entity: entity, Fields: errs}
}

// fieldPath drops the struct name prefix: "Product.images[0]" -> "images[0]".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func rootField(path string) string {
	if i := strings.IndexAny(path, ".["); i >= 0 {
		return path[:i]
	}
	return path
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "http_url":
		return "must be a valid http(s) URL"
	default:
		return "failed " + fe.Tag() + " constraint"
	}
}
