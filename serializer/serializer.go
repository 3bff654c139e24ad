// Package serializer turns stored documents into JSON-safe maps for clients.
//
// Only a closed set of value kinds is understood. Anything else is reported as
// an *UnsupportedValueError instead of being passed through.
package serializer

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// NativeIDField is the identifier key the store assigns.
	NativeIDField = "_id"
	// IDField is the key clients receive the identifier under.
	IDField = "id"
)

// UnsupportedValueError reports a value outside the recognized kinds.
type UnsupportedValueError struct {
	Field string
	Type  string
}

func (e *UnsupportedValueError) Error() string {
	return fmt.Sprintf("serializer: field %q has unsupported type %s", e.Field, e.Type)
}

// Serialize returns a copy of doc with the native identifier moved to "id"
// as a string and every value converted to its JSON-safe form. Date/time
// values become ISO-8601 strings. doc is not modified.
func Serialize(doc bson.M) (map[string]any, error) {
	out := make(map[string]any, len(doc))

	for k, v := range doc {
		if k == NativeIDField {
			continue
		}
		converted, err := convert(k, v)
		if err != nil {
			return nil, err
		}
		out[k] = converted
	}

	if raw, ok := doc[NativeIDField]; ok && raw != nil {
		id, err := IDString(raw)
		if err != nil {
			return nil, err
		}
		out[IDField] = id
	}

	return out, nil
}

// SerializeAll serializes every document in order. The result is never nil so
// an empty collection renders as [].
func SerializeAll(docs []bson.M) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		s, err := Serialize(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// IDString renders a store identifier the way clients see it.
func IDString(v any) (string, error) {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex(), nil
	case string:
		return id, nil
	case int32:
		return strconv.FormatInt(int64(id), 10), nil
	case int64:
		return strconv.FormatInt(id, 10), nil
	case int:
		return strconv.Itoa(id), nil
	case primitive.Binary:
		return fmt.Sprintf("%x", id.Data), nil
	}
	return "", &UnsupportedValueError{Field: NativeIDField, Type: fmt.Sprintf("%T", v)}
}

// FormatTime renders t as ISO-8601 in UTC.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func convert(field string, v any) (any, error) {
	switch val := v.(type) {
	case nil, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return val, nil
	case time.Time:
		return FormatTime(val), nil
	case primitive.DateTime:
		return FormatTime(val.Time()), nil
	case primitive.Timestamp:
		return FormatTime(time.Unix(int64(val.T), 0)), nil
	case primitive.ObjectID:
		return val.Hex(), nil
	case primitive.Decimal128:
		return val.String(), nil
	case *url.URL:
		if val == nil {
			return nil, nil
		}
		return val.String(), nil
	case url.URL:
		return val.String(), nil
	case primitive.A:
		return convertSlice(field, []any(val))
	case []any:
		return convertSlice(field, val)
	case []string:
		return append([]string{}, val...), nil
	case bson.M:
		return convertMap(field, val)
	case map[string]any:
		return convertMap(field, val)
	case bson.D:
		m := make(map[string]any, len(val))
		for _, e := range val {
			c, err := convert(field+"."+e.Key, e.Value)
			if err != nil {
				return nil, err
			}
			m[e.Key] = c
		}
		return m, nil
	}
	return nil, &UnsupportedValueError{Field: field, Type: fmt.Sprintf("%T", v)}
}

func convertSlice(field string, in []any) ([]any, error) {
	out := make([]any, len(in))
	for i, item := range in {
		c, err := convert(fmt.Sprintf("%s[%d]", field, i), item)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

func convertMap(field string, in map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(in))
	for k, item := range in {
		c, err := convert(field+"."+k, item)
		if err != nil {
			return nil, err
		}
		out[k] = c
	}
	return out, nil
}
